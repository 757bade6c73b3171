package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на получение доступного времени
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата, на которую запрашивается время (без времени суток)
}

// Response модель ответа со списком свободного времени
type Response struct {
	Date      time.Time          // Дата, на которую запрашивалось время
	ServiceID int64              // ID услуги
	Slots     []types.TimeString // Свободное время в порядке сетки расписания
}
