package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientName  string           // Имя клиента
	ClientPhone string           // Телефон клиента в международном формате
	ServiceID   int64            // ID услуги
	Date        time.Time        // Дата записи (без времени суток)
	Time        types.TimeString // Время записи (например, "10:00")
	Notes       *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID        int64            // ID созданной записи
	ClientID  int64            // ID клиента
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата записи
	Time      types.TimeString // Время записи
	Status    string           // Статус записи

	ClientName   string // Имя клиента
	ClientPhone  string // Телефон клиента
	ServiceName  string // Название услуги
	ServicePrice int    // Цена услуги в центах
	Duration     int    // Длительность услуги в минутах
	Notes        *string

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
