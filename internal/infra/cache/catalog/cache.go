package catalog

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Clock интерфейс для получения текущего времени (для тестирования TTL)
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Cache процессный in-memory кеш каталога услуг с ограничением по TTL
//
// Хранит активный и полный списки вместе с временем загрузки. Чтение в пределах
// TTL отдает кешированные списки; чтение после TTL сообщает промах, и сервис
// каталога перечитывает оба списка из хранилища. Любая мутация услуг вызывает
// Invalidate, поэтому изменения в рамках одного процесса видны сразу.
//
// Кеш локален для процесса: в multi-process деплое инвалидация не
// распространяется на соседние процессы, и фактическая устарелость может
// превысить TTL. Это задокументированное послабление - кеш влияет только на
// то, какие услуги отображаются, а не на занятость слотов.
type Cache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	clock     Clock
	active    []*domain.Service
	all       []*domain.Service
	fetchedAt time.Time
	valid     bool
}

// New создает кеш каталога с указанным TTL
func New(ttl time.Duration) *Cache {
	return NewWithClock(ttl, realClock{})
}

// NewWithClock создает кеш с внешними часами (для тестов)
func NewWithClock(ttl time.Duration, clock Clock) *Cache {
	return &Cache{ttl: ttl, clock: clock}
}

// Get возвращает кешированные списки услуг
// ok == false означает промах: кеш пуст, инвалидирован или TTL истёк
func (c *Cache) Get() (active, all []*domain.Service, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid || c.clock.Now().Sub(c.fetchedAt) > c.ttl {
		return nil, nil, false
	}

	return c.active, c.all, true
}

// Set сохраняет оба списка услуг и отметку времени загрузки
func (c *Cache) Set(active, all []*domain.Service) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.active = active
	c.all = all
	c.fetchedAt = c.clock.Now()
	c.valid = true
}

// Invalidate сбрасывает кеш безусловно
// Вызывается при любой мутации услуг: следующее чтение перечитает хранилище
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.active = nil
	c.all = nil
	c.valid = false
}
