package storage

import (
	"context"
	"sync"
	"time"

	"gobasera/pkg/models"
)

// Memory - хранилище в памяти процесса, для разработки и тестов.
type Memory struct {
	mu    sync.RWMutex
	items []models.Announcement
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{now: func() time.Time { return time.Now().UTC() }}
}

func (m *Memory) List(context.Context) ([]models.Announcement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Новые объявления хранятся в конце, отдаем в обратном порядке.
	out := make([]models.Announcement, 0, len(m.items))
	for i := len(m.items) - 1; i >= 0; i-- {
		out = append(out, m.items[i])
	}
	return out, nil
}

func (m *Memory) Add(_ context.Context, req models.CreateRequest) (models.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item := newAnnouncement(req, m.now())
	m.items = append(m.items, item)
	return item, nil
}

func (m *Memory) SetStatus(_ context.Context, id models.ID, status string) (models.Announcement, error) {
	if !models.ValidStatus(status) {
		return models.Announcement{}, ErrInvalidStatus
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		m.items[i].Status = status
		m.items[i].ClosedAt = nil
		if status == models.StatusClosed {
			closedAt := m.now()
			m.items[i].ClosedAt = &closedAt
		}
		return m.items[i], nil
	}
	return models.Announcement{}, ErrNotFound
}

func (m *Memory) Close() {}
