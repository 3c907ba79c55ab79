package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Статусы объявления.
const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// ID - непрозрачный идентификатор, который назначает сервис объявлений.
// В JSON может прийти как строкой, так и числом.
type ID string

// UnmarshalJSON принимает строку или число.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("неверный формат id: %s", data)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Announcement - объявление в том виде, в котором его хранит удаленный сервис.
type Announcement struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	ClosedAt    *time.Time `json:"closedAt,omitempty"`
}

// IsActive сообщает, можно ли еще закрыть объявление.
func (a Announcement) IsActive() bool {
	return a.Status == StatusActive
}

// IsClosed сообщает, закрыто ли объявление. ClosedAt имеет смысл только для закрытых.
func (a Announcement) IsClosed() bool {
	return a.Status == StatusClosed
}

// CreateRequest - тело POST запроса на создание объявления.
type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// StatusUpdate - тело PATCH запроса на смену статуса.
type StatusUpdate struct {
	Status string `json:"status"`
}

// ValidStatus проверяет, что статус один из известных.
func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusClosed
}
