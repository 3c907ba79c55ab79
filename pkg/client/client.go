package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gobasera/pkg/metrics"
	"gobasera/pkg/middleware"
	"gobasera/pkg/models"
)

// ErrRequestFailed - любая неудача запроса к сервису объявлений:
// сетевая ошибка, не-2xx ответ или неразборчивое тело.
var ErrRequestFailed = errors.New("collaborator: request failed")

// StatusError - сервис ответил кодом вне диапазона 2xx.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("collaborator: http %d", e.Code)
	}
	return fmt.Sprintf("collaborator: http %d: %s", e.Code, e.Body)
}

const errorBodyLimit = 512

// Client - клиент удаленного сервиса объявлений.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option настраивает Client.
type Option func(*Client)

// WithTimeout задает таймаут на запрос. 0 отключает таймаут.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New создает клиент для сервиса по адресу baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL возвращает адрес сервиса.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List - GET /
func (c *Client) List(ctx context.Context) ([]models.Announcement, error) {
	var items []models.Announcement
	if err := c.do(ctx, "list", http.MethodGet, "/", nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Announcement{}
	}
	return items, nil
}

// Create - POST /
func (c *Client) Create(ctx context.Context, req models.CreateRequest) (*models.Announcement, error) {
	var item models.Announcement
	if err := c.do(ctx, "create", http.MethodPost, "/", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateStatus - PATCH /{id}
func (c *Client) UpdateStatus(ctx context.Context, id models.ID, status string) (*models.Announcement, error) {
	var item models.Announcement
	path := "/" + url.PathEscape(id.String())
	if err := c.do(ctx, "update_status", http.MethodPatch, path, models.StatusUpdate{Status: status}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveCollaboratorRequest(operation, time.Since(start), err)
	}()

	if err := c.doOnce(ctx, method, path, body, out); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, path, err)
	}
	return nil
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out any) error {
	if c.baseURL == "" {
		return errors.New("пустой адрес сервиса")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID := middleware.RequestID(ctx); requestID != "" {
		req.Header.Set(middleware.RequestIDHeader, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(responseBody))
		if len(text) > errorBodyLimit {
			text = text[:errorBodyLimit]
		}
		return &StatusError{Code: resp.StatusCode, Body: text}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("ошибка при декодировании ответа: %w", err)
	}
	return nil
}
