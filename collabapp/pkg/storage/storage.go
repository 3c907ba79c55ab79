package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose"

	"gobasera/pkg/models"
)

var (
	ErrNotFound      = errors.New("объявление не найдено")
	ErrInvalidStatus = errors.New("неизвестный статус")
)

// Интерфейс для работы с хранилищем объявлений
type Store interface {
	List(ctx context.Context) ([]models.Announcement, error)
	Add(ctx context.Context, req models.CreateRequest) (models.Announcement, error)
	SetStatus(ctx context.Context, id models.ID, status string) (models.Announcement, error)
	Close()
}

const announcementColumns = `id, title, description, status, created_at, closed_at`

// База данных
type DB struct {
	pool *pgxpool.Pool
}

// Конструктор для инициализации соединения с БД
func New(ctx context.Context, connstr string) (*DB, error) {
	if connstr == "" {
		return nil, errors.New("не указано подключение к БД")
	}
	pool, err := pgxpool.Connect(ctx, connstr)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Migrate применяет миграции goose из каталога dir.
func Migrate(connstr, dir string) error {
	db, err := sql.Open("postgres", connstr)
	if err != nil {
		return fmt.Errorf("ошибка подключения к БД: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("ошибка применения миграций: %w", err)
	}
	return nil
}

// List возвращает объявления, новые первыми.
func (db *DB) List(ctx context.Context) ([]models.Announcement, error) {
	rows, err := db.pool.Query(ctx, `SELECT `+announcementColumns+` FROM announcements ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения объявлений: %w", err)
	}
	defer rows.Close()

	items := []models.Announcement{}
	for rows.Next() {
		item, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка обработки объявления: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка получения объявлений: %w", err)
	}
	return items, nil
}

// Add сохраняет новое активное объявление.
func (db *DB) Add(ctx context.Context, req models.CreateRequest) (models.Announcement, error) {
	item := newAnnouncement(req, time.Now().UTC())
	_, err := db.pool.Exec(ctx,
		`INSERT INTO announcements (id, title, description, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		item.ID.String(), item.Title, item.Description, item.Status, item.CreatedAt)
	if err != nil {
		return models.Announcement{}, fmt.Errorf("ошибка добавления объявления: %w", err)
	}
	return item, nil
}

// SetStatus меняет статус. closed_at выставляется при закрытии и сбрасывается при активации.
func (db *DB) SetStatus(ctx context.Context, id models.ID, status string) (models.Announcement, error) {
	if !models.ValidStatus(status) {
		return models.Announcement{}, ErrInvalidStatus
	}

	var closedAt *time.Time
	if status == models.StatusClosed {
		now := time.Now().UTC()
		closedAt = &now
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE announcements SET status = $2, closed_at = $3
		  WHERE id = $1
		  RETURNING `+announcementColumns,
		id.String(), status, closedAt)
	item, err := scanAnnouncement(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Announcement{}, ErrNotFound
	}
	if err != nil {
		return models.Announcement{}, fmt.Errorf("ошибка обновления статуса: %w", err)
	}
	return item, nil
}

// Закрытие соединения с БД
func (db *DB) Close() {
	db.pool.Close()
}

func scanAnnouncement(row pgx.Row) (models.Announcement, error) {
	var (
		item models.Announcement
		id   string
	)
	if err := row.Scan(&id, &item.Title, &item.Description, &item.Status, &item.CreatedAt, &item.ClosedAt); err != nil {
		return models.Announcement{}, err
	}
	item.ID = models.ID(id)
	return item, nil
}

func newAnnouncement(req models.CreateRequest, now time.Time) models.Announcement {
	return models.Announcement{
		ID:          models.ID(uuid.NewString()),
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusActive,
		CreatedAt:   now,
	}
}
