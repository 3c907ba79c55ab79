package board

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"gobasera/pkg/metrics"
	"gobasera/pkg/models"
)

// Сообщения об ошибках, которые видит пользователь.
const (
	MsgLoadFailed   = "Failed to fetch announcements"
	MsgCreateFailed = "Failed to create announcement"
	MsgCloseFailed  = "Failed to update status"
)

// ErrEmptyTitle - объявление без заголовка не отправляется.
var ErrEmptyTitle = errors.New("title is required")

// Collaborator - удаленный сервис объявлений.
type Collaborator interface {
	List(ctx context.Context) ([]models.Announcement, error)
	Create(ctx context.Context, req models.CreateRequest) (*models.Announcement, error)
	UpdateStatus(ctx context.Context, id models.ID, status string) (*models.Announcement, error)
}

// Entry - объявление вместе с полями, которые живут только на клиенте.
type Entry struct {
	models.Announcement
	Like     int      `json:"like"`
	Dislike  int      `json:"dislike"`
	Comments []string `json:"comments"`
	Draft    string   `json:"draft,omitempty"`
}

// View - снимок состояния для отрисовки.
type View struct {
	Entries     []Entry `json:"announcements"`
	Loading     bool    `json:"loading"`
	Error       string  `json:"error,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	CanSubmit   bool    `json:"canSubmit"`
	Empty       bool    `json:"empty"`
}

// Board - состояние страницы объявлений одной сессии.
// Сетевые запросы выполняются без блокировки, под mu только изменение состояния.
type Board struct {
	client Collaborator
	logger *zap.Logger

	mu          sync.Mutex
	entries     []*Entry
	loading     bool
	loaded      bool
	errMsg      string
	title       string
	description string
}

// New создает пустую доску.
func New(client Collaborator, logger *zap.Logger) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Board{
		client: client,
		logger: logger,
	}
}

// EnsureLoaded выполняет загрузку при первом показе.
// Пока первая загрузка идет, повторные вызовы сразу возвращаются.
func (b *Board) EnsureLoaded(ctx context.Context) error {
	b.mu.Lock()
	if b.loaded || b.loading {
		b.mu.Unlock()
		return nil
	}
	b.loading = true
	b.mu.Unlock()
	return b.fetch(ctx)
}

// Load заменяет список тем, что вернул сервис. Локальные поля при этом теряются.
func (b *Board) Load(ctx context.Context) error {
	b.mu.Lock()
	b.loading = true
	b.mu.Unlock()
	return b.fetch(ctx)
}

// fetch запрашивает список. Флаг loading к этому моменту уже выставлен.
func (b *Board) fetch(ctx context.Context) error {
	items, err := b.client.List(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.loading = false
	b.loaded = true
	if err != nil {
		b.logger.Warn("load announcements failed", zap.Error(err))
		b.errMsg = MsgLoadFailed
		return err
	}

	entries := make([]*Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, &Entry{Announcement: item})
	}
	b.entries = entries
	return nil
}

// Create отправляет новое объявление как есть и при успехе ставит его в начало списка.
// Заголовок из одних пробелов считается пустым.
func (b *Board) Create(ctx context.Context, title, description string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}

	b.mu.Lock()
	b.errMsg = ""
	b.mu.Unlock()

	item, err := b.client.Create(ctx, models.CreateRequest{Title: title, Description: description})

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.logger.Warn("create announcement failed", zap.String("title", title), zap.Error(err))
		b.errMsg = MsgCreateFailed
		b.title = title
		b.description = description
		return err
	}

	b.entries = append([]*Entry{{Announcement: *item}}, b.entries...)
	b.title = ""
	b.description = ""
	return nil
}

// Close переводит объявление в статус closed. Локальные поля записи сохраняются.
func (b *Board) Close(ctx context.Context, id models.ID) error {
	item, err := b.client.UpdateStatus(ctx, id, models.StatusClosed)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.logger.Warn("close announcement failed", zap.String("id", id.String()), zap.Error(err))
		b.errMsg = MsgCloseFailed
		return err
	}

	if entry := b.find(id); entry != nil {
		entry.Announcement = *item
	}
	return nil
}

// Like увеличивает счетчик лайков записи. Неизвестный id игнорируется.
func (b *Board) Like(id models.ID) {
	b.mutate(id, "like", func(e *Entry) { e.Like++ })
}

// Dislike увеличивает счетчик дизлайков записи.
func (b *Board) Dislike(id models.ID) {
	b.mutate(id, "dislike", func(e *Entry) { e.Dislike++ })
}

// SetDraft запоминает набранный, но еще не отправленный комментарий.
func (b *Board) SetDraft(id models.ID, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if entry := b.find(id); entry != nil {
		entry.Draft = text
	}
}

// PostComment добавляет черновик в комментарии записи и очищает его.
// Пустой черновик ничего не меняет.
func (b *Board) PostComment(id models.ID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry := b.find(id)
	if entry == nil || entry.Draft == "" {
		return
	}
	entry.Comments = append(entry.Comments, entry.Draft)
	entry.Draft = ""
	metrics.IncLocalMutation("comment")
}

// SetInputs запоминает значения полей формы.
func (b *Board) SetInputs(title, description string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.title = title
	b.description = description
}

// Snapshot возвращает копию состояния.
func (b *Board) Snapshot() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := make([]Entry, 0, len(b.entries))
	for _, e := range b.entries {
		copied := *e
		copied.Comments = make([]string, len(e.Comments))
		copy(copied.Comments, e.Comments)
		entries = append(entries, copied)
	}

	return View{
		Entries:     entries,
		Loading:     b.loading,
		Error:       b.errMsg,
		Title:       b.title,
		Description: b.description,
		CanSubmit:   strings.TrimSpace(b.title) != "",
		Empty:       len(entries) == 0,
	}
}

func (b *Board) mutate(id models.ID, kind string, fn func(*Entry)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if entry := b.find(id); entry != nil {
		fn(entry)
		metrics.IncLocalMutation(kind)
	}
}

func (b *Board) find(id models.ID) *Entry {
	for _, e := range b.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}
