package api

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gobasera/pkg/middleware"
	"gobasera/pkg/models"
	"gobasera/webapp/pkg/board"
)

// SessionCookie - имя cookie с идентификатором сессии.
const SessionCookie = "gobasera_session"

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"formatTime": formatTime,
	"pathEscape": func(id models.ID) string { return url.PathEscape(id.String()) },
}).ParseFS(templatesFS, "templates/index.html"))

// API веб-приложения объявлений.
type API struct {
	r        *chi.Mux
	sessions *board.Sessions
	logger   *zap.Logger
}

// Конструктор API.
func New(sessions *board.Sessions, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := API{r: chi.NewRouter(), sessions: sessions, logger: logger}
	a.endpoints()
	return &a
}

// Router возвращает маршрутизатор для использования
// в качестве аргумента HTTP-сервера.
func (api *API) Router() *chi.Mux {
	return api.r
}

// Регистрация методов API в маршрутизаторе запросов.
func (api *API) endpoints() {
	api.r.Use(middleware.RequestIDMiddleware)
	api.r.Use(middleware.Logging(api.logger))
	api.r.Use(chimiddleware.Recoverer)

	api.r.Get("/healthz", api.health)
	api.r.Handle("/metrics", promhttp.Handler())

	api.r.Get("/", api.index)
	api.r.Get("/state", api.state)
	api.r.Post("/refresh", api.refresh)
	api.r.Post("/announcements", api.create)
	api.r.Route("/announcements/{id}", func(r chi.Router) {
		r.Post("/close", api.close)
		r.Post("/like", api.like)
		r.Post("/dislike", api.dislike)
		r.Post("/comments", api.comment)
	})
}

func (api *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": api.sessions.Len(),
	})
}

// Страница объявлений. При первом показе загружает список.
func (api *API) index(w http.ResponseWriter, r *http.Request) {
	b := api.board(w, r)
	// Ошибка уже записана в состояние доски.
	_ = b.EnsureLoaded(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, b.Snapshot()); err != nil {
		api.logger.Error("render page failed", zap.Error(err))
	}
}

// Состояние страницы в JSON.
func (api *API) state(w http.ResponseWriter, r *http.Request) {
	b := api.board(w, r)
	_ = b.EnsureLoaded(r.Context())
	writeJSON(w, http.StatusOK, b.Snapshot())
}

// Повторная загрузка списка, как при перезагрузке страницы.
func (api *API) refresh(w http.ResponseWriter, r *http.Request) {
	b := api.board(w, r)
	_ = b.Load(r.Context())
	redirectHome(w, r)
}

func (api *API) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}
	// Текст уходит сервису как есть, экранирование делает html/template при выводе.
	title := r.PostFormValue("title")
	description := r.PostFormValue("description")

	b := api.board(w, r)
	if err := b.Create(r.Context(), title, description); err != nil {
		if errors.Is(err, board.ErrEmptyTitle) {
			b.SetInputs(title, description)
		}
	}
	redirectHome(w, r)
}

func (api *API) close(w http.ResponseWriter, r *http.Request) {
	b := api.board(w, r)
	_ = b.Close(r.Context(), announcementID(r))
	redirectHome(w, r)
}

func (api *API) like(w http.ResponseWriter, r *http.Request) {
	api.board(w, r).Like(announcementID(r))
	redirectHome(w, r)
}

func (api *API) dislike(w http.ResponseWriter, r *http.Request) {
	api.board(w, r).Dislike(announcementID(r))
	redirectHome(w, r)
}

func (api *API) comment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}
	id := announcementID(r)
	b := api.board(w, r)
	b.SetDraft(id, r.PostFormValue("comment"))
	b.PostComment(id)
	redirectHome(w, r)
}

// board возвращает доску текущей сессии, выдавая cookie новой сессии.
func (api *API) board(w http.ResponseWriter, r *http.Request) *board.Board {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if _, parseErr := uuid.Parse(c.Value); parseErr == nil {
			return api.sessions.Get(c.Value)
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	api.logger.Debug("new session", zap.String("session_id", id))
	return api.sessions.Get(id)
}

// announcementID возвращает id из пути ровно в том виде, в каком его выдал сервис.
// chi сопоставляет маршрут по RawPath, только если он задан, и тогда параметр
// еще экранирован. Иначе параметр уже декодирован из r.URL.Path.
func announcementID(r *http.Request) models.ID {
	raw := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return models.ID(raw)
	}
	id, err := url.PathUnescape(raw)
	if err != nil {
		return models.ID(raw)
	}
	return models.ID(id)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func formatTime(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("2006-01-02 15:04:05")
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Local().Format("2006-01-02 15:04:05")
	}
	return ""
}
