package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"gobasera/collabapp/pkg/storage"
	"gobasera/pkg/middleware"
	"gobasera/pkg/models"
	"gobasera/pkg/sanitize"
)

// API структура.
type API struct {
	db     storage.Store
	r      *chi.Mux
	logger *zap.Logger
}

// Конструктор API.
func New(db storage.Store, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := API{db: db, r: chi.NewRouter(), logger: logger}
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

	api.r.Get("/", api.listHandler)
	api.r.Post("/", api.createHandler)
	api.r.Patch("/{id}", api.updateStatusHandler)
}

// Обработчик для получения списка объявлений.
func (api *API) listHandler(w http.ResponseWriter, r *http.Request) {
	items, err := api.db.List(r.Context())
	if err != nil {
		api.logger.Error("list announcements failed", zap.Error(err))
		http.Error(w, "не удалось получить объявления", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Обработчик для добавления объявления.
func (api *API) createHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	// Разметку сервис не хранит, это его собственная политика.
	req.Title = sanitize.Text(req.Title)
	req.Description = sanitize.Text(req.Description)
	if req.Title == "" {
		http.Error(w, "заголовок является обязательным", http.StatusBadRequest)
		return
	}

	item, err := api.db.Add(r.Context(), req)
	if err != nil {
		api.logger.Error("add announcement failed", zap.Error(err))
		http.Error(w, "не удалось добавить объявление", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Обработчик для смены статуса объявления.
func (api *API) updateStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil || id == "" {
		http.Error(w, "неверный id", http.StatusBadRequest)
		return
	}

	var req models.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	item, err := api.db.SetStatus(r.Context(), models.ID(id), req.Status)
	switch {
	case errors.Is(err, storage.ErrInvalidStatus):
		http.Error(w, "неизвестный статус", http.StatusBadRequest)
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "объявление не найдено", http.StatusNotFound)
	case err != nil:
		api.logger.Error("update status failed", zap.String("id", id), zap.Error(err))
		http.Error(w, "не удалось обновить статус", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, item)
	}
}

// pathID декодирует id один раз. Если RawPath пуст, chi уже отдал декодированное значение.
func pathID(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return raw, nil
	}
	return url.PathUnescape(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
