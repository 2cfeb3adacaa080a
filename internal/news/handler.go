package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"payana-backend/internal/cache"
	"payana-backend/internal/httpx"
	"payana-backend/internal/media"
	"payana-backend/internal/middleware"
	"payana-backend/internal/transport"
)

const publicCacheKey = "news:public"

type Handler struct {
	service  *Service
	cache    cache.Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

func NewHandler(service *Service, c cache.Cache, cacheTTL time.Duration, log *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		cache:    c,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if payload, ok, err := h.cache.Get(ctx, publicCacheKey); err == nil && ok {
		transport.WriteRaw(w, http.StatusOK, payload)
		return
	}

	items, err := h.service.ListPublic(ctx)
	if err != nil {
		log.Error("news public list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload, err := json.Marshal(map[string]interface{}{"success": true, "data": items})
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = h.cache.Set(ctx, publicCacheKey, payload, h.cacheTTL)

	log.Info("news public list: ok", slog.Int("count", len(items)))
	transport.WriteRaw(w, http.StatusOK, payload)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := h.service.ListAdmin(ctx)
	if err != nil {
		log.Error("admin news list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info("admin news list: ok", slog.Int("count", len(items)))
	transport.WriteData(w, http.StatusOK, items)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	image, err := httpx.ReadFormFile(r, "image", media.MaxImageBytes, "image/")
	if err != nil {
		if errors.Is(err, httpx.ErrNoFile) {
			log.Warn("news create: missing image")
			transport.WriteError(w, http.StatusBadRequest, "Image is required")
			return
		}
		log.Warn("news create: rejected upload", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	date := r.FormValue("date")
	timeOfDay := r.FormValue("time")
	description := r.FormValue("description")
	tag := r.FormValue("tag")
	if date == "" || timeOfDay == "" || description == "" || tag == "" {
		log.Warn("news create: missing fields")
		transport.WriteError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	article, err := h.service.Create(ctx, image, date, timeOfDay, description, tag)
	if err != nil {
		log.Error("news create: upstream error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.invalidate(ctx)
	log.Info("news create: ok", slog.Int64("article_id", article.ID))
	transport.WriteMessageData(w, http.StatusOK, "Article created successfully", article)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	id, err := parseID(r)
	if err != nil {
		transport.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	image, err := httpx.ReadFormFile(r, "image", media.MaxImageBytes, "image/")
	if err != nil && !errors.Is(err, httpx.ErrNoFile) {
		log.Warn("news update: rejected upload", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	input := UpdateInput{
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Description: r.FormValue("description"),
		Tag:         r.FormValue("tag"),
		Image:       image,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	article, err := h.service.Update(ctx, id, input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("news update: not found", slog.Int64("article_id", id))
			transport.WriteError(w, http.StatusNotFound, "Article not found")
			return
		}
		log.Error("news update: upstream error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.invalidate(ctx)
	log.Info("news update: ok", slog.Int64("article_id", id))
	transport.WriteMessageData(w, http.StatusOK, "Article updated successfully", article)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	id, err := parseID(r)
	if err != nil {
		transport.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("news delete: not found", slog.Int64("article_id", id))
			transport.WriteError(w, http.StatusNotFound, "Article not found")
			return
		}
		log.Error("news delete: upstream error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.invalidate(ctx)
	log.Info("news delete: ok", slog.Int64("article_id", id))
	transport.WriteMessage(w, http.StatusOK, "Article deleted successfully")
}

func (h *Handler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	id, err := parseID(r)
	if err != nil {
		transport.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	active, err := h.service.ToggleActive(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("news toggle: not found", slog.Int64("article_id", id))
			transport.WriteError(w, http.StatusNotFound, "Article not found")
			return
		}
		log.Error("news toggle: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.invalidate(ctx)
	verb := "deactivated"
	if active {
		verb = "activated"
	}
	log.Info("news toggle: ok", slog.Int64("article_id", id), slog.Bool("is_active", active))
	transport.WriteMessageData(w, http.StatusOK, fmt.Sprintf("Article %s", verb),
		map[string]bool{"is_active": active})
}

func (h *Handler) IncrementViews(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	id, err := parseID(r)
	if err != nil {
		transport.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.IncrementViews(ctx, id); err != nil {
		log.Error("news view: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	transport.WriteMessage(w, http.StatusOK, "View counted")
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	stats, top, err := h.service.Stats(ctx)
	if err != nil {
		log.Error("news stats: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	transport.WriteData(w, http.StatusOK, map[string]interface{}{
		"stats":        stats,
		"top_articles": top,
	})
}

func (h *Handler) invalidate(ctx context.Context) {
	if err := h.cache.Delete(ctx, publicCacheKey); err != nil {
		h.log.Warn("news cache invalidation failed", slog.String("error", err.Error()))
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
