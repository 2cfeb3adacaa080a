package testimonials

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

const publicCacheKey = "testimonials:public"

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
		log.Error("testimonials public list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload, err := json.Marshal(map[string]interface{}{"success": true, "data": items})
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = h.cache.Set(ctx, publicCacheKey, payload, h.cacheTTL)

	log.Info("testimonials public list: ok", slog.Int("count", len(items)))
	transport.WriteRaw(w, http.StatusOK, payload)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := h.service.ListAdmin(ctx)
	if err != nil {
		log.Error("admin testimonials list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info("admin testimonials list: ok", slog.Int("count", len(items)))
	transport.WriteData(w, http.StatusOK, items)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	video, err := httpx.ReadFormFile(r, "video", media.MaxVideoBytes, "video/")
	if err != nil {
		if errors.Is(err, httpx.ErrNoFile) {
			log.Warn("testimonial create: missing video")
			transport.WriteError(w, http.StatusBadRequest, "Video is required")
			return
		}
		log.Warn("testimonial create: rejected upload", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := r.FormValue("name")
	if name == "" {
		log.Warn("testimonial create: missing name")
		transport.WriteError(w, http.StatusBadRequest, "Name is required")
		return
	}

	// Video transcoding is synchronous, give it room.
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	created, err := h.service.Create(ctx, video, name, r.FormValue("prefix"))
	if err != nil {
		log.Error("testimonial create: upstream error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.invalidate(ctx)
	log.Info("testimonial create: ok", slog.Int64("testimonial_id", created.ID),
		slog.Int("display_order", created.DisplayOrder))
	transport.WriteMessageData(w, http.StatusOK, "Testimonial created successfully", created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	id, err := parseID(r)
	if err != nil {
		transport.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	video, err := httpx.ReadFormFile(r, "video", media.MaxVideoBytes, "video/")
	if err != nil && !errors.Is(err, httpx.ErrNoFile) {
		log.Warn("testimonial update: rejected upload", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	updated, err := h.service.Update(ctx, id, video, r.FormValue("name"), r.FormValue("prefix"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("testimonial update: not found", slog.Int64("testimonial_id", id))
			transport.WriteError(w, http.StatusNotFound, "Testimonial not found")
			return
		}
		log.Error("testimonial update: upstream error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.invalidate(ctx)
	log.Info("testimonial update: ok", slog.Int64("testimonial_id", id))
	transport.WriteMessageData(w, http.StatusOK, "Testimonial updated successfully", updated)
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
			log.Warn("testimonial delete: not found", slog.Int64("testimonial_id", id))
			transport.WriteError(w, http.StatusNotFound, "Testimonial not found")
			return
		}
		log.Error("testimonial delete: upstream error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.invalidate(ctx)
	log.Info("testimonial delete: ok", slog.Int64("testimonial_id", id))
	transport.WriteMessage(w, http.StatusOK, "Testimonial deleted successfully")
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
			log.Warn("testimonial toggle: not found", slog.Int64("testimonial_id", id))
			transport.WriteError(w, http.StatusNotFound, "Testimonial not found")
			return
		}
		log.Error("testimonial toggle: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.invalidate(ctx)
	verb := "deactivated"
	if active {
		verb = "activated"
	}
	log.Info("testimonial toggle: ok", slog.Int64("testimonial_id", id), slog.Bool("is_active", active))
	transport.WriteMessageData(w, http.StatusOK, fmt.Sprintf("Testimonial %s", verb),
		map[string]bool{"is_active": active})
}

func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req ReorderRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil || req.Order == nil {
		log.Warn("testimonial reorder: missing order array")
		transport.WriteError(w, http.StatusBadRequest, "Order array is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := h.service.Reorder(ctx, req.Order); err != nil {
		log.Error("testimonial reorder: database error", slog.String("error", err.Error()))
		transport.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to update order", err)
		return
	}

	h.invalidate(ctx)
	log.Info("testimonial reorder: ok", slog.Int("count", len(req.Order)))
	transport.WriteMessage(w, http.StatusOK, "Order updated successfully")
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
		log.Error("testimonial view: database error", slog.String("error", err.Error()))
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
		log.Error("testimonial stats: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	transport.WriteData(w, http.StatusOK, map[string]interface{}{
		"stats":            stats,
		"top_testimonials": top,
	})
}

func (h *Handler) invalidate(ctx context.Context) {
	if err := h.cache.Delete(ctx, publicCacheKey); err != nil {
		h.log.Warn("testimonials cache invalidation failed", slog.String("error", err.Error()))
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
