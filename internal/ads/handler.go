package ads

import (
	"context"
	"encoding/json"
	"errors"
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

const activeCacheKey = "ads:active"

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

// Active serves the site banner. When no ad is active the payload carries
// an explicit null so the frontend can hide the slot.
func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if payload, ok, err := h.cache.Get(ctx, activeCacheKey); err == nil && ok {
		transport.WriteRaw(w, http.StatusOK, payload)
		return
	}

	ad, ok, err := h.service.Active(ctx)
	if err != nil {
		log.Error("active ad: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	body := map[string]interface{}{"success": true, "data": nil}
	if ok {
		body["data"] = ad
	}
	payload, err := json.Marshal(body)
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = h.cache.Set(ctx, activeCacheKey, payload, h.cacheTTL)

	transport.WriteRaw(w, http.StatusOK, payload)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := h.service.ListAdmin(ctx)
	if err != nil {
		log.Error("admin ads list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info("admin ads list: ok", slog.Int("count", len(items)))
	transport.WriteData(w, http.StatusOK, items)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	image, err := httpx.ReadFormFile(r, "image", media.MaxImageBytes, "image/")
	if err != nil {
		if errors.Is(err, httpx.ErrNoFile) {
			log.Warn("ad create: missing image")
			transport.WriteError(w, http.StatusBadRequest, "Image is required")
			return
		}
		log.Warn("ad create: rejected upload", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	created, err := h.service.Create(ctx, image)
	if err != nil {
		log.Error("ad create: upstream error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.invalidate(ctx)
	log.Info("ad create: ok", slog.Int64("ad_id", created.ID))
	transport.WriteMessageData(w, http.StatusOK, "Ad created successfully", created)
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
		log.Warn("ad update: rejected upload", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	updated, err := h.service.Update(ctx, id, image)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("ad update: not found", slog.Int64("ad_id", id))
			transport.WriteError(w, http.StatusNotFound, "Ad not found")
			return
		}
		log.Error("ad update: upstream error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.invalidate(ctx)
	log.Info("ad update: ok", slog.Int64("ad_id", id))
	transport.WriteMessageData(w, http.StatusOK, "Ad updated successfully", updated)
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
			log.Warn("ad delete: not found", slog.Int64("ad_id", id))
			transport.WriteError(w, http.StatusNotFound, "Ad not found")
			return
		}
		log.Error("ad delete: upstream error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.invalidate(ctx)
	log.Info("ad delete: ok", slog.Int64("ad_id", id))
	transport.WriteMessage(w, http.StatusOK, "Ad deleted successfully")
}

func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	id, err := parseID(r)
	if err != nil {
		transport.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	ad, err := h.service.SetActive(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("ad set-active: not found", slog.Int64("ad_id", id))
			transport.WriteError(w, http.StatusNotFound, "Ad not found")
			return
		}
		log.Error("ad set-active: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.invalidate(ctx)
	log.Info("ad set-active: ok", slog.Int64("ad_id", id))
	transport.WriteMessageData(w, http.StatusOK, "Ad activated successfully", ad)
}

func (h *Handler) DeactivateAll(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := h.service.DeactivateAll(ctx); err != nil {
		log.Error("ads deactivate-all: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.invalidate(ctx)
	log.Info("ads deactivate-all: ok")
	transport.WriteMessage(w, http.StatusOK, "All ads deactivated")
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stats, err := h.service.Stats(ctx)
	if err != nil {
		log.Error("ad stats: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	transport.WriteData(w, http.StatusOK, stats)
}

func (h *Handler) invalidate(ctx context.Context) {
	if err := h.cache.Delete(ctx, activeCacheKey); err != nil {
		h.log.Warn("ads cache invalidation failed", slog.String("error", err.Error()))
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
