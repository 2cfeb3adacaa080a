package leads

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"payana-backend/internal/httpx"
	"payana-backend/internal/middleware"
	"payana-backend/internal/transport"
	"payana-backend/internal/validation"
)

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
	}
}

func (h *Handler) CreateStudy(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req StudyRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("study submit: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	lead, err := h.service.CreateStudy(ctx, req)
	if err != nil {
		log.Error("study submit: database error", slog.String("error", err.Error()))
		transport.WriteErrorDetail(w, http.StatusInternalServerError, "Database error", err)
		return
	}

	h.notifyAsync(func(notifyCtx context.Context) error {
		return h.service.NotifyStudy(notifyCtx, lead)
	}, "study", lead.ID)

	log.Info("study submit: ok", slog.Int64("lead_id", lead.ID))
	transport.WriteMessageData(w, http.StatusOK, "Form submitted successfully", lead)
}

func (h *Handler) CreateWork(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req WorkRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("work submit: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	lead, err := h.service.CreateWork(ctx, req)
	if err != nil {
		log.Error("work submit: database error", slog.String("error", err.Error()))
		transport.WriteErrorDetail(w, http.StatusInternalServerError, "Database error", err)
		return
	}

	h.notifyAsync(func(notifyCtx context.Context) error {
		return h.service.NotifyWork(notifyCtx, lead)
	}, "work", lead.ID)

	log.Info("work submit: ok", slog.Int64("lead_id", lead.ID))
	transport.WriteMessageData(w, http.StatusOK, "Work profile saved successfully", lead)
}

func (h *Handler) CreateInvest(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req InvestRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("invest submit: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("invest submit: validation error")
		transport.WriteError(w, http.StatusBadRequest, "name, email and country are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	lead, err := h.service.CreateInvest(ctx, req)
	if err != nil {
		log.Error("invest submit: database error", slog.String("error", err.Error()))
		transport.WriteErrorDetail(w, http.StatusInternalServerError, "Database error", err)
		return
	}

	h.notifyAsync(func(notifyCtx context.Context) error {
		return h.service.NotifyInvest(notifyCtx, lead)
	}, "invest", lead.ID)

	log.Info("invest submit: ok", slog.Int64("lead_id", lead.ID))
	transport.WriteMessageData(w, http.StatusOK, "Investment inquiry submitted successfully", lead)
}

func (h *Handler) ListStudy(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "study", func(ctx context.Context) (interface{}, int, error) {
		items, err := h.service.ListStudy(ctx)
		return items, len(items), err
	})
}

func (h *Handler) ListWork(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "work", func(ctx context.Context) (interface{}, int, error) {
		items, err := h.service.ListWork(ctx)
		return items, len(items), err
	})
}

func (h *Handler) ListInvest(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "invest", func(ctx context.Context) (interface{}, int, error) {
		items, err := h.service.ListInvest(ctx)
		return items, len(items), err
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, kind string, fetch func(ctx context.Context) (interface{}, int, error)) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, count, err := fetch(ctx)
	if err != nil {
		log.Error("admin leads list: database error",
			slog.String("kind", kind),
			slog.String("error", err.Error()),
		)
		transport.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info("admin leads list: ok", slog.String("kind", kind), slog.Int("count", count))
	transport.WriteData(w, http.StatusOK, items)
}

// notifyAsync fires the staff email without holding the response path. The
// goroutine gets its own context so a finished request does not cancel it.
func (h *Handler) notifyAsync(send func(ctx context.Context) error, kind string, leadID int64) {
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()
		if err := send(notifyCtx); err != nil {
			h.log.Warn("lead notification failed",
				slog.String("kind", kind),
				slog.Int64("lead_id", leadID),
				slog.String("error", err.Error()),
			)
		}
	}()
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
