package system

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"payana-backend/internal/transport"
)

type Handler struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewHandler(pool *pgxpool.Pool, log *slog.Logger) *Handler {
	return &Handler{pool: pool, log: log}
}

// Health reports liveness without touching the database.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "OK",
		"message":   "Payana Overseas API is running",
		"database":  "Connected to PostgreSQL",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// TestDB runs a round trip through the pool so operators can tell a dead
// database apart from a dead process.
func (h *Handler) TestDB(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var now time.Time
	if err := h.pool.QueryRow(ctx, `SELECT NOW()`).Scan(&now); err != nil {
		h.log.Error("database check failed", slog.String("error", err.Error()))
		transport.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}

	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "Database connection successful",
		"current_time": now,
	})
}
