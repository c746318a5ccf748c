package health

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/sangkips/dairy-collection-service/internal/handlers"
)

// Pinger is the part of *sql.DB the health check needs.
type Pinger interface {
	PingContext(ctx context.Context) error
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Handler struct {
	db      Pinger
	timeout time.Duration
}

func NewHandler(db Pinger) *Handler {
	return &Handler{
		db:      db,
		timeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Checks    map[string]Check `json:"checks"`
	Timestamp time.Time        `json:"timestamp"`
}

// Check represents a single health check
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health reports whether the store accepts queries. It never touches the
// customer tables.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	dbCheck := h.checkDatabase(ctx)

	status := "healthy"
	statusCode := http.StatusOK
	if dbCheck.Status != "healthy" {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	handlers.RespondWithJSON(w, statusCode, HealthResponse{
		Status:    status,
		Checks:    map[string]Check{"database": dbCheck},
		Timestamp: time.Now(),
	})
}

// checkDatabase is healthy only when the pool answers both a ping and SELECT 1.
func (h *Handler) checkDatabase(ctx context.Context) Check {
	if h.db == nil {
		return Check{Status: "unhealthy", Message: "no database configured"}
	}

	var one int
	err := h.db.PingContext(ctx)
	if err == nil {
		err = h.db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
	}
	if err != nil {
		return Check{Status: "unhealthy", Message: err.Error()}
	}
	return Check{Status: "healthy"}
}
