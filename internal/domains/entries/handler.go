package entries

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sangkips/dairy-collection-service/internal/domains/entries/models"
	"github.com/sangkips/dairy-collection-service/internal/handlers"
)

type Handler struct {
	svc *Service
}

func NewHandler(db models.DBTX) *Handler {
	return NewHandlerWithRepository(NewRepository(db))
}

func NewHandlerWithRepository(repo Repository) *Handler {
	return &Handler{svc: NewService(repo)}
}

func (h *Handler) RegisterEntryRoutes(r chi.Router) {
	r.Post("/", h.createEntry)
}

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest

	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if _, err := h.svc.CreateEntry(r.Context(), req); err != nil {
		handlers.RespondWithAppError(w, err, "Failed to save entry to database.")
		return
	}

	handlers.RespondWithMessage(w, http.StatusCreated, "Entry saved successfully.")
}
