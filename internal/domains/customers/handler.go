package customers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/sangkips/dairy-collection-service/internal/domains/customers/models"
	"github.com/sangkips/dairy-collection-service/internal/domains/entries"
	"github.com/sangkips/dairy-collection-service/internal/handlers"
)

type Handler struct {
	svc *Service
}

func NewHandler(db models.DBTX) *Handler {
	repo := NewRepository(db)
	entriesRepo := entries.NewRepository(db)
	return NewHandlerWithRepositories(repo, entriesRepo)
}

func NewHandlerWithRepositories(repo Repository, entriesRepo entries.Repository) *Handler {
	return &Handler{svc: NewService(repo, entries.NewService(entriesRepo))}
}

func (h *Handler) RegisterCustomerRoutes(r chi.Router) {
	r.Get("/", h.listCustomers)
	r.Post("/", h.createCustomer)
	r.Get("/{id}", h.getCustomer)
	r.Delete("/{id}", h.deleteCustomer)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.ListCustomers(r.Context())
	if err != nil {
		handlers.RespondWithAppError(w, err, "Failed to fetch customers from database.")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, customers)
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	id := customerID(r)

	detail, err := h.svc.GetCustomerDetail(r.Context(), id)
	if err != nil {
		handlers.RespondWithAppError(w, err, "Failed to fetch customer details from database.")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, detail)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest

	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.svc.CreateCustomer(r.Context(), req); err != nil {
		handlers.RespondWithAppError(w, err, "Failed to add customer to database.")
		return
	}

	handlers.RespondWithMessage(w, http.StatusCreated, "Customer added successfully.")
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := customerID(r)

	if err := h.svc.DeleteCustomer(r.Context(), id); err != nil {
		handlers.RespondWithAppError(w, err, "Failed to delete customer from database.")
		return
	}

	handlers.RespondWithMessage(w, http.StatusOK, "Customer deleted successfully.")
}

// customerID returns the decoded {id} path segment. chi routes on RawPath
// when the request has one, so only then is the param still escaped.
func customerID(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id
	}
	if unescaped, err := url.PathUnescape(id); err == nil {
		return unescaped
	}
	return id
}
