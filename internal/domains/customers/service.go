package customers

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/dairy-collection-service/internal/apperrors"
	"github.com/sangkips/dairy-collection-service/internal/db"
	"github.com/sangkips/dairy-collection-service/internal/domains/customers/models"
	entriesModels "github.com/sangkips/dairy-collection-service/internal/domains/entries/models"
	"github.com/sangkips/dairy-collection-service/internal/handlers"
)

var validate = validator.New()

type Service struct {
	repo    Repository
	entries EntryLister
}

func NewService(repo Repository, entries EntryLister) *Service {
	return &Service{
		repo:    repo,
		entries: entries,
	}
}

// EntryLister provides the entry history shown with a customer.
// *entries.Service satisfies it.
type EntryLister interface {
	ListEntries(ctx context.Context, customerID string) ([]entriesModels.MilkEntry, error)
}

type CreateCustomerRequest struct {
	ID     handlers.ExternalID `json:"id" validate:"required"`
	Name   string              `json:"name" validate:"required"`
	Mobile string              `json:"mobile" validate:"required"`
}

// CustomerDetail is a customer together with its entries, newest first.
type CustomerDetail struct {
	ID      string                    `json:"id"`
	Name    string                    `json:"name"`
	Mobile  string                    `json:"mobile"`
	Entries []entriesModels.MilkEntry `json:"entries"`
}

func (s *Service) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list customers")
		return nil, apperrors.Internal("Failed to fetch customers from database.", err)
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	return customers, nil
}

// GetCustomerDetail reads the customer and then its entries. The two reads
// are not isolated from each other.
func (s *Service) GetCustomerDetail(ctx context.Context, id string) (*CustomerDetail, error) {
	customer, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Customer not found")
		}
		log.Error().Err(err).Str("customer_id", id).Msg("failed to get customer")
		return nil, apperrors.Internal("Failed to fetch customer details from database.", err)
	}

	entries, err := s.entries.ListEntries(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("customer_id", id).Msg("failed to list milk entries")
		return nil, apperrors.Internal("Failed to fetch customer details from database.", err)
	}

	return &CustomerDetail{
		ID:      customer.ID,
		Name:    customer.Name,
		Mobile:  customer.Mobile,
		Entries: entries,
	}, nil
}

func (s *Service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) error {
	if err := validate.Struct(req); err != nil {
		return apperrors.Validation("ID, Name, and Mobile are all required.")
	}

	err := s.repo.CreateCustomer(ctx, models.CreateCustomerParams{
		ID:     req.ID.String(),
		Name:   req.Name,
		Mobile: req.Mobile,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Info().Str("customer_id", req.ID.String()).Msg("customer id already exists")
			return apperrors.Conflict("This ID already exists.", err)
		}
		log.Error().Err(err).Str("customer_id", req.ID.String()).Msg("failed to create customer")
		return apperrors.Internal("Failed to add customer to database.", err)
	}

	log.Info().Str("customer_id", req.ID.String()).Msg("customer created")
	return nil
}

// DeleteCustomer removes the customer; its entries go with it through the
// foreign key's ON DELETE CASCADE.
func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	affected, err := s.repo.DeleteCustomer(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("customer_id", id).Msg("failed to delete customer")
		return apperrors.Internal("Failed to delete customer from database.", err)
	}
	if affected == 0 {
		return apperrors.NotFound("Customer to delete was not found.")
	}

	log.Info().Str("customer_id", id).Msg("customer deleted")
	return nil
}
