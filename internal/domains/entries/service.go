package entries

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/dairy-collection-service/internal/apperrors"
	"github.com/sangkips/dairy-collection-service/internal/db"
	"github.com/sangkips/dairy-collection-service/internal/domains/entries/models"
	"github.com/sangkips/dairy-collection-service/internal/handlers"
)

var validate = validator.New()

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateEntryRequest is the body of POST /api/entries. A zero number counts
// as missing. Amount is taken as sent by the client.
type CreateEntryRequest struct {
	CustomerID handlers.ExternalID `json:"customer_id" validate:"required"`
	Liters     float64             `json:"liters" validate:"required"`
	Fat        float64             `json:"fat" validate:"required"`
	Amount     float64             `json:"amount" validate:"required"`
}

// CreateEntry records a collection dated with the server clock. An unknown
// customer is rejected by the foreign key and reported as an internal error.
func (s *Service) CreateEntry(ctx context.Context, req CreateEntryRequest) (models.MilkEntry, error) {
	if err := validate.Struct(req); err != nil {
		return models.MilkEntry{}, apperrors.Validation("All fields are required.")
	}

	entry, err := s.repo.CreateMilkEntry(ctx, models.CreateMilkEntryParams{
		CustomerID: req.CustomerID.String(),
		Date:       s.now(),
		Liters:     req.Liters,
		Fat:        req.Fat,
		Amount:     req.Amount,
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			log.Warn().Err(err).
				Str("customer_id", req.CustomerID.String()).
				Str("pg_code", db.ErrorCode(err)).
				Msg("milk entry rejected: unknown customer")
		} else {
			log.Error().Err(err).
				Str("customer_id", req.CustomerID.String()).
				Msg("failed to save milk entry")
		}
		return models.MilkEntry{}, apperrors.Internal("Failed to save entry to database.", err)
	}

	log.Info().
		Int64("entry_id", entry.EntryID).
		Str("customer_id", entry.CustomerID).
		Float64("amount", entry.Amount).
		Msg("milk entry saved")

	return entry, nil
}

// ListEntries returns the customer's entries newest first. The result is
// never nil.
func (s *Service) ListEntries(ctx context.Context, customerID string) ([]models.MilkEntry, error) {
	entries, err := s.repo.ListMilkEntriesByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.MilkEntry{}
	}
	return entries, nil
}
