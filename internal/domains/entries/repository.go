package entries

import (
	"context"

	"github.com/sangkips/dairy-collection-service/internal/domains/entries/models"
)

type Repository interface {
	CreateMilkEntry(ctx context.Context, entry models.CreateMilkEntryParams) (models.MilkEntry, error)
	ListMilkEntriesByCustomer(ctx context.Context, customerID string) ([]models.MilkEntry, error)
}

type repository struct {
	q *models.Queries
}

func NewRepository(db models.DBTX) Repository {
	return &repository{q: models.New(db)}
}

func (r *repository) CreateMilkEntry(ctx context.Context, entry models.CreateMilkEntryParams) (models.MilkEntry, error) {
	return r.q.CreateMilkEntry(ctx, entry)
}

func (r *repository) ListMilkEntriesByCustomer(ctx context.Context, customerID string) ([]models.MilkEntry, error) {
	return r.q.ListMilkEntriesByCustomer(ctx, customerID)
}
