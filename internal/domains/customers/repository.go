package customers

import (
	"context"

	"github.com/sangkips/dairy-collection-service/internal/domains/customers/models"
)

type Repository interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	GetCustomer(ctx context.Context, id string) (models.Customer, error)
	CreateCustomer(ctx context.Context, customer models.CreateCustomerParams) error
	DeleteCustomer(ctx context.Context, id string) (int64, error)
}

type repository struct {
	q *models.Queries
}

func NewRepository(db models.DBTX) Repository {
	return &repository{q: models.New(db)}
}

func (r *repository) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return r.q.ListCustomers(ctx)
}

func (r *repository) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	return r.q.GetCustomer(ctx, id)
}

func (r *repository) CreateCustomer(ctx context.Context, customer models.CreateCustomerParams) error {
	return r.q.CreateCustomer(ctx, customer)
}

func (r *repository) DeleteCustomer(ctx context.Context, id string) (int64, error) {
	return r.q.DeleteCustomer(ctx, id)
}
