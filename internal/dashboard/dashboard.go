// Package dashboard holds the view state of the collection desk and the
// handlers that change it. Each handler is one user action: it talks to the
// API at most a few times and leaves its outcome in the panel banner.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/dairy-collection-service/internal/client"
	"github.com/sangkips/dairy-collection-service/internal/pricing"
)

type API interface {
	ListCustomers(ctx context.Context) ([]client.Customer, error)
	GetCustomer(ctx context.Context, id string) (*client.CustomerDetail, error)
	CreateCustomer(ctx context.Context, customer client.NewCustomer) (string, error)
	DeleteCustomer(ctx context.Context, id string) (string, error)
	CreateEntry(ctx context.Context, entry client.NewEntry) (string, error)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Dashboard is not safe for concurrent use; actions are expected one at a time.
type Dashboard struct {
	api   API
	state State
}

func New(api API) *Dashboard {
	return &Dashboard{
		api:   api,
		state: State{Customers: map[string]client.Customer{}},
	}
}

// State returns a copy of the current view state.
func (d *Dashboard) State() State {
	return d.state.clone()
}

// Customers returns the known customers ordered by id.
func (d *Dashboard) Customers() []client.Customer {
	out := make([]client.Customer, 0, len(d.state.Customers))
	for _, c := range d.state.Customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (d *Dashboard) SetSearchID(id string) {
	d.state.SearchID = id
}

func (d *Dashboard) SetCustomerForm(form CustomerForm) {
	d.state.CustomerForm = form
}

func (d *Dashboard) SetEntryForm(form EntryForm) {
	d.state.EntryForm = form
}

// AmountPreview is the payment shown next to the entry form while typing.
func (d *Dashboard) AmountPreview() float64 {
	liters, err1 := parseQuantity(d.state.EntryForm.Liters)
	fat, err2 := parseQuantity(d.state.EntryForm.Fat)
	if err1 != nil || err2 != nil {
		return 0
	}
	return pricing.Preview(liters, fat)
}

// Load fetches the customer list once. There is no retry.
func (d *Dashboard) Load(ctx context.Context) {
	if err := d.refreshCustomers(ctx); err != nil {
		d.state.Admin.fail("Failed to load customer list from server.")
	}
}

// Search shows the profile of the customer in SearchID.
func (d *Dashboard) Search(ctx context.Context) {
	id := d.state.SearchID
	if id == "" {
		return
	}
	d.state.Search.reset()

	if err := d.fetchDetail(ctx, id); err != nil {
		return
	}
	d.state.Entry.reset()
}

func (d *Dashboard) AddCustomer(ctx context.Context) {
	d.state.Admin.reset()

	form := d.state.CustomerForm
	if form.ID == "" || form.Name == "" || form.Mobile == "" {
		d.state.Admin.fail("ID, Name, and Mobile are all required.")
		return
	}

	_, err := d.api.CreateCustomer(ctx, client.NewCustomer{ID: form.ID, Name: form.Name, Mobile: form.Mobile})
	if err != nil {
		d.state.Admin.fail("Failed to add customer. " + reason(err))
		return
	}

	d.state.Admin.succeed("Customer added successfully!")
	d.state.CustomerForm = CustomerForm{}
	if err := d.refreshCustomers(ctx); err != nil {
		d.state.Admin.fail("Failed to load customer list from server.")
	}
}

// RemoveCustomer deletes the customer after confirm approves. A declined
// confirmation leaves the state untouched and returns false.
func (d *Dashboard) RemoveCustomer(ctx context.Context, id string, confirm Confirmer) bool {
	name := id
	if c, ok := d.state.Customers[id]; ok && c.Name != "" {
		name = c.Name
	}
	if confirm == nil || !confirm.Confirm(fmt.Sprintf("Are you sure you want to delete %s (ID: %s)?", name, id)) {
		return false
	}

	d.state.Admin.reset()

	if _, err := d.api.DeleteCustomer(ctx, id); err != nil {
		d.state.Admin.fail(fmt.Sprintf("Failed to delete customer %s. %s", id, reason(err)))
		return true
	}

	d.state.Admin.succeed(fmt.Sprintf("Customer %s deleted successfully.", id))
	if err := d.refreshCustomers(ctx); err != nil {
		d.state.Admin.fail("Failed to load customer list from server.")
	}
	if d.state.Current != nil && d.state.Current.ID == id {
		d.state.Current = nil
	}
	return true
}

// AddEntry records a collection for the displayed customer. Inputs are
// checked and the amount is priced before anything is sent.
func (d *Dashboard) AddEntry(ctx context.Context) {
	d.state.Entry.reset()

	if d.state.Current == nil {
		d.state.Entry.fail("Search for a customer before adding an entry.")
		return
	}

	liters, err1 := parseQuantity(d.state.EntryForm.Liters)
	fat, err2 := parseQuantity(d.state.EntryForm.Fat)
	if err1 != nil || err2 != nil {
		d.state.Entry.fail("Liters and Fat must be positive numbers.")
		return
	}
	amount, err := pricing.Amount(liters, fat)
	if errors.Is(err, pricing.ErrOutOfRange) {
		d.state.Entry.fail("Liters and Fat are too large.")
		return
	}
	if err != nil {
		d.state.Entry.fail("Liters and Fat must be positive numbers.")
		return
	}

	customerID := d.state.Current.ID
	_, err = d.api.CreateEntry(ctx, client.NewEntry{
		CustomerID: customerID,
		Liters:     liters,
		Fat:        fat,
		Amount:     amount,
	})
	if err != nil {
		d.state.Entry.fail("Failed to add milk entry. " + reason(err))
		return
	}

	d.state.Entry.succeed("Entry added successfully!")
	d.state.EntryForm = EntryForm{}
	_ = d.fetchDetail(ctx, customerID)
}

func (d *Dashboard) refreshCustomers(ctx context.Context) error {
	list, err := d.api.ListCustomers(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("failed to fetch customer list")
		return err
	}

	customers := make(map[string]client.Customer, len(list))
	for _, c := range list {
		customers[c.ID] = c
	}
	d.state.Customers = customers
	return nil
}

// fetchDetail replaces the displayed profile. On failure the profile is
// cleared and the search banner carries the reason.
func (d *Dashboard) fetchDetail(ctx context.Context, id string) error {
	detail, err := d.api.GetCustomer(ctx, id)
	if err != nil {
		log.Debug().Err(err).Str("customer_id", id).Msg("failed to fetch customer detail")
		if client.IsNotFound(err) {
			d.state.Search.fail(fmt.Sprintf("Customer ID %s not found.", id))
		} else {
			d.state.Search.fail("Failed to fetch customer data.")
		}
		d.state.Current = nil
		return err
	}

	if detail.Entries == nil {
		detail.Entries = []client.Entry{}
	}
	d.state.Current = detail
	return nil
}

// reason renders err the way the panels show it: the server's message when
// there is one, otherwise a network failure.
func reason(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message == "" {
			return "(Unknown error)"
		}
		return "(" + apiErr.Message + ")"
	}
	log.Debug().Err(err).Msg("request did not reach the server")
	return "(Network error)"
}

func parseQuantity(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
