package dashboard

import (
	"github.com/sangkips/dairy-collection-service/internal/client"
)

// Banner is the message line of one panel. At most one of Error and Success
// is set; both are cleared when the panel starts its next action.
type Banner struct {
	Error   string `json:"error,omitempty"`
	Success string `json:"success,omitempty"`
}

func (b *Banner) reset() {
	*b = Banner{}
}

func (b *Banner) fail(msg string) {
	*b = Banner{Error: msg}
}

func (b *Banner) succeed(msg string) {
	*b = Banner{Success: msg}
}

// Idle reports whether the panel shows no message.
func (b Banner) Idle() bool {
	return b.Error == "" && b.Success == ""
}

type CustomerForm struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

// EntryForm holds the raw text typed into the entry inputs.
type EntryForm struct {
	Liters string `json:"liters"`
	Fat    string `json:"fat"`
}

// State is everything the screen shows. It is plain data and serializes to
// JSON as is.
type State struct {
	Customers    map[string]client.Customer `json:"customers"`
	Current      *client.CustomerDetail     `json:"current,omitempty"`
	SearchID     string                     `json:"search_id"`
	CustomerForm CustomerForm               `json:"customer_form"`
	EntryForm    EntryForm                  `json:"entry_form"`
	Admin        Banner                     `json:"admin"`
	Search       Banner                     `json:"search"`
	Entry        Banner                     `json:"entry"`
}

func (s State) clone() State {
	out := s
	out.Customers = make(map[string]client.Customer, len(s.Customers))
	for id, c := range s.Customers {
		out.Customers[id] = c
	}
	if s.Current != nil {
		current := *s.Current
		current.Entries = make([]client.Entry, len(s.Current.Entries))
		copy(current.Entries, s.Current.Entries)
		out.Current = &current
	}
	return out
}
