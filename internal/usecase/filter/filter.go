package filter

import (
	"context"
	"strings"

	"github.com/HenriqueSydney/03-marketspace/internal/domain/product"
)

// SearchByName is the search-box filter: a case-insensitive substring match
// against the full catalog, cheap enough to run on every keystroke.
func SearchByName(products []product.Product, query string) []product.Product {
	query = strings.ToLower(query)
	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
	}
	return out
}

// Catalog is the slice of the product store the modal filter drives.
type Catalog interface {
	FetchCatalog(ctx context.Context, cr product.Criteria) error
}

// Modal holds the modal filter state: the exclusive condition toggles, the
// trade switch, the payment method selection and the shared text query.
// Applying goes to the backend, unlike the local search-box filter.
type Modal struct {
	catalog Catalog

	isNew       bool
	isUsed      bool
	acceptTrade bool
	payments    []string
	query       string
}

func NewModal(catalog Catalog) *Modal {
	return &Modal{catalog: catalog}
}

// ToggleCondition flips one of the two exclusive condition toggles,
// clearing the other. Toggling the selected one clears it, so at most one
// is ever on.
func (m *Modal) ToggleCondition(condition string) {
	switch condition {
	case "new":
		m.isNew = !m.isNew
		if m.isNew {
			m.isUsed = false
		}
	case "used":
		m.isUsed = !m.isUsed
		if m.isUsed {
			m.isNew = false
		}
	}
}

func (m *Modal) SetAcceptTrade(v bool) { m.acceptTrade = v }

func (m *Modal) SetPaymentMethods(keys []string) {
	m.payments = append([]string(nil), keys...)
}

func (m *Modal) SetQuery(q string) { m.query = q }

func (m *Modal) Query() string { return m.query }

// Criteria assembles the backend filter. is_new is omitted entirely when
// neither condition is selected; both-unselected is not the same as
// both-selected. The trade switch always travels: off means
// accept_trade=false, not an unfiltered query.
func (m *Modal) Criteria() product.Criteria {
	acceptTrade := m.acceptTrade
	cr := product.Criteria{
		AcceptTrade:    &acceptTrade,
		PaymentMethods: append([]string(nil), m.payments...),
		Query:          m.query,
	}
	if m.isNew || m.isUsed {
		isNew := m.isNew
		cr.IsNew = &isNew
	}
	return cr
}

// Apply sends the assembled criteria to the backend; the store replaces the
// filtered view with the response.
func (m *Modal) Apply(ctx context.Context) error {
	return m.catalog.FetchCatalog(ctx, m.Criteria())
}

// Reset clears every modal field and the query, then re-queries with empty
// criteria so catalog and filtered view are repopulated.
func (m *Modal) Reset(ctx context.Context) error {
	m.isNew = false
	m.isUsed = false
	m.acceptTrade = false
	m.payments = nil
	m.query = ""
	return m.catalog.FetchCatalog(ctx, product.Criteria{})
}
