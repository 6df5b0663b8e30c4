package catalog

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/HenriqueSydney/03-marketspace/internal/domain/product"
)

// Backend is the slice of the API client the store needs.
type Backend interface {
	ListProducts(ctx context.Context, cr product.Criteria) ([]product.Product, error)
	ListOwnProducts(ctx context.Context, cr product.Criteria) ([]product.Product, error)
	GetProduct(ctx context.Context, id string) (product.Product, error)
	SetProductActive(ctx context.Context, id string, active bool) error
	DeleteProduct(ctx context.Context, id string) error
}

// Store is the single source of truth for the fetched product collections:
// full catalog, filtered view, the user's own listings and the detail
// record. It is a dumb cache; filtering policy lives with the callers.
//
// Overlapping fetches against the same collection do not race: each fetch
// takes a sequence number, and a response that was superseded by a newer
// fetch is discarded instead of overwriting fresher data.
type Store struct {
	backend Backend

	mu       sync.Mutex
	products []product.Product
	filtered []product.Product
	own      []product.Product
	detail   *product.Product
	slides   []product.ProductImage

	loading    int
	catalogSeq uint64
	ownSeq     uint64
	detailSeq  uint64
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

func (s *Store) begin(seq *uint64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading++
	*seq++
	return *seq
}

func (s *Store) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading--
}

// Loading reports whether any fetch is in flight. The counter is
// reference-counted so overlapping fetches cannot clear it prematurely.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading > 0
}

// FetchCatalog replaces the full catalog with the backend response and
// resets the filtered view to the freshly fetched set.
func (s *Store) FetchCatalog(ctx context.Context, cr product.Criteria) error {
	seq := s.begin(&s.catalogSeq)
	defer s.finish()

	items, err := s.backend.ListProducts(ctx, cr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.catalogSeq {
		return nil
	}
	s.products = items
	s.filtered = append([]product.Product(nil), items...)
	return nil
}

// FetchOwn replaces the current user's own listings.
func (s *Store) FetchOwn(ctx context.Context, cr product.Criteria) error {
	seq := s.begin(&s.ownSeq)
	defer s.finish()

	items, err := s.backend.ListOwnProducts(ctx, cr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.ownSeq {
		return nil
	}
	s.own = items
	return nil
}

// FetchDetail replaces the detail record and its slide image list.
func (s *Store) FetchDetail(ctx context.Context, productID string) error {
	seq := s.begin(&s.detailSeq)
	defer s.finish()

	p, err := s.backend.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.detailSeq {
		return nil
	}
	s.detail = &p
	s.slides = append([]product.ProductImage(nil), p.Images...)
	return nil
}

func (s *Store) Products() []product.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]product.Product(nil), s.products...)
}

func (s *Store) Filtered() []product.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]product.Product(nil), s.filtered...)
}

// SetFiltered replaces the filtered view. The store does not own filtering
// policy; callers compute the view and push it here.
func (s *Store) SetFiltered(products []product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filtered = append([]product.Product(nil), products...)
}

func (s *Store) OwnProducts() []product.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]product.Product(nil), s.own...)
}

func (s *Store) Detail() (product.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail == nil {
		return product.Product{}, false
	}
	return *s.detail, true
}

func (s *Store) Slides() []product.ProductImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]product.ProductImage(nil), s.slides...)
}

// ActiveOwnCount counts the user's active listings.
func (s *Store) ActiveOwnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, p := range s.own {
		if p.Active() {
			count++
		}
	}
	return count
}

// ToggleDetailActive flips the activation state of the detail record. The
// backend write comes first; the cached copies only change after it
// succeeds.
func (s *Store) ToggleDetailActive(ctx context.Context) error {
	s.mu.Lock()
	if s.detail == nil {
		s.mu.Unlock()
		return product.ErrNoDetail
	}
	id := s.detail.ID
	next := !s.detail.Active()
	s.mu.Unlock()

	if err := s.backend.SetProductActive(ctx, id, next); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail != nil && s.detail.ID == id {
		active := next
		s.detail.IsActive = &active
	}
	for i := range s.own {
		if s.own[i].ID == id {
			active := next
			s.own[i].IsActive = &active
		}
	}
	return nil
}

// RemoveDetail deletes the detail record on the backend and evicts it from
// the cached collections.
func (s *Store) RemoveDetail(ctx context.Context) error {
	s.mu.Lock()
	if s.detail == nil {
		s.mu.Unlock()
		return product.ErrNoDetail
	}
	id := s.detail.ID
	s.mu.Unlock()

	if err := s.backend.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = nil
	s.slides = nil
	own := s.own[:0]
	for _, p := range s.own {
		if p.ID != id {
			own = append(own, p)
		}
	}
	s.own = own
	return nil
}

// ContactSellerLink builds the messaging deep link for the detail record's
// seller, with the prefilled first message.
func (s *Store) ContactSellerLink() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail == nil {
		return "", product.ErrNoDetail
	}
	if s.detail.User == nil || s.detail.User.Tel == "" {
		return "", product.ErrNoSellerContact
	}

	msg := fmt.Sprintf("Olá! Vi seu anúncio do %s, no Marketspace. Gostaria se saber mais informações sobre o produto.", s.detail.Name)
	v := url.Values{}
	v.Set("text", msg)
	v.Set("phone", s.detail.User.Tel)
	return "whatsapp://send?" + v.Encode(), nil
}
