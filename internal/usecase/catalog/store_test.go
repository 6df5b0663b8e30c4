package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/HenriqueSydney/03-marketspace/internal/domain/product"
)

func boolPtr(v bool) *bool { return &v }

type mockBackend struct {
	mu sync.Mutex

	listResponses [][]product.Product
	listGate      chan struct{} // when set, the first list call blocks on it
	listCalls     int

	ownResponse []product.Product
	ownErr      error

	detail    product.Product
	detailErr error

	setActive    []bool
	setActiveErr error
	deletedID    string
	deleteErr    error
}

func (m *mockBackend) ListProducts(ctx context.Context, cr product.Criteria) ([]product.Product, error) {
	m.mu.Lock()
	call := m.listCalls
	m.listCalls++
	gate := m.listGate
	m.mu.Unlock()

	if call == 0 && gate != nil {
		<-gate
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.listResponses) == 0 {
		return nil, nil
	}
	if call >= len(m.listResponses) {
		call = len(m.listResponses) - 1
	}
	return m.listResponses[call], nil
}

func (m *mockBackend) ListOwnProducts(ctx context.Context, cr product.Criteria) ([]product.Product, error) {
	return m.ownResponse, m.ownErr
}

func (m *mockBackend) GetProduct(ctx context.Context, id string) (product.Product, error) {
	return m.detail, m.detailErr
}

func (m *mockBackend) SetProductActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setActiveErr != nil {
		return m.setActiveErr
	}
	m.setActive = append(m.setActive, active)
	return nil
}

func (m *mockBackend) DeleteProduct(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

func TestFetchCatalogResetsFilteredView(t *testing.T) {
	backend := &mockBackend{listResponses: [][]product.Product{{{ID: "1"}, {ID: "2"}}}}
	store := NewStore(backend)

	store.SetFiltered([]product.Product{{ID: "stale"}})
	require.NoError(t, store.FetchCatalog(context.Background(), product.Criteria{}))

	require.Len(t, store.Products(), 2)
	require.Equal(t, store.Products(), store.Filtered())
}

func TestFetchOwnDoesNotTouchFilteredView(t *testing.T) {
	backend := &mockBackend{ownResponse: []product.Product{{ID: "mine"}}}
	store := NewStore(backend)
	store.SetFiltered([]product.Product{{ID: "1"}})

	require.NoError(t, store.FetchOwn(context.Background(), product.Criteria{}))

	require.Len(t, store.OwnProducts(), 1)
	require.Equal(t, "1", store.Filtered()[0].ID)
}

func TestFetchDetailReplacesSlides(t *testing.T) {
	backend := &mockBackend{detail: product.Product{
		ID:     "7",
		Images: []product.ProductImage{{ID: "a", Path: "a.jpg"}, {ID: "b", Path: "b.jpg"}},
	}}
	store := NewStore(backend)

	require.NoError(t, store.FetchDetail(context.Background(), "7"))

	detail, ok := store.Detail()
	require.True(t, ok)
	require.Equal(t, "7", detail.ID)
	require.Len(t, store.Slides(), 2)
}

func TestFetchErrorPropagatesUntouched(t *testing.T) {
	wantErr := errors.New("backend down")
	backend := &mockBackend{ownErr: wantErr}
	store := NewStore(backend)

	require.ErrorIs(t, store.FetchOwn(context.Background(), product.Criteria{}), wantErr)
	require.False(t, store.Loading())
}

func TestStaleCatalogResponseIsDiscarded(t *testing.T) {
	gate := make(chan struct{})
	backend := &mockBackend{
		listGate: gate,
		listResponses: [][]product.Product{
			{{ID: "old"}},
			{{ID: "new"}},
		},
	}
	store := NewStore(backend)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = store.FetchCatalog(context.Background(), product.Criteria{})
	}()

	// wait until the first fetch is in flight, then complete a newer one
	require.Eventually(t, func() bool {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		return backend.listCalls == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, store.FetchCatalog(context.Background(), product.Criteria{}))
	require.Equal(t, "new", store.Products()[0].ID)

	close(gate)
	wg.Wait()

	// the first response resolved last but must not win
	require.Equal(t, "new", store.Products()[0].ID)
	require.Equal(t, "new", store.Filtered()[0].ID)
}

func TestLoadingIsReferenceCounted(t *testing.T) {
	gate := make(chan struct{})
	backend := &mockBackend{
		listGate:      gate,
		listResponses: [][]product.Product{{{ID: "1"}}},
	}
	store := NewStore(backend)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = store.FetchCatalog(context.Background(), product.Criteria{})
	}()

	require.Eventually(t, func() bool {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		return backend.listCalls == 1
	}, time.Second, time.Millisecond)
	require.True(t, store.Loading())

	// a second fetch completing must not clear the flag while the first
	// is still in flight
	require.NoError(t, store.FetchCatalog(context.Background(), product.Criteria{}))
	require.True(t, store.Loading())

	close(gate)
	wg.Wait()
	require.False(t, store.Loading())
}

func TestToggleDetailActiveConfirmsBeforeMutating(t *testing.T) {
	backend := &mockBackend{
		detail:      product.Product{ID: "7", IsActive: boolPtr(true)},
		ownResponse: []product.Product{{ID: "7", IsActive: boolPtr(true)}},
	}
	store := NewStore(backend)
	require.NoError(t, store.FetchDetail(context.Background(), "7"))
	require.NoError(t, store.FetchOwn(context.Background(), product.Criteria{}))

	require.NoError(t, store.ToggleDetailActive(context.Background()))
	require.Equal(t, []bool{false}, backend.setActive)

	detail, _ := store.Detail()
	require.False(t, detail.Active())
	require.False(t, store.OwnProducts()[0].Active())
}

func TestToggleDetailActiveFailureLeavesCacheIntact(t *testing.T) {
	backend := &mockBackend{
		detail:       product.Product{ID: "7", IsActive: boolPtr(true)},
		setActiveErr: errors.New("rejected"),
	}
	store := NewStore(backend)
	require.NoError(t, store.FetchDetail(context.Background(), "7"))

	require.Error(t, store.ToggleDetailActive(context.Background()))

	detail, _ := store.Detail()
	require.True(t, detail.Active())
}

func TestToggleDetailActiveWithoutDetail(t *testing.T) {
	store := NewStore(&mockBackend{})
	require.ErrorIs(t, store.ToggleDetailActive(context.Background()), product.ErrNoDetail)
}

func TestRemoveDetailEvictsFromOwnListings(t *testing.T) {
	backend := &mockBackend{
		detail:      product.Product{ID: "7"},
		ownResponse: []product.Product{{ID: "7"}, {ID: "8"}},
	}
	store := NewStore(backend)
	require.NoError(t, store.FetchDetail(context.Background(), "7"))
	require.NoError(t, store.FetchOwn(context.Background(), product.Criteria{}))

	require.NoError(t, store.RemoveDetail(context.Background()))
	require.Equal(t, "7", backend.deletedID)

	_, ok := store.Detail()
	require.False(t, ok)
	require.Empty(t, store.Slides())
	require.Len(t, store.OwnProducts(), 1)
	require.Equal(t, "8", store.OwnProducts()[0].ID)
}

func TestActiveOwnCount(t *testing.T) {
	backend := &mockBackend{ownResponse: []product.Product{
		{ID: "1", IsActive: boolPtr(true)},
		{ID: "2", IsActive: boolPtr(false)},
		{ID: "3", IsActive: boolPtr(true)},
	}}
	store := NewStore(backend)
	require.NoError(t, store.FetchOwn(context.Background(), product.Criteria{}))
	require.Equal(t, 2, store.ActiveOwnCount())
}

func TestContactSellerLink(t *testing.T) {
	backend := &mockBackend{detail: product.Product{
		ID:   "7",
		Name: "Bicicleta",
		User: &product.UserSummary{Tel: "5561999999999"},
	}}
	store := NewStore(backend)
	require.NoError(t, store.FetchDetail(context.Background(), "7"))

	link, err := store.ContactSellerLink()
	require.NoError(t, err)
	require.Contains(t, link, "whatsapp://send?")
	require.Contains(t, link, "phone=5561999999999")
	require.Contains(t, link, "Bicicleta")
}

func TestContactSellerLinkWithoutPhone(t *testing.T) {
	backend := &mockBackend{detail: product.Product{ID: "7", Name: "Bicicleta"}}
	store := NewStore(backend)
	require.NoError(t, store.FetchDetail(context.Background(), "7"))

	_, err := store.ContactSellerLink()
	require.ErrorIs(t, err, product.ErrNoSellerContact)
}
