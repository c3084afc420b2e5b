package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"provided-storefront/internal/models"
	"provided-storefront/internal/repository"
)

const (
	pid1 = "64b7f0c2a1b2c3d4e5f60718"
	pid2 = "64b7f0c2a1b2c3d4e5f60719"
)

// mockCartStore reproduce la semántica del repositorio: índice único por
// sesión y compare-and-swap por versión.
type mockCartStore struct {
	m     sync.RWMutex
	carts map[string]*models.CartDocument
	err   error

	// staleWrites fuerza conflictos de versión en las próximas escrituras
	staleWrites int
	// createRace hace que el próximo Create encuentre un carrito ya creado
	createRace *models.CartDocument

	replaceCalls int
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{carts: make(map[string]*models.CartDocument)}
}

func copyCart(c *models.CartDocument) *models.CartDocument {
	cp := *c
	cp.Items = append([]models.CartItem(nil), c.Items...)
	return &cp
}

func (m *mockCartStore) FindBySession(_ context.Context, sessionID string) (*models.CartDocument, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	cart, ok := m.carts[sessionID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyCart(cart), nil
}

func (m *mockCartStore) Create(_ context.Context, cart *models.CartDocument) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.createRace != nil {
		m.carts[cart.SessionID] = m.createRace
		m.createRace = nil
	}
	if _, ok := m.carts[cart.SessionID]; ok {
		return repository.ErrCartExists
	}
	cart.ID = primitive.NewObjectID()
	cart.Version = 1
	m.carts[cart.SessionID] = copyCart(cart)
	return nil
}

func (m *mockCartStore) ReplaceItems(_ context.Context, cart *models.CartDocument, items []models.CartItem) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.replaceCalls++
	if m.err != nil {
		return m.err
	}
	if m.staleWrites > 0 {
		m.staleWrites--
		return repository.ErrVersionConflict
	}
	stored, ok := m.carts[cart.SessionID]
	if !ok || stored.Version != cart.Version {
		return repository.ErrVersionConflict
	}
	stored.Items = append([]models.CartItem(nil), items...)
	stored.Version++
	return nil
}

func (m *mockCartStore) cart(sessionID string) *models.CartDocument {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.carts[sessionID]
}

func newTestCartService(store CartStore) *CartService {
	l := log.New()
	l.SetOutput(io.Discard)
	return NewCartService(store, l)
}

func strPtr(s string) *string { return &s }

func TestCartService_GetCart_Absent(t *testing.T) {
	sut := newTestCartService(newMockCartStore())

	view, err := sut.GetCart(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, view.ID)
	assert.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0.0, view.Subtotal)
}

func TestCartService_GetCart_RequiresSession(t *testing.T) {
	sut := newTestCartService(newMockCartStore())

	_, err := sut.GetCart(context.Background(), "")
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "session_id", vErr.Field)
}

func TestCartService_GetCart_StoreError(t *testing.T) {
	store := newMockCartStore()
	store.err = models.ErrStoreUnavailable
	sut := newTestCartService(store)

	_, err := sut.GetCart(context.Background(), "sess-1")
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
}

func TestCartService_ExampleScenario(t *testing.T) {
	store := newMockCartStore()
	sut := newTestCartService(store)
	ctx := context.Background()

	require.NoError(t, sut.AddItem(ctx, "sess-1", models.CartItem{ProductID: pid1, Title: "A", Price: 100, Quantity: 1}))
	view, err := sut.GetCart(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 100.0, view.Subtotal)
	assert.Equal(t, models.CurrencyUSD, view.Currency)

	require.NoError(t, sut.AddItem(ctx, "sess-1", models.CartItem{ProductID: pid1, Title: "B", Price: 999, Quantity: 9}))
	view, err = sut.GetCart(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 10, view.Items[0].Quantity)
	assert.Equal(t, 100.0, view.Items[0].Price)
	assert.Equal(t, "A", view.Items[0].Title)
	assert.Equal(t, 1000.0, view.Subtotal)

	require.NoError(t, sut.RemoveItem(ctx, "sess-1", pid1, nil))
	view, err = sut.GetCart(ctx, "sess-1")
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0.0, view.Subtotal)
}

func TestCartService_AddItem_AppendsNewKey(t *testing.T) {
	store := newMockCartStore()
	sut := newTestCartService(store)
	ctx := context.Background()

	require.NoError(t, sut.AddItem(ctx, "sess-1", models.CartItem{ProductID: pid1, Title: "Coat", Price: 1680, Quantity: 1, Variant: strPtr("M")}))
	require.NoError(t, sut.AddItem(ctx, "sess-1", models.CartItem{ProductID: pid1, Title: "Coat", Price: 1680, Quantity: 1, Variant: strPtr("L")}))
	require.NoError(t, sut.AddItem(ctx, "sess-1", models.CartItem{ProductID: pid2, Title: "Shirt", Price: 420, Quantity: 2}))

	cart := store.cart("sess-1")
	require.Len(t, cart.Items, 3)
	assert.Equal(t, "M", *cart.Items[0].Variant)
	assert.Equal(t, "L", *cart.Items[1].Variant)
	assert.Equal(t, pid2, cart.Items[2].ProductID)
}

func TestCartService_AddItem_CanonicalizesProductID(t *testing.T) {
	store := newMockCartStore()
	sut := newTestCartService(store)
	ctx := context.Background()

	require.NoError(t, sut.AddItem(ctx, "sess-1", models.CartItem{ProductID: "64B7F0C2A1B2C3D4E5F60718", Title: "Coat", Price: 1, Quantity: 1}))
	require.NoError(t, sut.AddItem(ctx, "sess-1", models.CartItem{ProductID: pid1, Title: "Coat", Price: 1, Quantity: 1}))

	cart := store.cart("sess-1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, pid1, cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartService_AddItem_Validation(t *testing.T) {
	store := newMockCartStore()
	sut := newTestCartService(store)

	for _, q := range []int{0, -1, 11} {
		err := sut.AddItem(context.Background(), "sess-1", models.CartItem{ProductID: pid1, Title: "Coat", Quantity: q})
		var vErr *models.ValidationError
		require.ErrorAs(t, err, &vErr, "quantity %d", q)
		assert.Equal(t, "quantity", vErr.Field)
	}
	assert.Nil(t, store.cart("sess-1"))
}

func TestCartService_AddItem_RetriesOnVersionConflict(t *testing.T) {
	store := newMockCartStore()
	sut := newTestCartService(store)
	ctx := context.Background()

	require.NoError(t, sut.AddItem(ctx, "sess-1", models.CartItem{ProductID: pid1, Title: "Coat", Price: 1, Quantity: 1}))

	store.staleWrites = 2
	require.NoError(t, sut.AddItem(ctx, "sess-1", models.CartItem{ProductID: pid2, Title: "Shirt", Price: 1, Quantity: 1}))

	assert.Len(t, store.cart("sess-1").Items, 2)
	assert.Equal(t, 3, store.replaceCalls)
}

func TestCartService_AddItem_GivesUpAfterMaxAttempts(t *testing.T) {
	store := newMockCartStore()
	sut := newTestCartService(store)
	ctx := context.Background()

	require.NoError(t, sut.AddItem(ctx, "sess-1", models.CartItem{ProductID: pid1, Title: "Coat", Price: 1, Quantity: 1}))

	store.staleWrites = maxCartWriteAttempts
	err := sut.AddItem(ctx, "sess-1", models.CartItem{ProductID: pid1, Title: "Coat", Price: 1, Quantity: 1})
	assert.ErrorIs(t, err, models.ErrCartConflict)
	assert.Equal(t, 1, store.cart("sess-1").Items[0].Quantity)
}

func TestCartService_AddItem_CreateRace(t *testing.T) {
	store := newMockCartStore()
	store.createRace = &models.CartDocument{
		ID:        primitive.NewObjectID(),
		SessionID: "sess-1",
		Items:     []models.CartItem{{ProductID: pid1, Title: "Coat", Price: 10, Quantity: 4}},
		Version:   1,
	}
	sut := newTestCartService(store)

	require.NoError(t, sut.AddItem(context.Background(), "sess-1", models.CartItem{ProductID: pid1, Title: "Coat", Price: 10, Quantity: 3}))

	cart := store.cart("sess-1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestCartService_AddItem_ConcurrentWritersKeepAllLines(t *testing.T) {
	store := newMockCartStore()
	sut := newTestCartService(store)
	ctx := context.Background()

	require.NoError(t, sut.AddItem(ctx, "sess-1", models.CartItem{ProductID: pid1, Title: "Coat", Price: 1, Quantity: 1}))

	const writers = 4
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- sut.AddItem(ctx, "sess-1", models.CartItem{
				ProductID: pid2,
				Title:     "Shirt",
				Price:     1,
				Quantity:  1,
				Variant:   strPtr(fmt.Sprintf("size-%d", i)),
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, models.ErrCartConflict)
		}
	}

	// Cada escritura exitosa quedó registrada: no hay pérdidas silenciosas
	cart := store.cart("sess-1")
	assert.Equal(t, int64(len(cart.Items)), cart.Version)
}

func TestCartService_RemoveItem(t *testing.T) {
	store := newMockCartStore()
	sut := newTestCartService(store)
	ctx := context.Background()

	t.Run("absent cart is a no-op", func(t *testing.T) {
		require.NoError(t, sut.RemoveItem(ctx, "nobody", pid1, nil))
		assert.Nil(t, store.cart("nobody"))
	})

	t.Run("removes only the exact key", func(t *testing.T) {
		require.NoError(t, sut.AddItem(ctx, "sess-1", models.CartItem{ProductID: pid1, Title: "Coat", Price: 1, Quantity: 1}))
		require.NoError(t, sut.AddItem(ctx, "sess-1", models.CartItem{ProductID: pid1, Title: "Coat", Price: 1, Quantity: 1, Variant: strPtr("M")}))
		require.NoError(t, sut.AddItem(ctx, "sess-1", models.CartItem{ProductID: pid2, Title: "Shirt", Price: 1, Quantity: 1}))
		before := store.cart("sess-1").Items

		require.NoError(t, sut.RemoveItem(ctx, "sess-1", pid1, strPtr("M")))

		after := store.cart("sess-1").Items
		require.Len(t, after, 2)
		assert.Equal(t, before[0], after[0])
		assert.Equal(t, before[2], after[1])
	})

	t.Run("malformed product id", func(t *testing.T) {
		err := sut.RemoveItem(ctx, "sess-1", "p1", nil)
		var vErr *models.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "product_id", vErr.Field)
	})
}
