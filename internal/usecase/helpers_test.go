//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"storefront-cart/internal/domain/cart"
	"storefront-cart/internal/domain/cartsync"
	"storefront-cart/internal/domain/coupon"
	"storefront-cart/internal/domain/pricing"
	"storefront-cart/internal/infra"
	"storefront-cart/internal/infra/kv"
	"storefront-cart/internal/infra/localstore"
	"storefront-cart/internal/pkg/clock"
	"storefront-cart/internal/usecase"

	"github.com/google/uuid"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRemote is an in-memory remote cart. Products listed in fail return
// their error; products listed in hang block until the call's context ends.
type fakeRemote struct {
	mu    sync.Mutex
	carts map[uuid.UUID]map[uuid.UUID]int
	order map[uuid.UUID][]uuid.UUID
	fail  map[uuid.UUID]error
	hang  map[uuid.UUID]bool
	calls int
	// gate, when set, is received from before every UpsertDelta.
	gate chan struct{}
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		carts: make(map[uuid.UUID]map[uuid.UUID]int),
		order: make(map[uuid.UUID][]uuid.UUID),
		fail:  make(map[uuid.UUID]error),
		hang:  make(map[uuid.UUID]bool),
	}
}

func (r *fakeRemote) seed(userID uuid.UUID, items ...cart.Item) {
	for _, it := range items {
		_ = r.UpsertDelta(context.Background(), userID, it.ProductID, it.Quantity, nil)
	}
	r.calls = 0
}

func (r *fakeRemote) snapshot(userID uuid.UUID) map[uuid.UUID]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uuid.UUID]int)
	for k, v := range r.carts[userID] {
		out[k] = v
	}
	return out
}

func (r *fakeRemote) heal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = make(map[uuid.UUID]error)
	r.hang = make(map[uuid.UUID]bool)
}

func (r *fakeRemote) List(_ context.Context, userID uuid.UUID) ([]cart.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []cart.Item
	for _, p := range r.order[userID] {
		if q, ok := r.carts[userID][p]; ok {
			items = append(items, cart.Item{ProductID: p, Quantity: q})
		}
	}
	return items, nil
}

func (r *fakeRemote) UpsertDelta(ctx context.Context, userID, productID uuid.UUID, delta int, _ *int64) error {
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	r.calls++
	hang := r.hang[productID]
	failErr := r.fail[productID]
	r.mu.Unlock()

	if hang {
		<-ctx.Done()
		return ctx.Err()
	}
	if failErr != nil {
		return failErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.carts[userID] == nil {
		r.carts[userID] = make(map[uuid.UUID]int)
	}
	if _, ok := r.carts[userID][productID]; !ok {
		r.order[userID] = append(r.order[userID], productID)
	}
	r.carts[userID][productID] += delta
	return nil
}

func (r *fakeRemote) SetQuantity(_ context.Context, userID, productID uuid.UUID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail[productID]; err != nil {
		return err
	}
	if r.carts[userID] == nil {
		r.carts[userID] = make(map[uuid.UUID]int)
	}
	if _, ok := r.carts[userID][productID]; !ok {
		r.order[userID] = append(r.order[userID], productID)
	}
	r.carts[userID][productID] = qty
	return nil
}

func (r *fakeRemote) Remove(_ context.Context, userID, productID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail[productID]; err != nil {
		return err
	}
	delete(r.carts[userID], productID)
	return nil
}

// flakyLocal wraps a local store and fails Clear or Save while the
// matching flag is set.
type flakyLocal struct {
	usecase.LocalCartStore
	clearFails bool
	saveFails  bool
}

func (l *flakyLocal) Save(ctx context.Context, sessionID uuid.UUID, lc cartsync.LocalCart) error {
	if l.saveFails {
		return errors.New("kv unavailable")
	}
	return l.LocalCartStore.Save(ctx, sessionID, lc)
}

func (l *flakyLocal) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if l.clearFails {
		return errors.New("kv unavailable")
	}
	return l.LocalCartStore.Clear(ctx, sessionID)
}

func newLocal() *localstore.Store {
	return localstore.NewStore(kv.NewMemoryStore(), "cart:local:", discardLogger())
}

func seedLocal(local usecase.LocalCartStore, sessionID uuid.UUID, items ...cart.Item) {
	lc := cartsync.EmptyLocalCart()
	lc.Items = items
	if err := local.Save(context.Background(), sessionID, lc); err != nil {
		panic(err)
	}
}

func localItems(local usecase.LocalCartStore, sessionID uuid.UUID) map[uuid.UUID]int {
	lc, err := local.Load(context.Background(), sessionID)
	if err != nil {
		panic(err)
	}
	out := make(map[uuid.UUID]int)
	for _, it := range lc.Items {
		out[it.ProductID] = it.Quantity
	}
	return out
}

// staticCatalog answers from a fixed product set.
type staticCatalog map[uuid.UUID]pricing.Product

func (c staticCatalog) GetProduct(_ context.Context, productID uuid.UUID) (pricing.Product, error) {
	p, ok := c[productID]
	if !ok {
		return pricing.Product{}, errors.New("product not found")
	}
	return p, nil
}

type noCoupons struct{}

func (noCoupons) Lookup(context.Context, coupon.Code) (*coupon.Coupon, error) {
	return nil, errors.New("unexpected coupon lookup")
}

func (noCoupons) UserUsage(context.Context, uuid.UUID, uuid.UUID) (int, error) {
	return 0, errors.New("unexpected usage lookup")
}

func newFacadeDeps(local usecase.LocalCartStore, remote usecase.RemoteCartStore, catalog usecase.ProductCatalog) usecase.FacadeDeps {
	logger := discardLogger()
	clk := clock.NewMockClock(testNow)
	return usecase.FacadeDeps{
		Local:         local,
		Remote:        remote,
		Pricing:       usecase.NewPricingService(catalog, noCoupons{}, clk, 50*time.Millisecond, logger),
		Clock:         clk,
		RemoteTimeout: 50 * time.Millisecond,
		Logger:        logger,
	}
}

func pricingProductNotFound() (pricing.Product, error) {
	return pricing.Product{}, infra.WrapRepoErr(discardLogger(), infra.KindNotFound, "product not found", nil)
}
