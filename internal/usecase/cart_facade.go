package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"storefront-cart/internal/domain/cart"
	"storefront-cart/internal/domain/cartsync"
	"storefront-cart/internal/pkg/clock"
	"storefront-cart/internal/pkg/errs"
	"storefront-cart/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type CartService interface {
	// Observe feeds the auth session seen on a request and runs any login or
	// logout transition it implies. A failed merge is reported as an error
	// marked ErrMergeFailed but leaves the service usable.
	Observe(ctx context.Context, signal cartsync.Signal) error
	AddItem(ctx context.Context, productID uuid.UUID, qty int) error
	SetQuantity(ctx context.Context, productID uuid.UUID, qty int) error
	RemoveItem(ctx context.Context, productID uuid.UUID) error
	GetCart(ctx context.Context) (*readmodel.CartRM, error)
	GetTotals(ctx context.Context, couponCode string) (*readmodel.TotalsRM, error)
	QuoteCheckout(ctx context.Context, couponCode string) (*readmodel.QuoteRM, error)
	SyncStatus() readmodel.SyncStatusRM
	RetrySync(ctx context.Context) (readmodel.SyncStatusRM, error)
}

type FacadeDeps struct {
	Local         LocalCartStore
	Remote        RemoteCartStore
	Pricing       *PricingService
	Clock         clock.Clock
	RemoteTimeout time.Duration
	Logger        *slog.Logger
}

// CartFacade is one shopper session's cart. Every operation holds the
// session lock, so operations issued while a login merge runs wait for it
// and are applied in order.
type CartFacade struct {
	mu        sync.Mutex
	sessionID uuid.UUID
	signal    cartsync.Signal
	sync      *SyncCoordinator
	deps      FacadeDeps
	logger    *slog.Logger
	lastSeen  time.Time
}

func NewCartFacade(sessionID uuid.UUID, deps FacadeDeps) *CartFacade {
	return &CartFacade{
		sessionID: sessionID,
		sync:      NewSyncCoordinator(sessionID, deps.Local, deps.Remote, deps.RemoteTimeout, deps.Logger),
		deps:      deps,
		logger:    deps.Logger.With(slog.String("cart_session", sessionID.String())),
		lastSeen:  deps.Clock.Now(),
	}
}

func (f *CartFacade) SessionID() uuid.UUID { return f.sessionID }

func (f *CartFacade) State() cartsync.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sync.State()
}

// idleSince reports when the session was last used. busy is true while an
// operation holds the session; such a session is never idle.
func (f *CartFacade) idleSince() (lastSeen time.Time, busy bool) {
	if !f.mu.TryLock() {
		return time.Time{}, true
	}
	defer f.mu.Unlock()
	return f.lastSeen, false
}

func (f *CartFacade) Observe(ctx context.Context, signal cartsync.Signal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touch()

	switch cartsync.DetectEdge(f.signal, signal) {
	case cartsync.EdgeLogin:
		f.signal = signal
		return f.sync.Login(ctx, signal.UserID)
	case cartsync.EdgeLogout:
		f.signal = signal
		return f.sync.Logout(ctx)
	case cartsync.EdgeSwitch:
		if err := f.sync.Logout(ctx); err != nil {
			return err
		}
		f.signal = signal
		return f.sync.Login(ctx, signal.UserID)
	}
	return nil
}

func (f *CartFacade) AddItem(ctx context.Context, productID uuid.UUID, qty int) error {
	if err := checkProduct(productID); err != nil {
		return err
	}
	if qty < cart.MinQuantity {
		return errs.Mark(errs.Wrapf(cart.ErrInvalidQuantity, "add %d", qty), ErrInvalidQuantity)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.touch()

	if !f.sync.State().UsesRemote() {
		return f.mutateLocal(ctx, func(c *cart.Cart) error { return c.Add(productID, qty) })
	}

	userID := f.sync.UserID()
	snapshot := f.deps.Pricing.SnapshotPrice(ctx, productID)
	return callRemote(ctx, f.deps.RemoteTimeout, "upsert_delta", productID, func(ctx context.Context) error {
		return f.deps.Remote.UpsertDelta(ctx, userID, productID, qty, snapshot)
	})
}

// SetQuantity below 1 removes the item.
func (f *CartFacade) SetQuantity(ctx context.Context, productID uuid.UUID, qty int) error {
	if err := checkProduct(productID); err != nil {
		return err
	}
	if qty < cart.MinQuantity {
		return f.RemoveItem(ctx, productID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.touch()

	if !f.sync.State().UsesRemote() {
		return f.mutateLocal(ctx, func(c *cart.Cart) error { return c.SetQuantity(productID, qty) })
	}

	userID := f.sync.UserID()
	return callRemote(ctx, f.deps.RemoteTimeout, "set_quantity", productID, func(ctx context.Context) error {
		return f.deps.Remote.SetQuantity(ctx, userID, productID, qty)
	})
}

func (f *CartFacade) RemoveItem(ctx context.Context, productID uuid.UUID) error {
	if err := checkProduct(productID); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.touch()

	if !f.sync.State().UsesRemote() {
		return f.mutateLocal(ctx, func(c *cart.Cart) error {
			c.Remove(productID)
			return nil
		})
	}

	userID := f.sync.UserID()
	return callRemote(ctx, f.deps.RemoteTimeout, "remove", productID, func(ctx context.Context) error {
		return f.deps.Remote.Remove(ctx, userID, productID)
	})
}

func (f *CartFacade) GetCart(ctx context.Context) (*readmodel.CartRM, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touch()

	items, err := f.activeItems(ctx)
	if err != nil {
		return nil, err
	}
	source := "local"
	if f.sync.State().UsesRemote() {
		source = "remote"
	}
	return &readmodel.CartRM{
		Source: source,
		Items:  toItemRMs(items),
		Sync:   f.syncStatus(),
	}, nil
}

func (f *CartFacade) GetTotals(ctx context.Context, couponCode string) (*readmodel.TotalsRM, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touch()

	items, err := f.activeItems(ctx)
	if err != nil {
		return nil, err
	}
	return f.deps.Pricing.Totals(ctx, items, f.sync.UserID(), couponCode)
}

// QuoteCheckout refuses to quote an empty cart or one with lines that cannot
// be priced.
func (f *CartFacade) QuoteCheckout(ctx context.Context, couponCode string) (*readmodel.QuoteRM, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touch()

	items, err := f.activeItems(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	totals, err := f.deps.Pricing.Totals(ctx, items, f.sync.UserID(), couponCode)
	if err != nil {
		return nil, err
	}
	if len(totals.Unresolved) > 0 {
		return nil, errs.Mark(
			errs.Newf("%d line(s) could not be priced", len(totals.Unresolved)),
			ErrProductUnresolvable,
		)
	}

	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return &readmodel.QuoteRM{
		TotalsRM:  *totals,
		ItemCount: count,
		QuotedAt:  f.deps.Clock.Now(),
	}, nil
}

func (f *CartFacade) SyncStatus() readmodel.SyncStatusRM {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.syncStatus()
}

// RetrySync performs exactly one retry of a failed merge.
func (f *CartFacade) RetrySync(ctx context.Context) (readmodel.SyncStatusRM, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touch()

	err := f.sync.Retry(ctx)
	return f.syncStatus(), err
}

func (f *CartFacade) activeItems(ctx context.Context) ([]cart.Item, error) {
	if !f.sync.State().UsesRemote() {
		lc, err := f.deps.Local.Load(ctx, f.sessionID)
		if err != nil {
			return nil, errs.Mark(errs.Wrap(err, "load local cart"), ErrLocalStoreFailed)
		}
		return lc.Items, nil
	}

	var items []cart.Item
	userID := f.sync.UserID()
	err := callRemote(ctx, f.deps.RemoteTimeout, "list", uuid.Nil, func(ctx context.Context) error {
		var err error
		items, err = f.deps.Remote.List(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart.FromItems(items).Items(), nil
}

// checkProduct rejects a nil id before routing, so both stores see the same
// validation.
func checkProduct(productID uuid.UUID) error {
	if productID == uuid.Nil {
		return errs.Mark(cart.ErrInvalidProduct, ErrInvalidProduct)
	}
	return nil
}

// mutateLocal persists immediately after every change.
func (f *CartFacade) mutateLocal(ctx context.Context, fn func(*cart.Cart) error) error {
	lc, err := f.deps.Local.Load(ctx, f.sessionID)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "load local cart"), ErrLocalStoreFailed)
	}
	c := lc.Cart()
	if err := fn(c); err != nil {
		if errs.Is(err, cart.ErrInvalidQuantity) {
			return errs.Mark(err, ErrInvalidQuantity)
		}
		return errs.Mark(err, ErrInvalidProduct)
	}
	lc.Items = c.Items()
	if err := f.deps.Local.Save(ctx, f.sessionID, lc); err != nil {
		return errs.Mark(errs.Wrap(err, "save local cart"), ErrLocalStoreFailed)
	}
	return nil
}

func (f *CartFacade) syncStatus() readmodel.SyncStatusRM {
	st := readmodel.SyncStatusRM{
		State:   f.sync.State().String(),
		Pending: toItemRMs(f.sync.Pending()),
	}
	if id := f.sync.UserID(); id != uuid.Nil {
		st.UserID = &id
	}
	if err := f.sync.LastError(); err != nil {
		st.LastError = err.Error()
	}
	return st
}

func (f *CartFacade) touch() {
	f.lastSeen = f.deps.Clock.Now()
}

func toItemRMs(items []cart.Item) []readmodel.CartItemRM {
	out := make([]readmodel.CartItemRM, len(items))
	for i, it := range items {
		out[i] = readmodel.CartItemRM{
			ProductID:         it.ProductID,
			Quantity:          it.Quantity,
			UnitPriceSnapshot: it.UnitPriceSnapshot,
		}
	}
	return out
}
