package usecase

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"storefront-cart/internal/domain/cart"
	"storefront-cart/internal/domain/cartsync"
	"storefront-cart/internal/pkg/errs"
	"storefront-cart/internal/pkg/metrics"

	"github.com/google/uuid"
)

// SyncCoordinator drives one cart session through login and logout. It is
// not safe for concurrent use; CartFacade serializes access.
type SyncCoordinator struct {
	sessionID uuid.UUID
	local     LocalCartStore
	remote    RemoteCartStore
	timeout   time.Duration
	logger    *slog.Logger

	state   cartsync.State
	userID  uuid.UUID
	pending []cart.Item
	lastErr error
	// merged mirrors the persisted journal so a failed journal save cannot
	// cause a retry to add the same quantity twice.
	merged cartsync.Journal
}

func NewSyncCoordinator(sessionID uuid.UUID, local LocalCartStore, remote RemoteCartStore, timeout time.Duration, logger *slog.Logger) *SyncCoordinator {
	return &SyncCoordinator{
		sessionID: sessionID,
		local:     local,
		remote:    remote,
		timeout:   timeout,
		logger:    logger.With(slog.String("cart_session", sessionID.String())),
		state:     cartsync.StateAnonymous,
		merged:    cartsync.Journal{},
	}
}

func (s *SyncCoordinator) State() cartsync.State { return s.state }
func (s *SyncCoordinator) UserID() uuid.UUID     { return s.userID }

func (s *SyncCoordinator) Pending() []cart.Item {
	out := make([]cart.Item, len(s.pending))
	copy(out, s.pending)
	return out
}

func (s *SyncCoordinator) LastError() error { return s.lastErr }

// Login runs Anonymous -> Authenticating -> Merging and one merge attempt.
// A failed merge leaves the coordinator in SyncFailed and returns an error
// marked ErrMergeFailed. The merge outlives the caller's cancellation; each
// remote call is still bounded by the per-call timeout.
func (s *SyncCoordinator) Login(ctx context.Context, userID uuid.UUID) error {
	ctx = context.WithoutCancel(ctx)
	if err := s.transition(cartsync.StateAuthenticating); err != nil {
		return err
	}
	s.userID = userID
	s.pending = nil
	s.lastErr = nil

	if err := s.transition(cartsync.StateMerging); err != nil {
		return err
	}
	return s.merge(ctx, nil)
}

// Retry re-attempts only the items that have not been merged yet.
func (s *SyncCoordinator) Retry(ctx context.Context) error {
	if s.state != cartsync.StateSyncFailed {
		return errs.Wrapf(ErrNothingToRetry, "sync state is %s", s.state)
	}
	// Without pending items the previous attempt never reached the remote
	// cart, so everything unmerged is attempted.
	var only map[uuid.UUID]bool
	if len(s.pending) > 0 {
		only = make(map[uuid.UUID]bool, len(s.pending))
		for _, it := range s.pending {
			only[it.ProductID] = true
		}
	}
	if err := s.transition(cartsync.StateMerging); err != nil {
		return err
	}
	return s.merge(context.WithoutCancel(ctx), only)
}

// Logout returns to Anonymous. The remote cart is left as is and nothing is
// copied down. After a successful merge the local cart is already empty;
// after a failed one the unmerged items stay local together with the journal.
func (s *SyncCoordinator) Logout(ctx context.Context) error {
	prev := s.state
	if err := s.transition(cartsync.StateAnonymous); err != nil {
		return err
	}
	if prev == cartsync.StateSynced {
		if err := s.local.Clear(ctx, s.sessionID); err != nil {
			s.logger.Warn("failed to clear local cart on logout", slog.String("error", err.Error()))
		} else {
			s.merged = cartsync.Journal{}
		}
	}
	s.userID = uuid.Nil
	s.pending = nil
	s.lastErr = nil
	return nil
}

// merge adds every unmerged local item to the remote cart. A non-nil only
// restricts the attempt to those products.
func (s *SyncCoordinator) merge(ctx context.Context, only map[uuid.UUID]bool) error {
	lc, err := s.local.Load(ctx, s.sessionID)
	if err != nil {
		s.fail(s.pending, err)
		return errs.Mark(errs.Wrap(err, "failed to read local cart for merge"), ErrMergeFailed)
	}
	if lc.Journal == nil {
		lc.Journal = cartsync.Journal{}
	}
	lc.Journal.Absorb(s.merged)

	todo := lc.Journal.Pending(s.userID, lc.Items)
	if only != nil {
		todo = slices.DeleteFunc(todo, func(it cart.Item) bool { return !only[it.ProductID] })
	}
	var failures []ItemFailure
	for _, it := range todo {
		err := callRemote(ctx, s.timeout, "upsert_delta", it.ProductID, func(ctx context.Context) error {
			return s.remote.UpsertDelta(ctx, s.userID, it.ProductID, it.Quantity, it.UnitPriceSnapshot)
		})
		if err != nil {
			metrics.MergeItemsTotal.WithLabelValues("failed").Inc()
			s.logger.Warn("merge item failed",
				slog.String("product_id", it.ProductID.String()),
				slog.Int("quantity", it.Quantity),
				slog.String("error", err.Error()))
			failures = append(failures, ItemFailure{ProductID: it.ProductID, Quantity: it.Quantity, Err: err})
			continue
		}
		metrics.MergeItemsTotal.WithLabelValues("merged").Inc()

		lc.Journal.Record(s.userID, it.ProductID, it.Quantity)
		s.merged.Record(s.userID, it.ProductID, it.Quantity)
		if err := s.local.Save(ctx, s.sessionID, lc); err != nil {
			s.logger.Error("failed to persist merge journal", slog.String("error", err.Error()))
		}
	}

	if len(failures) > 0 {
		mergeErr := &MergeError{Failed: failures}
		pending := make([]cart.Item, len(failures))
		for i, f := range failures {
			pending[i] = cart.Item{ProductID: f.ProductID, Quantity: f.Quantity}
		}
		s.fail(pending, mergeErr)
		return errs.Mark(mergeErr, ErrMergeFailed)
	}

	if err := s.local.Clear(ctx, s.sessionID); err != nil {
		// Every item is journaled, so a later merge sends nothing twice.
		s.logger.Warn("failed to clear local cart after merge", slog.String("error", err.Error()))
	} else {
		s.merged = cartsync.Journal{}
	}
	metrics.MergesTotal.WithLabelValues("synced").Inc()
	s.logger.Info("cart merged", slog.String("user_id", s.userID.String()), slog.Int("items", len(todo)))
	s.pending = nil
	s.lastErr = nil
	return s.transition(cartsync.StateSynced)
}

func (s *SyncCoordinator) fail(pending []cart.Item, err error) {
	metrics.MergesTotal.WithLabelValues("failed").Inc()
	s.pending = pending
	s.lastErr = err
	if terr := s.transition(cartsync.StateSyncFailed); terr != nil {
		s.logger.Error("unexpected sync transition", slog.String("error", terr.Error()))
	}
}

func (s *SyncCoordinator) transition(next cartsync.State) error {
	newState, err := s.state.Transition(next)
	if err != nil {
		return errs.Wrap(err, "sync coordinator")
	}
	s.logger.Debug("sync state changed", slog.String("from", string(s.state)), slog.String("to", string(newState)))
	s.state = newState
	return nil
}
