//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-cart/internal/domain/cart"
	"storefront-cart/internal/domain/cartsync"
	"storefront-cart/internal/pkg/errs"
	"storefront-cart/internal/usecase"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SyncCoordinatorTestSuite struct {
	suite.Suite
	ctx     context.Context
	local   *flakyLocal
	remote  *fakeRemote
	session uuid.UUID
	user    uuid.UUID
}

func (s *SyncCoordinatorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.local = &flakyLocal{LocalCartStore: newLocal()}
	s.remote = newFakeRemote()
	s.session = uuid.New()
	s.user = uuid.New()
}

func (s *SyncCoordinatorTestSuite) newCoordinator() *usecase.SyncCoordinator {
	return usecase.NewSyncCoordinator(s.session, s.local, s.remote, 30*time.Millisecond, discardLogger())
}

func TestSyncCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(SyncCoordinatorTestSuite))
}

func (s *SyncCoordinatorTestSuite) TestLogin_MergesIntoExistingRemoteCart() {
	a, b := uuid.New(), uuid.New()
	seedLocal(s.local, s.session, cart.Item{ProductID: a, Quantity: 2})
	s.remote.seed(s.user, cart.Item{ProductID: a, Quantity: 1}, cart.Item{ProductID: b, Quantity: 1})

	c := s.newCoordinator()
	require.NoError(s.T(), c.Login(s.ctx, s.user))

	assert.Equal(s.T(), cartsync.StateSynced, c.State())
	assert.Equal(s.T(), map[uuid.UUID]int{a: 3, b: 1}, s.remote.snapshot(s.user))
	assert.Empty(s.T(), localItems(s.local, s.session))
	assert.Empty(s.T(), c.Pending())
}

func (s *SyncCoordinatorTestSuite) TestLogin_EmptyLocalCart() {
	c := s.newCoordinator()
	require.NoError(s.T(), c.Login(s.ctx, s.user))

	assert.Equal(s.T(), cartsync.StateSynced, c.State())
	assert.Equal(s.T(), 0, s.remote.calls)
}

func (s *SyncCoordinatorTestSuite) TestLogin_PartialFailureKeepsProgress() {
	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()
	seedLocal(s.local, s.session,
		cart.Item{ProductID: p1, Quantity: 1},
		cart.Item{ProductID: p2, Quantity: 1},
		cart.Item{ProductID: p3, Quantity: 1},
	)
	s.remote.hang[p2] = true

	c := s.newCoordinator()
	err := c.Login(s.ctx, s.user)

	require.Error(s.T(), err)
	assert.True(s.T(), errs.Is(err, usecase.ErrMergeFailed))
	var mergeErr *usecase.MergeError
	require.True(s.T(), errs.As(err, &mergeErr))
	require.Len(s.T(), mergeErr.Failed, 1)
	assert.Equal(s.T(), p2, mergeErr.Failed[0].ProductID)
	assert.True(s.T(), errors.Is(mergeErr.Failed[0].Err, context.DeadlineExceeded))

	assert.Equal(s.T(), cartsync.StateSyncFailed, c.State())
	assert.Equal(s.T(), map[uuid.UUID]int{p1: 1, p3: 1}, s.remote.snapshot(s.user))
	assert.Contains(s.T(), localItems(s.local, s.session), p2)
	if diff := cmp.Diff([]cart.Item{{ProductID: p2, Quantity: 1}}, c.Pending()); diff != "" {
		s.T().Errorf("pending mismatch (-want +got):\n%s", diff)
	}
	assert.Error(s.T(), c.LastError())
}

func (s *SyncCoordinatorTestSuite) TestRetry_OnlyPendingItems() {
	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()
	seedLocal(s.local, s.session,
		cart.Item{ProductID: p1, Quantity: 1},
		cart.Item{ProductID: p2, Quantity: 2},
		cart.Item{ProductID: p3, Quantity: 1},
	)
	s.remote.fail[p2] = errors.New("connection reset")

	c := s.newCoordinator()
	require.Error(s.T(), c.Login(s.ctx, s.user))
	s.remote.heal()
	s.remote.calls = 0

	require.NoError(s.T(), c.Retry(s.ctx))

	assert.Equal(s.T(), 1, s.remote.calls)
	assert.Equal(s.T(), cartsync.StateSynced, c.State())
	assert.Equal(s.T(), map[uuid.UUID]int{p1: 1, p2: 2, p3: 1}, s.remote.snapshot(s.user))
	assert.Empty(s.T(), localItems(s.local, s.session))
}

func (s *SyncCoordinatorTestSuite) TestRetry_FailsAgain() {
	p := uuid.New()
	seedLocal(s.local, s.session, cart.Item{ProductID: p, Quantity: 1})
	s.remote.fail[p] = errors.New("connection reset")

	c := s.newCoordinator()
	require.Error(s.T(), c.Login(s.ctx, s.user))
	err := c.Retry(s.ctx)

	assert.True(s.T(), errs.Is(err, usecase.ErrMergeFailed))
	assert.Equal(s.T(), cartsync.StateSyncFailed, c.State())
	assert.Len(s.T(), c.Pending(), 1)
}

func (s *SyncCoordinatorTestSuite) TestRetry_UnsavedJournalDoesNotDoubleMerge() {
	pa, pb := uuid.New(), uuid.New()
	seedLocal(s.local, s.session,
		cart.Item{ProductID: pa, Quantity: 2},
		cart.Item{ProductID: pb, Quantity: 1},
	)
	s.remote.fail[pb] = errors.New("connection reset")
	s.local.saveFails = true

	c := s.newCoordinator()
	require.Error(s.T(), c.Login(s.ctx, s.user))
	if diff := cmp.Diff([]cart.Item{{ProductID: pb, Quantity: 1}}, c.Pending()); diff != "" {
		s.T().Errorf("pending mismatch (-want +got):\n%s", diff)
	}

	s.remote.heal()
	s.local.saveFails = false
	s.remote.calls = 0
	require.NoError(s.T(), c.Retry(s.ctx))

	assert.Equal(s.T(), 1, s.remote.calls)
	assert.Equal(s.T(), cartsync.StateSynced, c.State())
	assert.Equal(s.T(), map[uuid.UUID]int{pa: 2, pb: 1}, s.remote.snapshot(s.user))
}

func (s *SyncCoordinatorTestSuite) TestLogin_UnsavedJournalSurvivesLogout() {
	pa, pb := uuid.New(), uuid.New()
	seedLocal(s.local, s.session,
		cart.Item{ProductID: pa, Quantity: 2},
		cart.Item{ProductID: pb, Quantity: 1},
	)
	s.remote.fail[pb] = errors.New("connection reset")
	s.local.saveFails = true

	c := s.newCoordinator()
	require.Error(s.T(), c.Login(s.ctx, s.user))
	require.NoError(s.T(), c.Logout(s.ctx))

	s.remote.heal()
	s.local.saveFails = false
	require.NoError(s.T(), c.Login(s.ctx, s.user))

	assert.Equal(s.T(), map[uuid.UUID]int{pa: 2, pb: 1}, s.remote.snapshot(s.user))
}

func (s *SyncCoordinatorTestSuite) TestRetry_RequiresSyncFailed() {
	c := s.newCoordinator()
	assert.True(s.T(), errs.Is(c.Retry(s.ctx), usecase.ErrNothingToRetry))

	require.NoError(s.T(), c.Login(s.ctx, s.user))
	assert.True(s.T(), errs.Is(c.Retry(s.ctx), usecase.ErrNothingToRetry))
}

func (s *SyncCoordinatorTestSuite) TestMerge_IsIdempotent() {
	p1, p2 := uuid.New(), uuid.New()
	seedLocal(s.local, s.session,
		cart.Item{ProductID: p1, Quantity: 2},
		cart.Item{ProductID: p2, Quantity: 1},
	)
	s.remote.seed(s.user, cart.Item{ProductID: p1, Quantity: 1})

	// The local cart survives the first merge because clearing fails, so the
	// second login sees the same snapshot again.
	s.local.clearFails = true
	c := s.newCoordinator()
	require.NoError(s.T(), c.Login(s.ctx, s.user))
	once := s.remote.snapshot(s.user)
	require.NoError(s.T(), c.Logout(s.ctx))
	require.NotEmpty(s.T(), localItems(s.local, s.session))

	require.NoError(s.T(), c.Login(s.ctx, s.user))

	assert.Equal(s.T(), map[uuid.UUID]int{p1: 3, p2: 1}, once)
	assert.Equal(s.T(), once, s.remote.snapshot(s.user))
}

func (s *SyncCoordinatorTestSuite) TestMerge_ResumesAfterRestart() {
	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()
	seedLocal(s.local, s.session,
		cart.Item{ProductID: p1, Quantity: 1},
		cart.Item{ProductID: p2, Quantity: 4},
		cart.Item{ProductID: p3, Quantity: 1},
	)
	s.remote.fail[p2] = errors.New("connection reset")
	require.Error(s.T(), s.newCoordinator().Login(s.ctx, s.user))
	s.remote.heal()

	// a new coordinator has no memory of the first attempt
	c := s.newCoordinator()
	require.NoError(s.T(), c.Login(s.ctx, s.user))

	assert.Equal(s.T(), map[uuid.UUID]int{p1: 1, p2: 4, p3: 1}, s.remote.snapshot(s.user))
}

func (s *SyncCoordinatorTestSuite) TestLogout() {
	s.Run("synced: local starts empty and remote is kept", func() {
		s.SetupTest()
		p := uuid.New()
		seedLocal(s.local, s.session, cart.Item{ProductID: p, Quantity: 1})
		c := s.newCoordinator()
		require.NoError(s.T(), c.Login(s.ctx, s.user))

		require.NoError(s.T(), c.Logout(s.ctx))

		assert.Equal(s.T(), cartsync.StateAnonymous, c.State())
		assert.Equal(s.T(), uuid.Nil, c.UserID())
		assert.Empty(s.T(), localItems(s.local, s.session))
		assert.Equal(s.T(), map[uuid.UUID]int{p: 1}, s.remote.snapshot(s.user))
	})

	s.Run("sync failed: unmerged items stay local", func() {
		s.SetupTest()
		p1, p2 := uuid.New(), uuid.New()
		seedLocal(s.local, s.session, cart.Item{ProductID: p1, Quantity: 1}, cart.Item{ProductID: p2, Quantity: 1})
		s.remote.fail[p2] = errors.New("connection reset")
		c := s.newCoordinator()
		require.Error(s.T(), c.Login(s.ctx, s.user))

		require.NoError(s.T(), c.Logout(s.ctx))

		assert.Equal(s.T(), cartsync.StateAnonymous, c.State())
		assert.Contains(s.T(), localItems(s.local, s.session), p2)
		assert.Empty(s.T(), c.Pending())
	})

	s.Run("anonymous: invalid transition", func() {
		s.SetupTest()
		err := s.newCoordinator().Logout(s.ctx)
		assert.ErrorIs(s.T(), err, cartsync.ErrInvalidTransition)
	})
}
