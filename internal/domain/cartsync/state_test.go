//go:build unit

package cartsync_test

import (
	"testing"

	"storefront-cart/internal/domain/cart"
	"storefront-cart/internal/domain/cartsync"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Transition(t *testing.T) {
	allowed := []struct{ from, to cartsync.State }{
		{cartsync.StateAnonymous, cartsync.StateAuthenticating},
		{cartsync.StateAuthenticating, cartsync.StateMerging},
		{cartsync.StateMerging, cartsync.StateSynced},
		{cartsync.StateMerging, cartsync.StateSyncFailed},
		{cartsync.StateSynced, cartsync.StateAnonymous},
		{cartsync.StateSyncFailed, cartsync.StateMerging},
		{cartsync.StateSyncFailed, cartsync.StateAnonymous},
	}
	for _, tr := range allowed {
		next, err := tr.from.Transition(tr.to)
		require.NoErrorf(t, err, "%s -> %s", tr.from, tr.to)
		assert.Equal(t, tr.to, next)
	}

	rejected := []struct{ from, to cartsync.State }{
		{cartsync.StateAnonymous, cartsync.StateMerging},
		{cartsync.StateAnonymous, cartsync.StateSynced},
		{cartsync.StateAuthenticating, cartsync.StateSynced},
		{cartsync.StateMerging, cartsync.StateAnonymous},
		{cartsync.StateSynced, cartsync.StateMerging},
	}
	for _, tr := range rejected {
		next, err := tr.from.Transition(tr.to)
		require.ErrorIsf(t, err, cartsync.ErrInvalidTransition, "%s -> %s", tr.from, tr.to)
		assert.Equal(t, tr.from, next)
	}
}

func TestState_UsesRemote(t *testing.T) {
	assert.False(t, cartsync.StateAnonymous.UsesRemote())
	assert.False(t, cartsync.StateAuthenticating.UsesRemote())
	assert.True(t, cartsync.StateMerging.UsesRemote())
	assert.True(t, cartsync.StateSynced.UsesRemote())
	assert.True(t, cartsync.StateSyncFailed.UsesRemote())
}

func TestDetectEdge(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()
	tests := []struct {
		name       string
		prev, next cartsync.Signal
		want       cartsync.Edge
	}{
		{"匿名のまま", cartsync.Anonymous(), cartsync.Anonymous(), cartsync.EdgeNone},
		{"ログイン", cartsync.Anonymous(), cartsync.LoggedIn(u1), cartsync.EdgeLogin},
		{"ログイン継続は発火しない", cartsync.LoggedIn(u1), cartsync.LoggedIn(u1), cartsync.EdgeNone},
		{"ログアウト", cartsync.LoggedIn(u1), cartsync.Anonymous(), cartsync.EdgeLogout},
		{"ユーザー切替", cartsync.LoggedIn(u1), cartsync.LoggedIn(u2), cartsync.EdgeSwitch},
		{"Nilユーザーは匿名扱い", cartsync.Anonymous(), cartsync.LoggedIn(uuid.Nil), cartsync.EdgeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cartsync.DetectEdge(tt.prev, tt.next))
		})
	}
}

func TestJournal_Pending(t *testing.T) {
	user := uuid.New()
	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()
	items := []cart.Item{
		{ProductID: p1, Quantity: 2},
		{ProductID: p2, Quantity: 3},
		{ProductID: p3, Quantity: 1},
	}

	j := cartsync.Journal{}
	j.Record(user, p1, 2)
	j.Record(user, p2, 1)
	j.Record(uuid.New(), p3, 1)

	want := []cart.Item{
		{ProductID: p2, Quantity: 2},
		{ProductID: p3, Quantity: 1},
	}
	if diff := cmp.Diff(want, j.Pending(user, items)); diff != "" {
		t.Errorf("pending mismatch (-want +got):\n%s", diff)
	}

	var empty cartsync.Journal
	assert.Equal(t, 0, empty.Merged(user, p1))
	assert.Len(t, empty.Pending(user, items), 3)
}

func TestJournal_Absorb(t *testing.T) {
	user, a, b := uuid.New(), uuid.New(), uuid.New()

	t.Run("大きい方の記録を残す", func(t *testing.T) {
		stored := cartsync.Journal{}
		stored.Record(user, a, 1)
		memory := cartsync.Journal{}
		memory.Record(user, a, 3)
		memory.Record(user, b, 2)

		stored.Absorb(memory)

		assert.Equal(t, 3, stored.Merged(user, a))
		assert.Equal(t, 2, stored.Merged(user, b))
	})

	t.Run("小さい記録では減らない", func(t *testing.T) {
		stored := cartsync.Journal{}
		stored.Record(user, a, 5)
		memory := cartsync.Journal{}
		memory.Record(user, a, 2)

		stored.Absorb(memory)

		assert.Equal(t, 5, stored.Merged(user, a))
	})
}
