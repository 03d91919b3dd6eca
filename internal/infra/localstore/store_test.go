//go:build unit

package localstore_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"storefront-cart/internal/domain/cart"
	"storefront-cart/internal/domain/cartsync"
	"storefront-cart/internal/infra"
	"storefront-cart/internal/infra/kv"
	"storefront-cart/internal/infra/localstore"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prefix = "cart:local:"

var errRefused = errors.New("connection refused")

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) ([]byte, error) { return nil, errRefused }
func (brokenKV) Set(context.Context, string, []byte) error   { return errRefused }
func (brokenKV) Delete(context.Context, string) error        { return errRefused }

func newStore(store kv.Store) *localstore.Store {
	return localstore.NewStore(store, prefix, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	s := newStore(mem)
	session := uuid.New()
	user, p1, p2 := uuid.New(), uuid.New(), uuid.New()
	price := int64(1200)

	lc := cartsync.EmptyLocalCart()
	lc.Items = []cart.Item{
		{ProductID: p1, Quantity: 2, UnitPriceSnapshot: &price},
		{ProductID: p2, Quantity: 1},
	}
	lc.Journal.Record(user, p1, 2)

	require.NoError(t, s.Save(ctx, session, lc))

	got, err := s.Load(ctx, session)
	require.NoError(t, err)
	if diff := cmp.Diff(lc, got); diff != "" {
		t.Errorf("local cart mismatch (-want +got):\n%s", diff)
	}

	other, err := s.Load(ctx, uuid.New())
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("キー無しは空カート", func(t *testing.T) {
		got, err := newStore(kv.NewMemoryStore()).Load(ctx, uuid.New())
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
		assert.NotNil(t, got.Journal)
	})

	t.Run("壊れたJSONは空カート", func(t *testing.T) {
		mem := kv.NewMemoryStore()
		session := uuid.New()
		require.NoError(t, mem.Set(ctx, prefix+session.String(), []byte(`{"items":[{"product_id":`)))

		got, err := newStore(mem).Load(ctx, session)
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
	})

	t.Run("不正な行は読み捨て重複は合算", func(t *testing.T) {
		mem := kv.NewMemoryStore()
		session := uuid.New()
		p := uuid.New()
		raw := `{"items":[{"product_id":"` + p.String() + `","quantity":1},` +
			`{"product_id":"` + p.String() + `","quantity":2},` +
			`{"product_id":"` + uuid.New().String() + `","quantity":0}]}`
		require.NoError(t, mem.Set(ctx, prefix+session.String(), []byte(raw)))

		got, err := newStore(mem).Load(ctx, session)
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 3, got.Items[0].Quantity)
	})

	t.Run("KV障害はエラー", func(t *testing.T) {
		_, err := newStore(brokenKV{}).Load(ctx, uuid.New())
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindKVFailure))
	})
}

func TestStore_SaveEmptyClears(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	s := newStore(mem)
	session := uuid.New()

	lc := cartsync.EmptyLocalCart()
	lc.Items = []cart.Item{{ProductID: uuid.New(), Quantity: 1}}
	require.NoError(t, s.Save(ctx, session, lc))

	require.NoError(t, s.Save(ctx, session, cartsync.EmptyLocalCart()))

	_, err := mem.Get(ctx, prefix+session.String())
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)
}
