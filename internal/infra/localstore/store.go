package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"storefront-cart/internal/domain/cart"
	"storefront-cart/internal/domain/cartsync"
	"storefront-cart/internal/infra"
	"storefront-cart/internal/infra/kv"

	"github.com/google/uuid"
)

type itemDoc struct {
	ProductID         uuid.UUID `json:"product_id"`
	Quantity          int       `json:"quantity"`
	UnitPriceSnapshot *int64    `json:"unit_price_snapshot,omitempty"`
}

type cartDoc struct {
	Items   []itemDoc        `json:"items"`
	Journal cartsync.Journal `json:"journal,omitempty"`
}

// Store keeps one serialized cart per cart session under prefix+sessionID.
type Store struct {
	kv     kv.Store
	prefix string
	logger *slog.Logger
}

func NewStore(store kv.Store, prefix string, logger *slog.Logger) *Store {
	return &Store{kv: store, prefix: prefix, logger: logger}
}

func (s *Store) key(sessionID uuid.UUID) string {
	return s.prefix + sessionID.String()
}

// Load returns an empty cart when the key is absent or its content is malformed.
func (s *Store) Load(ctx context.Context, sessionID uuid.UUID) (cartsync.LocalCart, error) {
	raw, err := s.kv.Get(ctx, s.key(sessionID))
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return cartsync.EmptyLocalCart(), nil
		}
		return cartsync.LocalCart{}, infra.WrapRepoErr(s.logger, infra.KindKVFailure, "failed to read local cart", err)
	}

	var doc cartDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn("discarding malformed local cart",
			slog.String("session_id", sessionID.String()),
			slog.String("error", err.Error()))
		return cartsync.EmptyLocalCart(), nil
	}

	items := make([]cart.Item, 0, len(doc.Items))
	for _, d := range doc.Items {
		items = append(items, cart.Item{
			ProductID:         d.ProductID,
			Quantity:          d.Quantity,
			UnitPriceSnapshot: d.UnitPriceSnapshot,
		})
	}
	journal := doc.Journal
	if journal == nil {
		journal = cartsync.Journal{}
	}
	// FromItems drops rows that break cart invariants.
	return cartsync.LocalCart{Items: cart.FromItems(items).Items(), Journal: journal}, nil
}

func (s *Store) Save(ctx context.Context, sessionID uuid.UUID, lc cartsync.LocalCart) error {
	if lc.IsEmpty() {
		return s.Clear(ctx, sessionID)
	}

	doc := cartDoc{Items: make([]itemDoc, 0, len(lc.Items)), Journal: lc.Journal}
	for _, it := range lc.Items {
		doc.Items = append(doc.Items, itemDoc{
			ProductID:         it.ProductID,
			Quantity:          it.Quantity,
			UnitPriceSnapshot: it.UnitPriceSnapshot,
		})
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindDecode, "failed to encode local cart", err)
	}
	if err := s.kv.Set(ctx, s.key(sessionID), raw); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindKVFailure, "failed to write local cart", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.kv.Delete(ctx, s.key(sessionID)); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindKVFailure, "failed to clear local cart", err)
	}
	return nil
}
