package cartsync

import (
	"storefront-cart/internal/domain/cart"

	"github.com/google/uuid"
)

// Journal records, per user and product, how much local quantity has already
// been added to that user's remote cart. Replaying a merge only sends the
// remainder, so an interrupted merge never double counts.
type Journal map[uuid.UUID]map[uuid.UUID]int

func (j Journal) Merged(userID, productID uuid.UUID) int {
	if j == nil {
		return 0
	}
	return j[userID][productID]
}

func (j Journal) Record(userID, productID uuid.UUID, qty int) {
	if j[userID] == nil {
		j[userID] = make(map[uuid.UUID]int)
	}
	j[userID][productID] += qty
}

// Pending returns the local items whose quantity has not been fully merged
// for userID, with Quantity reduced to the unmerged remainder.
func (j Journal) Pending(userID uuid.UUID, items []cart.Item) []cart.Item {
	out := make([]cart.Item, 0, len(items))
	for _, it := range items {
		delta := it.Quantity - j.Merged(userID, it.ProductID)
		if delta < 1 {
			continue
		}
		it.Quantity = delta
		out = append(out, it)
	}
	return out
}

// Absorb raises every entry of j to at least the quantity recorded in other.
func (j Journal) Absorb(other Journal) {
	for userID, merged := range other {
		for productID, qty := range merged {
			if qty > j.Merged(userID, productID) {
				if j[userID] == nil {
					j[userID] = make(map[uuid.UUID]int)
				}
				j[userID][productID] = qty
			}
		}
	}
}

func (j Journal) IsEmpty() bool {
	return len(j) == 0
}
