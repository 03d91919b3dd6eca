package cartsync

import "storefront-cart/internal/domain/cart"

// LocalCart is the document kept in the local store for one cart session.
type LocalCart struct {
	Items   []cart.Item
	Journal Journal
}

func EmptyLocalCart() LocalCart {
	return LocalCart{Journal: Journal{}}
}

func (l LocalCart) Cart() *cart.Cart {
	return cart.FromItems(l.Items)
}

func (l LocalCart) IsEmpty() bool {
	return len(l.Items) == 0 && l.Journal.IsEmpty()
}
