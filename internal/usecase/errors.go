package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrInvalidProduct      = errors.New("invalid product id")
	ErrProductUnresolvable = errors.New("product could not be resolved")
	ErrRemoteUnavailable   = errors.New("remote cart unavailable")
	ErrMergeFailed         = errors.New("cart merge failed")
	ErrCouponLookupFailed  = errors.New("coupon lookup failed")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrNothingToRetry      = errors.New("no failed merge to retry")
	ErrLocalStoreFailed    = errors.New("local cart store failed")
)

// StoreOpError names the store operation and product a failure belongs to so
// the caller can retry precisely.
type StoreOpError struct {
	Op        string
	ProductID uuid.UUID
	Err       error
}

func (e *StoreOpError) Error() string {
	if e.ProductID == uuid.Nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s product=%s: %v", e.Op, e.ProductID, e.Err)
}

func (e *StoreOpError) Unwrap() error {
	return e.Err
}

type ItemFailure struct {
	ProductID uuid.UUID
	Quantity  int
	Err       error
}

// MergeError lists the items a merge attempt could not add remotely.
type MergeError struct {
	Failed []ItemFailure
}

func (e *MergeError) Error() string {
	ids := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		ids[i] = f.ProductID.String()
	}
	return fmt.Sprintf("%d item(s) not merged: %s", len(e.Failed), strings.Join(ids, ","))
}
