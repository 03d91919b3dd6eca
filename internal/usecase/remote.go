package usecase

import (
	"context"
	"time"

	"storefront-cart/internal/infra"
	"storefront-cart/internal/pkg/errs"

	"github.com/google/uuid"
)

// callRemote bounds one remote call by timeout and classifies its failure.
func callRemote(ctx context.Context, timeout time.Duration, op string, productID uuid.UUID, fn func(context.Context) error) error {
	callCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	err := fn(callCtx)
	if err == nil {
		return nil
	}
	opErr := &StoreOpError{Op: op, ProductID: productID, Err: err}
	if infra.IsKind(err, infra.KindForeignKeyViolated) {
		return errs.Mark(opErr, ErrProductUnresolvable)
	}
	return errs.Mark(opErr, ErrRemoteUnavailable)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
