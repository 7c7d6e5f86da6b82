package business

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const BusinessKey contextKey = "business"

var ErrNoBusiness = errors.New("business not found")

// CurrentId retrieves the current business's ID from the context. Returns
// ErrNoBusiness if not present.
func CurrentId(ctx context.Context) (int, error) {
	b, ok := ctx.Value(BusinessKey).(Business)
	if !ok {
		log.Trace("business not found in context")
		return 0, ErrNoBusiness
	}
	return b.ID, nil
}

func Current(ctx context.Context) (Business, error) {
	b, ok := ctx.Value(BusinessKey).(Business)
	if !ok {
		log.Trace("business not found in context")
		return Business{}, ErrNoBusiness
	}
	return b, nil
}

func WithBusiness(ctx context.Context, b Business) context.Context {
	return context.WithValue(ctx, BusinessKey, b)
}
