package domain

import (
	"context"
	"errors"

	ratecarddomain "github.com/renolab/bathquote/internal/ratecard/domain"
)

// Service prices a labor intake against a configuration snapshot.
// Calculate loads its own snapshot; CalculateWith prices against an
// explicitly injected one so callers composing a larger operation (the
// pricing snapshot) use a single consistent configuration read.
type Service interface {
	Calculate(ctx context.Context, form QuoteFormData) (*CalculatedQuote, error)
	CalculateWith(ctx context.Context, form QuoteFormData, snapshot *ratecarddomain.ConfigSnapshot) (*CalculatedQuote, error)
}

var (
	ErrMissingRateCode    = errors.New("missing_rate_code")
	ErrRateCardIncomplete = errors.New("rate_card_incomplete")
	ErrInvalidForm        = errors.New("invalid_form")
)
