package controller

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValidationError is a draft rejected before any request is sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Options configures controllers.
type Options struct {
	// LenientAmounts turns an unparsable amount into zero instead of a
	// ValidationError, matching the web client's behaviour.
	LenientAmounts bool
	Logger         *slog.Logger
	// Now defaults to time.Now. Used for the default transaction date.
	Now func() time.Time
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// parseAmount reads a decimal from form input. Empty input is always
// rejected. In strict mode the value must parse and, when positive is set, be
// greater than zero. In lenient mode anything non-empty is accepted and an
// unparsable value becomes zero.
func (o Options) parseAmount(field, raw string, positive bool) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, invalid(field, "required")
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		if o.LenientAmounts {
			return decimal.Zero, nil
		}
		return decimal.Zero, invalid(field, fmt.Sprintf("%q is not a number", raw))
	}
	if positive && !d.IsPositive() && !o.LenientAmounts {
		return decimal.Zero, invalid(field, "must be greater than zero")
	}
	return d, nil
}
