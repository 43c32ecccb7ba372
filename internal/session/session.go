// Package session keeps wizard sessions between requests. A session owns
// one draft.State; it is discarded on cancel, after a successful save, or
// once it has been idle longer than the configured TTL.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/portfolio-mgmt/pms-wizard/internal/draft"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("wizard session not found")

// Wizard is a stored wizard session.
type Wizard struct {
	ID          string `json:"id"`
	AgreementID int64  `json:"agreementId"`
	// ClientID names the navigation registry the session's blocker lives in.
	ClientID              string          `json:"clientId"`
	ProcShopFeePercentage decimal.Decimal `json:"procShopFeePercentage"`
	State                 draft.State     `json:"state"`
	// SeededIDs are the server ids of the items the session opened with;
	// those missing from State at save time are deleted.
	SeededIDs []int64   `json:"seededIds,omitempty"`
	CreatedBy             string          `json:"createdBy,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// Store persists wizard sessions.
type Store interface {
	Get(ctx context.Context, id string) (*Wizard, error)
	Put(ctx context.Context, w *Wizard) error
	Delete(ctx context.Context, id string) error
	// Sweep removes sessions last updated before cutoff and returns their ids.
	Sweep(ctx context.Context, cutoff time.Time) ([]string, error)
}

type options struct {
	now func() time.Time
}

// Option configures a Store.
type Option func(*options)

// WithClock replaces time.Now when stamping and expiring sessions.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
