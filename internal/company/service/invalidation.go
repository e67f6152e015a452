package service

import (
	"context"

	"tenure/internal/events"
	id "tenure/pkg/domain"
)

// StatsInvalidator drops a company's cached stats entry.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, companyID id.CompanyID) error
}

// InvalidationSink drops cached stats for a company whenever a lifecycle
// event lands on it, so the next Stats read recomputes. Runs on the event
// worker; the cache is eventually consistent with the stores.
type InvalidationSink struct {
	cache StatsInvalidator
}

func NewInvalidationSink(cache StatsInvalidator) *InvalidationSink {
	return &InvalidationSink{cache: cache}
}

func (s *InvalidationSink) Append(ctx context.Context, event events.Event) error {
	if !event.CompanyID.Valid() {
		return nil
	}
	return s.cache.Invalidate(ctx, event.CompanyID)
}
