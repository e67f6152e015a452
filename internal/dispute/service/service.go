package service

import (
	"context"
	"errors"
	"log/slog"

	contractmodels "tenure/internal/contract/models"
	"tenure/internal/events"
	"tenure/internal/payout"
	"tenure/internal/platform/metrics"
	id "tenure/pkg/domain"
	dErrors "tenure/pkg/domain-errors"
	"tenure/pkg/platform/sentinel"
	"tenure/pkg/requestcontext"
)

// ContractStore is the slice of the contract store arbitration needs.
type ContractStore interface {
	Mutate(ctx context.Context, contractID id.ContractID, fn func(*contractmodels.Contract) error) (*contractmodels.Contract, error)
}

type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// Service arbitrates disputed contracts. It is the only path out of the
// Disputed status.
type Service struct {
	contracts ContractStore
	payouts   payout.Provider
	logger    *slog.Logger
	publisher EventPublisher
	metrics   *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithEventPublisher(publisher EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(contracts ContractStore, payouts payout.Provider, opts ...Option) *Service {
	s := &Service{contracts: contracts, payouts: payouts}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve settles a disputed contract. Only the contract's arbitrator may
// resolve. A decision in the employee's favor pays out the full escrow
// balance with the same zero-then-transfer ordering release uses; either
// way the contract ends Terminated.
func (s *Service) Resolve(ctx context.Context, contractID id.ContractID, forEmployee bool) (*contractmodels.Contract, error) {
	caller := requestcontext.Caller(ctx)
	now := requestcontext.Now(ctx)

	var paid int64
	var recipient id.Identity
	contract, err := s.contracts.Mutate(ctx, contractID, func(c *contractmodels.Contract) error {
		if err := contractmodels.Authorize(contractmodels.OpResolveDispute, c, "", caller); err != nil {
			return err
		}
		if c.Status != contractmodels.StatusDisputed {
			return dErrors.New(dErrors.CodeInvalidState, "contract is not disputed")
		}
		if forEmployee && c.Escrow.Balance > 0 {
			amount := c.Escrow.Drain()
			if err := s.payouts.Transfer(ctx, c.Employee, amount); err != nil {
				c.Escrow.Restore(amount)
				if s.metrics != nil {
					s.metrics.TransferErrors.Inc()
				}
				return dErrors.Wrap(err, dErrors.CodeTransferFailed, "dispute payout failed")
			}
			paid = amount
			recipient = c.Employee
		}
		return c.Transition(contractmodels.StatusTerminated, now)
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "contract not found")
		}
		if dErrors.CodeOf(err) != dErrors.CodeInternal {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve dispute")
	}

	s.log(ctx, "dispute resolved",
		"contract_id", contractID,
		"for_employee", forEmployee,
		"payout", paid,
	)
	s.emit(ctx, events.Event{
		Type:       events.TypeDisputeResolved,
		Actor:      caller,
		ContractID: contractID,
		CompanyID:  contract.CompanyID,
		Recipient:  recipient,
		Amount:     paid,
	})
	if s.metrics != nil {
		s.metrics.DisputesResolved.Inc()
		if paid > 0 {
			s.metrics.DisputePayouts.Add(float64(paid))
		}
	}
	return contract, nil
}

func (s *Service) log(ctx context.Context, msg string, attributes ...any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	s.logger.InfoContext(ctx, msg, attributes...)
}

func (s *Service) emit(ctx context.Context, event events.Event) {
	if s.publisher != nil {
		s.publisher.Emit(ctx, event)
	}
}
