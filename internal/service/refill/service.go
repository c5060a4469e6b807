package refill

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/healthline/voice-agent/internal/model"
	"github.com/healthline/voice-agent/internal/repository"
	"github.com/healthline/voice-agent/pkg/ident"
	"github.com/healthline/voice-agent/pkg/messaging"
)

// ChannelRefills is the broker channel for refill events.
const ChannelRefills = "calls.refills"

// Service records medicine refill orders. No directory involvement: a
// refill is a single durable ledger append.
type Service struct {
	ledger repository.RefillLedger
	ids    *ident.Generator
	broker messaging.Broker
}

func NewService(ledger repository.RefillLedger, ids *ident.Generator, broker messaging.Broker) *Service {
	return &Service{
		ledger: ledger,
		ids:    ids,
		broker: broker,
	}
}

// OrderRefill appends the refill record and returns the generated refill id.
func (s *Service) OrderRefill(ctx context.Context, req *model.OrderRefillRequest) (string, error) {
	refillID := s.ids.NextString()
	order := &model.RefillOrder{
		RefillID:        refillID,
		CustomerName:    req.CustomerName,
		Age:             req.Age,
		Address:         req.Address,
		MedicineName:    req.MedicineName,
		Quantity:        req.Quantity,
		UsageDuration:   req.UsageDuration,
		ConsultedDoctor: req.ConsultedDoctor,
		Instructions:    req.Instructions,
		SavedAt:         time.Now().Format(time.RFC3339),
	}

	if err := s.ledger.Append(ctx, order); err != nil {
		return "", fmt.Errorf("failed to record refill order: %w", err)
	}

	if s.broker != nil {
		if err := s.broker.Publish(ctx, ChannelRefills, order); err != nil {
			log.Warn().Err(err).Str("refill_id", refillID).Msg("failed to publish refill event")
		}
	}

	return refillID, nil
}
