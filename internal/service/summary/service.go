package summary

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/healthline/voice-agent/internal/model"
	"github.com/healthline/voice-agent/internal/repository"
	"github.com/healthline/voice-agent/pkg/ident"
)

// Service writes call summary entries. The contract is fire-and-forget: a
// failed append is logged for operators and never surfaced to the caller.
type Service struct {
	store repository.SummaryLog
	ids   *ident.Generator
}

func NewService(store repository.SummaryLog, ids *ident.Generator) *Service {
	return &Service{store: store, ids: ids}
}

// Write appends a timestamped summary block with a freshly generated call id.
func (s *Service) Write(ctx context.Context, text string) {
	entry := &model.CallSummary{
		Timestamp: time.Now(),
		CallID:    s.ids.NextString(),
		Text:      text,
	}
	if err := s.store.Append(ctx, entry); err != nil {
		log.Error().Err(err).Msg("failed to write call summary")
	}
}
