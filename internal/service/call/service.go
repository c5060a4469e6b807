package call

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/healthline/voice-agent/internal/telephony"
)

// Caller-facing transfer strings. These go back to the conversation driver
// verbatim and get spoken to the caller.
const (
	MsgTransferring   = "Connecting you to a human agent..."
	MsgTransferFailed = "Could not transfer the call..."
	MsgCallEnded      = "ended"
)

// sipPrefix marks the participant that joined over the phone network.
const sipPrefix = "sip:"

// Service drives the two telephony operations. Everything real happens on
// the control plane; this service only picks the participant and relays.
type Service struct {
	client     telephony.Client
	transferTo string
}

func NewService(client telephony.Client, transferTo string) *Service {
	return &Service{client: client, transferTo: transferTo}
}

// TransferToHuman hands the SIP participant of the session over to the
// configured human number. A session without a SIP participant is not an
// error: the caller gets a spoken failure line and the call continues.
func (s *Service) TransferToHuman(ctx context.Context, sess *telephony.Session) (string, error) {
	var sip *telephony.Participant
	for i := range sess.Participants {
		if strings.HasPrefix(sess.Participants[i].Identity, sipPrefix) {
			sip = &sess.Participants[i]
			break
		}
	}
	if sip == nil {
		log.Warn().Str("room", sess.Room).Msg("no SIP participant in room, cannot transfer")
		return MsgTransferFailed, nil
	}

	if err := s.client.TransferParticipant(ctx, sess.Room, sip.Identity, s.transferTo, true); err != nil {
		return "", fmt.Errorf("failed to transfer call: %w", err)
	}

	log.Info().Str("room", sess.Room).Str("participant", sip.Identity).Msg("transferred call to human agent")
	return MsgTransferring, nil
}

// EndCall deletes the room, which hangs up for everyone in it.
func (s *Service) EndCall(ctx context.Context, sess *telephony.Session) (string, error) {
	if err := s.client.DeleteRoom(ctx, sess.Room); err != nil {
		return "", fmt.Errorf("failed to end call: %w", err)
	}
	log.Info().Str("room", sess.Room).Msg("ended call")
	return MsgCallEnded, nil
}
