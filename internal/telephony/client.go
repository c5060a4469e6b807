// Package telephony is the boundary adapter for the external control plane
// that owns the live call: room lifecycle and SIP participant transfer. SIP
// signaling itself lives entirely on the other side of this interface.
package telephony

import "context"

// Participant is a remote participant in the active room, as reported by
// the conversation driver alongside a telephony tool call.
type Participant struct {
	Identity string `json:"identity"`
}

// Session is the call context a telephony tool call runs against.
type Session struct {
	Room         string        `json:"room"`
	Participants []Participant `json:"participants"`
}

// Client talks to the telephony control plane.
type Client interface {
	// TransferParticipant moves the identified participant out of the room
	// to the given destination ("tel:+1..." or a SIP URI).
	TransferParticipant(ctx context.Context, room, identity, destination string, playDialtone bool) error

	// DeleteRoom tears the room down, which ends the call for everyone.
	DeleteRoom(ctx context.Context, room string) error
}
