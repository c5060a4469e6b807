package telephony

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/healthline/voice-agent/pkg/circuitbreaker"
	"github.com/healthline/voice-agent/pkg/errors"
)

// Control plane RPC paths, Twirp-style.
const (
	pathTransferParticipant = "/twirp/telephony.SIP/TransferSIPParticipant"
	pathDeleteRoom          = "/twirp/telephony.RoomService/DeleteRoom"
)

const tokenTTL = 10 * time.Minute

type Config struct {
	URL       string        `mapstructure:"url"`
	APIKey    string        `mapstructure:"api_key" envconfig:"TELEPHONY_API_KEY"`
	APISecret string        `mapstructure:"api_secret" envconfig:"TELEPHONY_API_SECRET"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// HTTPClient implements Client against the control plane's HTTP API. Every
// request carries a short-lived JWT signed with the API key pair.
type HTTPClient struct {
	cfg   Config
	httpc *http.Client
	cb    *circuitbreaker.CircuitBreaker
}

func NewHTTPClient(cfg Config) *HTTPClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &HTTPClient{
		cfg:   cfg,
		httpc: &http.Client{Timeout: cfg.Timeout},
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "telephony",
			MaxFailures: 5,
			Timeout:     15 * time.Second,
		}),
	}
}

type transferRequest struct {
	RoomName            string `json:"room_name"`
	ParticipantIdentity string `json:"participant_identity"`
	TransferTo          string `json:"transfer_to"`
	PlayDialtone        bool   `json:"play_dialtone"`
}

type deleteRoomRequest struct {
	Room string `json:"room"`
}

func (c *HTTPClient) TransferParticipant(ctx context.Context, room, identity, destination string, playDialtone bool) error {
	return c.post(ctx, pathTransferParticipant, room, &transferRequest{
		RoomName:            room,
		ParticipantIdentity: identity,
		TransferTo:          destination,
		PlayDialtone:        playDialtone,
	})
}

func (c *HTTPClient) DeleteRoom(ctx context.Context, room string) error {
	return c.post(ctx, pathDeleteRoom, room, &deleteRoomRequest{Room: room})
}

func (c *HTTPClient) post(ctx context.Context, path, room string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Transport("failed to encode control plane request", err)
	}

	token, err := c.accessToken(room)
	if err != nil {
		return errors.Transport("failed to sign control plane token", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Transport("failed to build control plane request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	return c.cb.Execute(func() error {
		resp, err := c.httpc.Do(req)
		if err != nil {
			return errors.Transport("control plane request failed", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			// Drain a little of the body for the log line.
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return errors.Transport(
				fmt.Sprintf("control plane returned %s: %s", resp.Status, bytes.TrimSpace(msg)), nil)
		}
		return nil
	})
}

// accessToken builds the room-scoped admin JWT the control plane expects.
func (c *HTTPClient) accessToken(room string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": c.cfg.APIKey,
		"nbf": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
		"video": map[string]interface{}{
			"roomAdmin": true,
			"room":      room,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.cfg.APISecret))
}
