package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	icommon "github.com/goran-ethernal/ChainPaywall/internal/common"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/pkg/config"
	"github.com/goran-ethernal/ChainPaywall/pkg/identity"
)

// maxResponseSize caps the validator response body read into memory.
const maxResponseSize = 1 << 20

var _ identity.Resolver = (*HubResolver)(nil)

// HubResolver validates signed frame actions against a hosted hub API.
// The action is posted as hex encoded message bytes and the interactor's
// account id and custody address are read from the response.
type HubResolver struct {
	url    string
	apiKey string
	client *http.Client
	log    *logger.Logger
}

type validateRequest struct {
	MessageBytesInHex string `json:"message_bytes_in_hex"`
}

type validateResponse struct {
	Valid  bool `json:"valid"`
	Action struct {
		Interactor struct {
			FID            uint64 `json:"fid"`
			CustodyAddress string `json:"custody_address"`
		} `json:"interactor"`
	} `json:"action"`
}

// NewHubResolver creates a resolver for the configured validation endpoint.
func NewHubResolver(cfg *config.IdentityConfig, log *logger.Logger) *HubResolver {
	return &HubResolver{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: cfg.Timeout.Duration},
		log:    log.WithComponent(icommon.ComponentIdentity),
	}
}

func (r *HubResolver) Resolve(ctx context.Context, signature string) (identity.Identity, error) {
	signature = strings.TrimPrefix(strings.TrimSpace(signature), "0x")
	if signature == "" {
		return identity.Identity{}, fmt.Errorf("%w: empty payload", identity.ErrInvalidSignature)
	}

	body, err := json.Marshal(validateRequest{MessageBytesInHex: signature})
	if err != nil {
		return identity.Identity{}, fmt.Errorf("failed to encode validation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return identity.Identity{}, fmt.Errorf("failed to create validation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api_key", r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("validation request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return identity.Identity{}, fmt.Errorf("failed to read validation response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return identity.Identity{}, fmt.Errorf("%w: %s", identity.ErrInvalidSignature, strings.TrimSpace(string(raw)))
	case resp.StatusCode != http.StatusOK:
		return identity.Identity{}, fmt.Errorf("validation endpoint returned %s", resp.Status)
	}

	var result validateResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return identity.Identity{}, fmt.Errorf("failed to decode validation response: %w", err)
	}

	if !result.Valid {
		return identity.Identity{}, identity.ErrInvalidSignature
	}

	interactor := result.Action.Interactor
	if interactor.FID == 0 || !common.IsHexAddress(interactor.CustodyAddress) {
		return identity.Identity{}, errors.New("validation response is missing the interactor")
	}

	r.log.Debugw("frame action validated", "fid", interactor.FID)

	return identity.Identity{
		AccountID: interactor.FID,
		Wallet:    common.HexToAddress(interactor.CustodyAddress),
	}, nil
}
