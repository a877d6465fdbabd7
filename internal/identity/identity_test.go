package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	icommon "github.com/goran-ethernal/ChainPaywall/internal/common"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/pkg/config"
	"github.com/goran-ethernal/ChainPaywall/pkg/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const custody = "0x00000000000000000000000000000000000000Aa"

func newHub(t *testing.T, handler http.HandlerFunc) *HubResolver {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewHubResolver(&config.IdentityConfig{
		URL:     srv.URL,
		APIKey:  "secret",
		Timeout: icommon.NewDuration(time.Second),
	}, logger.NewNopLogger())
}

func TestHubResolver_Resolve(t *testing.T) {
	r := newHub(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "secret", req.Header.Get("api_key"))

		var body validateRequest
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "0a1b2c", body.MessageBytesInHex)

		_, _ = w.Write([]byte(`{"valid":true,"action":{"interactor":{"fid":4242,"custody_address":"` + custody + `"}}}`))
	})

	id, err := r.Resolve(context.Background(), "0x0a1b2c")
	require.NoError(t, err)
	require.Equal(t, uint64(4242), id.AccountID)
	require.Equal(t, common.HexToAddress(custody), id.Wallet)
}

func TestHubResolver_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		invalidSig bool
	}{
		{"not valid", http.StatusOK, `{"valid":false}`, true},
		{"bad request", http.StatusBadRequest, `{"message":"bad message bytes"}`, true},
		{"server error", http.StatusInternalServerError, `oops`, false},
		{"garbage", http.StatusOK, `not json`, false},
		{"missing interactor", http.StatusOK, `{"valid":true,"action":{}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newHub(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := r.Resolve(context.Background(), "0a")
			require.Error(t, err)
			require.Equal(t, tt.invalidSig, errors.Is(err, identity.ErrInvalidSignature))
		})
	}
}

func TestHubResolver_EmptySignature(t *testing.T) {
	r := newHub(t, func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	})

	_, err := r.Resolve(context.Background(), "  ")
	require.ErrorIs(t, err, identity.ErrInvalidSignature)
}

func TestStaticResolver(t *testing.T) {
	alice := identity.Identity{AccountID: 1, Wallet: common.HexToAddress(custody)}
	r := NewStaticResolver(map[string]identity.Identity{"alice": alice})

	id, err := r.Resolve(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, alice, id)

	_, err = r.Resolve(context.Background(), "bob")
	require.ErrorIs(t, err, identity.ErrInvalidSignature)

	bob := identity.Identity{AccountID: 2}
	r.Add("bob", bob)
	id, err = r.Resolve(context.Background(), "bob")
	require.NoError(t, err)
	require.Equal(t, bob, id)
}
