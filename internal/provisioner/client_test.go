package provisioner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvision_Success(t *testing.T) {
	speed := 100
	expires := time.Now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/profiles", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ProvisionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(42), req.UserID)
		assert.Equal(t, "wireguard", req.Protocol)
		assert.Equal(t, "light", req.TariffCode)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(ProvisionResponse{
			Protocol:       "wireguard",
			Config:         "[Interface]\nPrivateKey = ...",
			QRURL:          "https://example.com/qr/42.png",
			ExpiresAt:      expires,
			SpeedLimitMbps: &speed,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Provision(context.Background(), ProvisionRequest{
		UserID:         42,
		Protocol:       "wireguard",
		DeviceName:     "phone",
		TariffCode:     "light",
		SpeedLimitMbps: &speed,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "wireguard", resp.Protocol)
	assert.Equal(t, "https://example.com/qr/42.png", resp.QRURL)
	assert.True(t, expires.Equal(resp.ExpiresAt))
	require.NotNil(t, resp.SpeedLimitMbps)
	assert.Equal(t, 100, *resp.SpeedLimitMbps)
}

func TestProvision_DomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    error
	}{
		{name: "capacity exceeded", statusCode: http.StatusConflict, wantErr: ErrCapacityExceeded},
		{name: "traffic cap exceeded", statusCode: http.StatusTooManyRequests, wantErr: ErrTrafficCapExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			client := NewClient(server.URL)
			resp, err := client.Provision(context.Background(), ProvisionRequest{UserID: 42, Protocol: "wireguard"})
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProvision_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Provision(context.Background(), ProvisionRequest{UserID: 42})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.NotErrorIs(t, err, ErrCapacityExceeded)
	assert.NotErrorIs(t, err, ErrTrafficCapExceeded)
}

func TestProvision_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL)
	_, err := client.Provision(ctx, ProvisionRequest{UserID: 42})
	require.Error(t, err)
}
