// Package provisioner содержит HTTP-клиент сервиса выдачи VPN-профилей.
package provisioner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Ошибки коллаборатора. Пробрасываются вызывающему без повторных попыток.
var (
	// ErrCapacityExceeded - на узлах нет свободной емкости для нового профиля.
	ErrCapacityExceeded = errors.New("provisioner capacity exceeded")
	// ErrTrafficCapExceeded - пользователь исчерпал лимит трафика.
	ErrTrafficCapExceeded = errors.New("provisioner traffic cap exceeded")
)

// Client - клиент HTTP API провижининга.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient создает новый клиент провижининга.
func NewClient(apiURL string) *Client {
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ProvisionRequest - запрос на выдачу профиля подключения.
type ProvisionRequest struct {
	UserID          int64  `json:"user_id"`
	Protocol        string `json:"protocol"`
	DeviceName      string `json:"device_name"`
	TariffCode      string `json:"tariff_code"`
	SpeedLimitMbps  *int   `json:"speed_limit_mbps,omitempty"`
	SimultaneousUse int    `json:"simultaneous_use"`
	TrafficUsedGB   int    `json:"traffic_used_gb"`
}

// ProvisionResponse - выданный профиль подключения.
type ProvisionResponse struct {
	Protocol       string    `json:"protocol"`
	Config         string    `json:"config"`
	QRURL          string    `json:"qr_url,omitempty"`
	ExpiresAt      time.Time `json:"expires_at"`
	SpeedLimitMbps *int      `json:"speed_limit_mbps,omitempty"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// Provision запрашивает профиль подключения для пользователя.
// Статусы 409 и 429 переводятся в доменные ошибки.
func (c *Client) Provision(ctx context.Context, reqParams ProvisionRequest) (*ProvisionResponse, error) {
	const op = "provisioner.Provision"

	req, err := c.newRequest(ctx, "POST", "/profiles", reqParams)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict:
		return nil, fmt.Errorf("%s: %w", op, ErrCapacityExceeded)
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("%s: %w", op, ErrTrafficCapExceeded)
	default:
		return nil, fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var provisionResp ProvisionResponse
	if err := json.NewDecoder(resp.Body).Decode(&provisionResp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &provisionResp, nil
}
