package invoice

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		userID     int64
		tariffCode string
		issuedAt   time.Time
	}{
		{
			name:       "regular user and tariff",
			userID:     7,
			tariffCode: "light",
			issuedAt:   time.Unix(1700000000, 0).UTC(),
		},
		{
			name:       "zero user id",
			userID:     0,
			tariffCode: "unlimited",
			issuedAt:   time.Unix(1, 0).UTC(),
		},
		{
			name:       "large telegram id",
			userID:     5266176197,
			tariffCode: "family",
			issuedAt:   time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := Encode(tt.userID, tt.tariffCode, tt.issuedAt)

			userID, tariffCode, issuedAt, err := Decode(token)
			require.NoError(t, err)
			assert.Equal(t, tt.userID, userID)
			assert.Equal(t, tt.tariffCode, tariffCode)
			assert.Equal(t, tt.issuedAt.Truncate(time.Second), issuedAt)
		})
	}
}

func TestEncode_Format(t *testing.T) {
	token := Encode(7, "light", time.Unix(1700000000, 0))
	assert.Equal(t, "invoice-7-light-1700000000", token)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "single word", token: "bad"},
		{name: "empty string", token: ""},
		{name: "three segments", token: "invoice-7-light"},
		{name: "user id is not a number", token: "invoice-seven-light-1700000000"},
		{name: "negative user id", token: "invoice--7-light-1700000000"},
		{name: "timestamp is not a number", token: "invoice-7-light-yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := Decode(tt.token)
			assert.True(t, errors.Is(err, ErrMalformedInvoice))
		})
	}
}

func TestDecode_IgnoresTrailingSegments(t *testing.T) {
	// Любой корректный префикс из четырех сегментов разбирается, даже если
	// за ним следует хвост.
	userID, tariffCode, issuedAt, err := Decode("invoice-7-light-1700000000-extra")
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
	assert.Equal(t, "light", tariffCode)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), issuedAt)
}

func TestDecode_DoesNotVerifyOrigin(t *testing.T) {
	// Разбор не проверяет подлинность: любой корректно собранный токен
	// декодируется независимо от того, кто его выпустил.
	userID, tariffCode, _, err := Decode("invoice-99-family-1")
	require.NoError(t, err)
	assert.Equal(t, int64(99), userID)
	assert.Equal(t, "family", tariffCode)
}
