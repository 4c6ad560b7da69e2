package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"tariffs": []string{"light"}})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("unknown tariff")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "unknown tariff", resp.Error)
}

func TestValidationError(t *testing.T) {
	type req struct {
		UserID     int64  `validate:"required,gt=0"`
		TariffCode string `validate:"required"`
	}

	err := validator.New().Struct(req{})
	require.Error(t, err)

	verrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)

	resp := ValidationError(verrs)
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "UserID")
	assert.Contains(t, resp.Error, "TariffCode")
	assert.Contains(t, resp.Error, "required")
}
