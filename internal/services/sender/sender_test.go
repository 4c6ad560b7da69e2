package sender

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/vpn-billing/internal/models"
)

type MessengerMock struct {
	mock.Mock
}

func (m *MessengerMock) Send(chatID int64, text string) error {
	args := m.Called(chatID, text)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSendReminder_Success(t *testing.T) {
	messenger := new(MessengerMock)
	svc := NewSenderService(messenger, discardLogger())

	msg := models.ReminderMessage{
		UserID:                42,
		Phase:                 models.PhaseActive,
		TriggerHoursBeforeEnd: 24,
		Message:               "Подписка заканчивается через 1 день",
	}
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	messenger.On("Send", int64(42), msg.Message).Return(nil)

	err = svc.SendReminder(body)
	require.NoError(t, err)
	messenger.AssertExpectations(t)
}

func TestSendReminder_InvalidJSON(t *testing.T) {
	messenger := new(MessengerMock)
	svc := NewSenderService(messenger, discardLogger())

	err := svc.SendReminder([]byte("not-json"))
	require.Error(t, err)
	messenger.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendReminder_InvalidPayload(t *testing.T) {
	messenger := new(MessengerMock)
	svc := NewSenderService(messenger, discardLogger())

	tests := []struct {
		name string
		msg  models.ReminderMessage
	}{
		{name: "zero user id", msg: models.ReminderMessage{Message: "text"}},
		{name: "empty message", msg: models.ReminderMessage{UserID: 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.msg)
			require.NoError(t, err)

			err = svc.SendReminder(body)
			assert.Error(t, err)
		})
	}
	messenger.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendReminder_DeliveryError(t *testing.T) {
	messenger := new(MessengerMock)
	svc := NewSenderService(messenger, discardLogger())

	msg := models.ReminderMessage{
		UserID:  42,
		Phase:   models.PhaseGrace,
		Message: "Последний шанс",
	}
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	messenger.On("Send", int64(42), msg.Message).Return(errors.New("telegram unavailable"))

	err = svc.SendReminder(body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram unavailable")
}
