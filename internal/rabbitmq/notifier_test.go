package rabbitmq

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/vpn-billing/internal/models"
)

func TestNotifierPublishAndConsume(t *testing.T) {
	if os.Getenv("SKIP_RABBITMQ_TESTS") == SkipRabbitMQTestsEnv {
		t.Skip("Skipping RabbitMQ tests in CI")
	}

	ctx := context.Background()
	rmqContainer, cleanup := SetupRabbitMQContainer(ctx, t)
	defer cleanup()

	amqpURI, err := GetAmqpURI(ctx, rmqContainer)
	require.NoError(t, err)

	conn, err := Connect(amqpURI, 3, time.Second)
	require.NoError(t, err)
	defer func() {
		if err := conn.Close(); err != nil {
			t.Errorf("failed to close connection: %v", err)
		}
	}()

	ch, err := SetupChannel(conn, GetNotificationQueues())
	require.NoError(t, err)
	defer func() {
		if err := ch.Close(); err != nil {
			t.Errorf("failed to close channel: %v", err)
		}
	}()

	notifier := NewNotifier(ch)

	msg := models.ReminderMessage{
		UserID:                42,
		Phase:                 models.PhaseActive,
		TriggerHoursBeforeEnd: 72,
		Message:               "Подписка заканчивается через 3 дня",
	}
	err = notifier.Notify(msg)
	require.NoError(t, err)

	// Сообщение должно дойти до очереди воркера-отправителя.
	deliveries, err := ch.Consume(ReminderQueue, "test-consumer", true, false, false, false, nil)
	require.NoError(t, err)

	select {
	case d := <-deliveries:
		var got models.ReminderMessage
		err := json.Unmarshal(d.Body, &got)
		require.NoError(t, err)
		assert.Equal(t, msg, got)
		assert.Equal(t, "application/json", d.ContentType)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for reminder message")
	}
}
