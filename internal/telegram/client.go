// Package telegram содержит тонкую обертку над Telegram Bot API
// для доставки напоминаний пользователям.
package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client отправляет сообщения через Telegram Bot API.
type Client struct {
	api *tgbotapi.BotAPI
}

// NewClient создает клиента по токену бота.
func NewClient(token string) (*Client, error) {
	const op = "telegram.NewClient"
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Client{api: api}, nil
}

// Send отправляет текстовое сообщение в чат пользователя.
// Идентификатор пользователя совпадает с идентификатором личного чата.
func (c *Client) Send(chatID int64, text string) error {
	const op = "telegram.Client.Send"
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
