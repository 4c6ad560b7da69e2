package models

import "time"

// Статусы платежа.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
)

// PaymentStatus — ответ на запрос начала оплаты. Токен инвойса кодирует
// намерение платежа и заменяет серверное хранение инвойса между началом
// и подтверждением оплаты.
type PaymentStatus struct {
	Status       string `json:"status"`
	AmountStars  int    `json:"amount_stars"`
	InvoiceToken string `json:"invoice_token"`
	RedirectURL  string `json:"redirect_url,omitempty"`
}

// Payment представляет запись истории платежей пользователя.
type Payment struct {
	ID           string    `json:"id"`
	UserID       int64     `json:"user_id"`
	TariffCode   string    `json:"tariff_code"`
	AmountStars  int       `json:"amount_stars"`
	Status       string    `json:"status"`
	InvoiceToken string    `json:"invoice_token"`
	CreatedAt    time.Time `json:"created_at"`
}

// StartPaymentRequest — входные данные запроса начала оплаты.
type StartPaymentRequest struct {
	UserID     int64  `json:"user_id" validate:"required,gte=0"`
	TariffCode string `json:"tariff_code" validate:"required"`
	Referral   string `json:"referral,omitempty"`
	PromoCode  string `json:"promo_code,omitempty"`
}
