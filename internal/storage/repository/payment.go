package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/vpn-billing/internal/models"
)

// CreatePayment добавляет запись истории платежей.
func (s *Storage) CreatePayment(ctx context.Context, payment models.Payment) error {
	const op = "repository.CreatePayment"

	query := `INSERT INTO payments (id, user_id, tariff_code, amount_stars, status,
	              invoice_token, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.DB.ExecContext(ctx, query,
		payment.ID, payment.UserID, payment.TariffCode, payment.AmountStars,
		payment.Status, payment.InvoiceToken, payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MarkPaymentSucceeded помечает платеж с данным токеном инвойса успешным.
func (s *Storage) MarkPaymentSucceeded(ctx context.Context, invoiceToken string) error {
	const op = "repository.MarkPaymentSucceeded"

	query := `UPDATE payments SET status = $1 WHERE invoice_token = $2`
	_, err := s.DB.ExecContext(ctx, query, models.PaymentStatusSucceeded, invoiceToken)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListPayments возвращает историю платежей пользователя, новые первыми.
func (s *Storage) ListPayments(ctx context.Context, userID int64) ([]*models.Payment, error) {
	const op = "repository.ListPayments"

	query := `SELECT id, user_id, tariff_code, amount_stars, status, invoice_token, created_at
	          FROM payments
	          WHERE user_id = $1
	          ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Payment
	for rows.Next() {
		var item models.Payment
		if err := rows.Scan(&item.ID, &item.UserID, &item.TariffCode, &item.AmountStars,
			&item.Status, &item.InvoiceToken, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
