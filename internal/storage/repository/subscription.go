package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/vpn-billing/internal/models"
)

// UpsertSubscription сохраняет подписку пользователя. Существующая запись
// заменяется целиком — актуальна всегда последняя (last-write-wins),
// атомарность по ключу обеспечивает сама СУБД.
func (s *Storage) UpsertSubscription(ctx context.Context, sub models.Subscription) error {
	const op = "repository.UpsertSubscription"

	query := `INSERT INTO subscriptions (user_id, tariff_code, active_until, grace_until,
	              speed_limit_mbps, grace_speed_mbps)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (user_id) DO UPDATE SET
	              tariff_code = EXCLUDED.tariff_code,
	              active_until = EXCLUDED.active_until,
	              grace_until = EXCLUDED.grace_until,
	              speed_limit_mbps = EXCLUDED.speed_limit_mbps,
	              grace_speed_mbps = EXCLUDED.grace_speed_mbps`
	_, err := s.DB.ExecContext(ctx, query,
		sub.UserID, sub.TariffCode, sub.ActiveUntil, sub.GraceUntil,
		sub.SpeedLimitMbps, sub.GraceSpeedMbps)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSubscription возвращает текущую подписку пользователя.
func (s *Storage) GetSubscription(ctx context.Context, userID int64) (*models.Subscription, error) {
	const op = "repository.GetSubscription"

	query := `SELECT user_id, tariff_code, active_until, grace_until,
	              speed_limit_mbps, grace_speed_mbps
	          FROM subscriptions WHERE user_id = $1`
	row := s.DB.QueryRowContext(ctx, query, userID)

	var result models.Subscription
	err := row.Scan(&result.UserID, &result.TariffCode, &result.ActiveUntil,
		&result.GraceUntil, &result.SpeedLimitMbps, &result.GraceSpeedMbps)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ExtendSubscription продлевает подписку на days дней одним атомарным
// UPDATE: обе границы сдвигаются от прежних значений, поэтому зазор между
// ними сохраняется, а конкурентные продления не теряют друг друга.
func (s *Storage) ExtendSubscription(ctx context.Context, userID int64, days int) (*models.Subscription, error) {
	const op = "repository.ExtendSubscription"

	query := `UPDATE subscriptions
	          SET active_until = active_until + make_interval(days => $2),
	              grace_until = grace_until + make_interval(days => $2)
	          WHERE user_id = $1
	          RETURNING user_id, tariff_code, active_until, grace_until,
	              speed_limit_mbps, grace_speed_mbps`
	row := s.DB.QueryRowContext(ctx, query, userID, days)

	var result models.Subscription
	err := row.Scan(&result.UserID, &result.TariffCode, &result.ActiveUntil,
		&result.GraceUntil, &result.SpeedLimitMbps, &result.GraceSpeedMbps)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
