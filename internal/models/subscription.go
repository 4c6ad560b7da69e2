package models

import "time"

// Phase описывает производную фазу жизненного цикла подписки.
// Фаза не хранится, а вычисляется из текущего времени.
type Phase string

const (
	// PhaseActive — полный доступ, текущее время раньше ActiveUntil.
	PhaseActive Phase = "active"
	// PhaseGrace — льготный период с урезанной скоростью.
	PhaseGrace Phase = "grace"
	// PhaseExpired — доступ закончился, продление всё ещё возможно.
	PhaseExpired Phase = "expired"
)

// TrialTariffCode — код тарифа пробного периода.
const TrialTariffCode = "trial"

// Subscription представляет текущую подписку пользователя.
// На одного пользователя существует ровно одна актуальная запись,
// повторное оформление заменяет предыдущую.
type Subscription struct {
	UserID         int64     `json:"user_id"`
	TariffCode     string    `json:"tariff_code"`
	ActiveUntil    time.Time `json:"active_until"`
	GraceUntil     time.Time `json:"grace_until"`
	SpeedLimitMbps *int      `json:"speed_limit_mbps,omitempty"`
	GraceSpeedMbps *int      `json:"grace_speed_mbps,omitempty"`
}

// NewSubscription создает подписку по тарифу с отсчетом от now.
// GraceUntil всегда отстоит от ActiveUntil ровно на rules.GraceDays.
func NewSubscription(userID int64, tariff Tariff, now time.Time, rules Rules) Subscription {
	activeUntil := now.AddDate(0, 0, tariff.DurationDays)
	graceSpeed := rules.GraceSpeedMbps
	return Subscription{
		UserID:         userID,
		TariffCode:     tariff.Code,
		ActiveUntil:    activeUntil,
		GraceUntil:     activeUntil.AddDate(0, 0, rules.GraceDays),
		SpeedLimitMbps: tariff.SpeedLimitMbps,
		GraceSpeedMbps: &graceSpeed,
	}
}

// NewTrialSubscription создает пробную подписку на rules.TrialDays дней
// без ограничения скорости в активной фазе.
func NewTrialSubscription(userID int64, now time.Time, rules Rules) Subscription {
	activeUntil := now.AddDate(0, 0, rules.TrialDays)
	graceSpeed := rules.GraceSpeedMbps
	return Subscription{
		UserID:         userID,
		TariffCode:     TrialTariffCode,
		ActiveUntil:    activeUntil,
		GraceUntil:     activeUntil.AddDate(0, 0, rules.GraceDays),
		GraceSpeedMbps: &graceSpeed,
	}
}

// Extended возвращает копию подписки, продлённую на days дней.
// Продление отсчитывается от прежнего ActiveUntil, а не от текущего
// момента: пользователь, продлившийся с опозданием, не теряет
// неиспользованное время. Зазор между GraceUntil и ActiveUntil сохраняется.
func (s Subscription) Extended(days int) Subscription {
	s.ActiveUntil = s.ActiveUntil.AddDate(0, 0, days)
	s.GraceUntil = s.GraceUntil.AddDate(0, 0, days)
	return s
}

// PhaseAt возвращает фазу подписки на момент now.
// Границы: ActiveUntil принадлежит grace, GraceUntil принадлежит expired.
func (s Subscription) PhaseAt(now time.Time) Phase {
	switch {
	case now.Before(s.ActiveUntil):
		return PhaseActive
	case now.Before(s.GraceUntil):
		return PhaseGrace
	default:
		return PhaseExpired
	}
}

// EffectiveSpeedCapAt возвращает действующее ограничение скорости на момент
// now: тарифное в активной фазе, grace-скорость в льготной, nil после
// истечения (доступа нет, ограничивать нечего).
func (s Subscription) EffectiveSpeedCapAt(now time.Time) *int {
	switch s.PhaseAt(now) {
	case PhaseActive:
		return s.SpeedLimitMbps
	case PhaseGrace:
		return s.GraceSpeedMbps
	default:
		return nil
	}
}
