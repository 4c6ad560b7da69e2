// Package models содержит доменные структуры биллинга: тарифы, правила
// тарификации, подписку с её жизненным циклом и расписание напоминаний.
package models

// Tariff представляет тарифный план VPN-сервиса.
// Структура неизменяема после загрузки каталога.
type Tariff struct {
	Code           string `json:"code"`                      // Уникальный код тарифа
	Name           string `json:"name"`                      // Отображаемое название
	PriceStars     int    `json:"price_stars"`               // Цена в Telegram Stars
	DurationDays   int    `json:"duration_days"`             // Срок действия в днях
	SpeedLimitMbps *int   `json:"speed_limit_mbps,omitempty"` // Ограничение скорости, nil — без лимита
	Devices        int    `json:"devices"`                   // Максимум одновременных устройств
	Nodes          int    `json:"nodes"`                     // Доступное число серверных нод
	SmartDNS       bool   `json:"smartdns"`                  // Доступ к SmartDNS
}

// Rules задает общие правила тарификации: длительность пробного периода,
// длительность grace-периода и скорость на время grace.
// Значения неизменны на протяжении работы процесса.
type Rules struct {
	TrialDays      int `yaml:"trial_days" json:"trial_days"`
	GraceDays      int `yaml:"grace_days" json:"grace_days"`
	GraceSpeedMbps int `yaml:"grace_speed_mbps" json:"grace_speed_mbps"`
}

// DefaultRules возвращает правила тарификации по умолчанию.
func DefaultRules() Rules {
	return Rules{
		TrialDays:      7,
		GraceDays:      3,
		GraceSpeedMbps: 10,
	}
}
