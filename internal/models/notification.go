package models

// ScheduleEntry задает одно правило напоминания: за сколько часов до конца
// какой фазы отправить сообщение. Полный список правил загружается при
// старте и одинаков для всех подписок.
type ScheduleEntry struct {
	Phase                 Phase  `yaml:"phase" json:"phase" validate:"required"`
	TriggerHoursBeforeEnd int    `yaml:"trigger_hours_before_end" json:"trigger_hours_before_end" validate:"gte=0"`
	Message               string `yaml:"message" json:"message" validate:"required"`
}

// DefaultSchedule возвращает расписание напоминаний по умолчанию.
func DefaultSchedule() []ScheduleEntry {
	return []ScheduleEntry{
		{Phase: PhaseActive, TriggerHoursBeforeEnd: 72, Message: "Продлите со скидкой 15%"},
		{Phase: PhaseActive, TriggerHoursBeforeEnd: 24, Message: "Подписка заканчивается завтра"},
		{Phase: PhaseActive, TriggerHoursBeforeEnd: 0, Message: "Подписка закончилась, у вас 3 дня grace со скоростью до 10 Мбит/с"},
		{Phase: PhaseGrace, TriggerHoursBeforeEnd: 0, Message: "Последний шанс — продлите подписку и получите +3 дня в подарок"},
	}
}

// ReminderMessage — полезная нагрузка напоминания, публикуемая в очередь
// уведомлений и доставляемая пользователю воркером-отправителем.
type ReminderMessage struct {
	UserID                int64  `json:"user_id"`
	Phase                 Phase  `json:"phase"`
	TriggerHoursBeforeEnd int    `json:"trigger_hours_before_end"`
	Message               string `json:"message"`
}
