// Package reminder реализует движок напоминаний о границах жизненного
// цикла подписки. Для каждой подписки по расписанию вычисляются абсолютные
// моменты срабатывания, на них ставятся одноразовые таймеры, и в момент
// срабатывания сообщение уходит во внешний канал доставки.
package reminder

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/magabrotheeeer/vpn-billing/internal/lib/sl"
	"github.com/magabrotheeeer/vpn-billing/internal/models"
)

// Notifier описывает внешний канал доставки уведомлений. Доставка
// best-effort: подтверждений движок не ждет и повторов не делает.
type Notifier interface {
	Notify(msg models.ReminderMessage) error
}

// Scheduler — движок напоминаний. Таблица задач защищена мьютексом:
// запись идет из контекста обработки запросов, чтение и удаление — из
// колбеков таймеров.
type Scheduler struct {
	schedule []models.ScheduleEntry
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	running bool
	jobs    map[string]*job
}

type job struct {
	timer  *time.Timer
	fireAt time.Time
	msg    models.ReminderMessage
}

// New создает остановленный движок с заданным расписанием и каналом
// доставки. Движок запускается явно через Start либо автоматически при
// первом Schedule.
func New(schedule []models.ScheduleEntry, notifier Notifier, log *slog.Logger) *Scheduler {
	return &Scheduler{
		schedule: schedule,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		jobs:     make(map[string]*job),
	}
}

// Start переводит движок в состояние Running. Повторный вызов — no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.log.Info("reminder scheduler started")
}

// Stop останавливает движок: все ожидающие таймеры снимаются, новые
// срабатывания невозможны. Уже запущенные доставки не отзываются.
// Повторный вызов — no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	for id, j := range s.jobs {
		j.timer.Stop()
		delete(s.jobs, id)
	}
	s.log.Info("reminder scheduler stopped")
}

// Schedule регистрирует задачи напоминаний для подписки. Вызов идемпотентен:
// повторная регистрация того же состояния подписки заменяет одноименные
// задачи, а не дублирует их. Перед регистрацией снимаются все ранее
// поставленные задачи этой пары (пользователь, тариф), поэтому после
// продления устаревшие напоминания не срабатывают. Остановленный движок
// запускается автоматически, чтобы забытый Start не терял напоминания.
// Вызов не блокируется на доставке.
func (s *Scheduler) Schedule(sub models.Subscription) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		s.running = true
		s.log.Info("reminder scheduler auto-started on first schedule call")
	}

	if cancelled := s.cancelLocked(jobPrefix(sub.UserID, sub.TariffCode)); cancelled > 0 {
		s.log.Debug("cancelled stale reminder jobs",
			slog.Int64("user_id", sub.UserID), slog.Int("count", cancelled))
	}

	for _, entry := range s.schedule {
		phaseEnd := sub.ActiveUntil
		if entry.Phase == models.PhaseGrace {
			phaseEnd = sub.GraceUntil
		}
		fireAt := phaseEnd.Add(-time.Duration(entry.TriggerHoursBeforeEnd) * time.Hour)

		// Прошедшие моменты пропускаются, задним числом ничего не шлем.
		if !fireAt.After(now) {
			remindersSkipped.Inc()
			continue
		}

		id := jobID(sub.UserID, sub.TariffCode, entry.Phase, entry.TriggerHoursBeforeEnd, fireAt)
		if old, ok := s.jobs[id]; ok {
			old.timer.Stop()
			remindersReplaced.Inc()
		}

		j := &job{
			fireAt: fireAt,
			msg: models.ReminderMessage{
				UserID:                sub.UserID,
				Phase:                 entry.Phase,
				TriggerHoursBeforeEnd: entry.TriggerHoursBeforeEnd,
				Message:               entry.Message,
			},
		}
		j.timer = time.AfterFunc(fireAt.Sub(now), func() { s.fire(id) })
		s.jobs[id] = j
		remindersScheduled.Inc()
	}
}

// fire выполняется из колбека таймера. Задача удаляется из таблицы под
// мьютексом: замененная или снятая задача сюда уже не попадает, а после
// Stop срабатывания невозможны. Доставка идет вне блокировки.
func (s *Scheduler) fire(id string) {
	s.mu.Lock()
	j, ok := s.jobs[id]
	if !ok || !s.running {
		s.mu.Unlock()
		return
	}
	delete(s.jobs, id)
	s.mu.Unlock()

	if err := s.notifier.Notify(j.msg); err != nil {
		// Неудачная доставка только логируется, остальные задачи не трогаем.
		deliveryFailures.Inc()
		s.log.Error("failed to deliver reminder",
			slog.Int64("user_id", j.msg.UserID),
			slog.String("phase", string(j.msg.Phase)),
			sl.Err(err))
		return
	}
	remindersFired.Inc()
	s.log.Info("reminder delivered",
		slog.Int64("user_id", j.msg.UserID),
		slog.String("phase", string(j.msg.Phase)),
		slog.Int("hours_before_end", j.msg.TriggerHoursBeforeEnd))
}

func (s *Scheduler) cancelLocked(prefix string) int {
	cancelled := 0
	for id, j := range s.jobs {
		if strings.HasPrefix(id, prefix) {
			j.timer.Stop()
			delete(s.jobs, id)
			cancelled++
		}
	}
	return cancelled
}

// PendingJobs возвращает число ожидающих задач.
func (s *Scheduler) PendingJobs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

func jobID(userID int64, tariffCode string, phase models.Phase, hoursBeforeEnd int, fireAt time.Time) string {
	return fmt.Sprintf("notify-%d-%s-%s-%d-%d", userID, tariffCode, phase, hoursBeforeEnd, fireAt.Unix())
}

func jobPrefix(userID int64, tariffCode string) string {
	return fmt.Sprintf("notify-%d-%s-", userID, tariffCode)
}
