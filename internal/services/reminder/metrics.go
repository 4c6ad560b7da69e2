package reminder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	remindersScheduled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminders_scheduled_total",
		Help: "Number of reminder jobs registered in the scheduler.",
	})
	remindersReplaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminders_replaced_total",
		Help: "Number of pending reminder jobs replaced by an identical id.",
	})
	remindersSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminders_skipped_total",
		Help: "Number of schedule entries skipped because their fire time had already passed.",
	})
	remindersFired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminders_fired_total",
		Help: "Number of reminders delivered to the notification channel.",
	})
	deliveryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminder_delivery_failures_total",
		Help: "Number of reminders that failed to deliver.",
	})
)
