// Package notify implements the business-event counter sink. Counts are kept
// in process and mirrored to the log; failures are swallowed so the primary
// operation never pays for a broken sink.
package notify

import (
	"log/slog"
	"sync/atomic"

	"cabin-reserve/internal/domain/reservation"
)

type CounterSink struct {
	logger *slog.Logger

	created     atomic.Int64
	cancelled   atomic.Int64
	transitions atomic.Int64
	scheduler   atomic.Int64
}

func NewCounterSink(logger *slog.Logger) *CounterSink {
	return &CounterSink{logger: logger}
}

func (s *CounterSink) IncrementCreated() {
	s.created.Add(1)
	s.log("reservation created", "reservations_created_total", s.created.Load())
}

func (s *CounterSink) IncrementCancelled() {
	s.cancelled.Add(1)
	s.log("reservation cancelled", "reservations_cancelled_total", s.cancelled.Load())
}

func (s *CounterSink) IncrementStatusTransition(from, to reservation.Status) {
	s.transitions.Add(1)
	if s.logger != nil {
		s.logger.Info("status transition",
			"from", from.String(), "to", to.String(),
			"status_transitions_total", s.transitions.Load())
	}
}

func (s *CounterSink) IncrementSchedulerTransition(kind string) {
	s.scheduler.Add(1)
	if s.logger != nil {
		s.logger.Info("scheduler transition",
			"kind", kind, "scheduler_transitions_total", s.scheduler.Load())
	}
}

func (s *CounterSink) log(msg, key string, value int64) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg, key, value)
}
