package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/crm-gateway/internal/repository"
)

// ReminderWorker periodically scans for interactions whose reminder is due
// and logs them so operators can follow up. Terminal interactions are
// skipped.
type ReminderWorker struct {
	interactions repository.InteractionRepository
	agencies     repository.AgencyRepository
	logger       *zap.Logger
	interval     time.Duration
	stop         chan struct{}
	done         chan struct{}
}

// NewReminderWorker constructs the worker.
func NewReminderWorker(interactions repository.InteractionRepository, agencies repository.AgencyRepository, interval time.Duration, logger *zap.Logger) *ReminderWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderWorker{
		interactions: interactions,
		agencies:     agencies,
		logger:       logger,
		interval:     interval,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start launches the polling loop.
func (w *ReminderWorker) Start() {
	go w.run()
}

// Stop signals the loop to exit and waits for it.
func (w *ReminderWorker) Stop() {
	close(w.stop)
	<-w.done
}

func (w *ReminderWorker) run() {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *ReminderWorker) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	agencies, err := w.agencies.ListActive(ctx)
	if err != nil {
		w.logger.Warn("reminder scan: list agencies failed", zap.Error(err))
		return
	}

	now := time.Now()
	notTerminal := false
	for _, agency := range agencies {
		due, err := w.interactions.ListWithFilter(ctx, repository.InteractionFilter{
			AgencyID:   agency.ID,
			Terminal:   &notTerminal,
			ReminderTo: &now,
			Limit:      100,
		})
		if err != nil {
			w.logger.Warn("reminder scan failed",
				zap.String("agency_id", agency.ID),
				zap.Error(err))
			continue
		}
		for _, interaction := range due {
			w.logger.Info("reminder due",
				zap.String("agency_id", agency.ID),
				zap.String("interaction_id", interaction.ID),
				zap.String("subject", interaction.Subject),
				zap.Timep("reminder_at", interaction.ReminderAt))
		}
	}
}
