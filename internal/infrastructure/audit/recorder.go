package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mihrabhq/backend/internal/domain/audit"
	"github.com/mihrabhq/backend/internal/infrastructure/config"
)

// AsyncRecorder writes activity log entries from a background goroutine so
// audit persistence never blocks or fails the primary operation. Entries are
// dropped when the buffer is full.
type AsyncRecorder struct {
	logRepo audit.ActivityLogRepository
	entries chan audit.Entry
	done    chan struct{}
	timeout time.Duration
	logger  *zap.Logger
}

var _ audit.Recorder = (*AsyncRecorder)(nil)

// NewAsyncRecorder creates the recorder and starts its writer goroutine.
func NewAsyncRecorder(logRepo audit.ActivityLogRepository, cfg config.AuditConfig, logger *zap.Logger) *AsyncRecorder {
	r := &AsyncRecorder{
		logRepo: logRepo,
		entries: make(chan audit.Entry, cfg.BufferSize),
		done:    make(chan struct{}),
		timeout: cfg.FlushTimeout,
		logger:  logger,
	}
	go r.run()
	return r
}

// Record queues one entry. It never blocks; on a full buffer the entry is
// dropped and a warning is logged.
func (r *AsyncRecorder) Record(entry audit.Entry) {
	select {
	case r.entries <- entry:
	default:
		r.logger.Warn("Audit buffer full, dropping entry",
			zap.String("action", string(entry.Action)),
			zap.String("object_type", entry.ObjectType))
	}
}

// Close stops accepting entries and flushes the remaining buffer, bounded by
// the configured flush timeout.
func (r *AsyncRecorder) Close() {
	close(r.entries)
	select {
	case <-r.done:
	case <-time.After(r.timeout):
		r.logger.Warn("Audit flush timed out on shutdown")
	}
}

func (r *AsyncRecorder) run() {
	defer close(r.done)
	for entry := range r.entries {
		r.write(entry)
	}
}

func (r *AsyncRecorder) write(entry audit.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	log := audit.NewActivityLog(entry)
	if err := r.logRepo.Save(ctx, log); err != nil {
		r.logger.Error("Failed to persist activity log",
			zap.String("action", string(entry.Action)),
			zap.String("object_type", entry.ObjectType),
			zap.Error(err))
	}
}
