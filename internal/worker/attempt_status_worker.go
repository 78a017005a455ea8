package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-proctor/internal/config"
)

// ContextInvalidator drops a cached widget display context.
type ContextInvalidator interface {
	InvalidateDisplayContext(ctx context.Context, examID uuid.UUID, studentID int) error
}

// AttemptStatusWorker consumes attempt_status_events_queue and invalidates the
// cached timer widget context of every attempt that changed status, so the next
// mount shows or hides the End My Exam button accordingly.
type AttemptStatusWorker struct {
	rdb         *redis.Client
	invalidator ContextInvalidator
	queue       string
	retryDelay  time.Duration
	log         zerolog.Logger
}

// NewAttemptStatusWorker creates a new AttemptStatusWorker.
func NewAttemptStatusWorker(rdb *redis.Client, invalidator ContextInvalidator, log zerolog.Logger) *AttemptStatusWorker {
	return &AttemptStatusWorker{
		rdb:         rdb,
		invalidator: invalidator,
		queue:       config.WorkerKey.AttemptStatusQueue,
		retryDelay:  5 * time.Second,
		log:         log.With().Str("component", "attempt_status_worker").Logger(),
	}
}

type attemptStatusEvent struct {
	ExamID    string `json:"exam_id"`
	StudentID int    `json:"student_id"`
	Status    string `json:"status"`
}

var errBadEvent = errors.New("bad attempt status event")

// Start begins the infinite worker loop. Call in a goroutine.
func (w *AttemptStatusWorker) Start(ctx context.Context) {
	w.log.Info().Str("queue", w.queue).Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *AttemptStatusWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, w.queue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	err = w.handle(ctx, result[1])
	switch {
	case err == nil:
	case errors.Is(err, errBadEvent):
		// Redelivery cannot fix a malformed event.
		w.log.Error().Err(err).Str("payload", result[1]).Msg("Dropping event")
	default:
		w.log.Error().Err(err).Msg("Invalidate error, retrying")
		if err := w.rdb.RPush(context.WithoutCancel(ctx), w.queue, result[1]).Err(); err != nil {
			w.log.Error().Err(err).Msg("Requeue error")
		}
		select {
		case <-ctx.Done():
		case <-time.After(w.retryDelay):
		}
	}
}

func (w *AttemptStatusWorker) handle(ctx context.Context, raw string) error {
	var ev attemptStatusEvent
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return fmt.Errorf("%w: %v", errBadEvent, err)
	}

	examID, err := uuid.Parse(ev.ExamID)
	if err != nil {
		return fmt.Errorf("%w: exam_id: %v", errBadEvent, err)
	}
	if ev.StudentID <= 0 {
		return fmt.Errorf("%w: student_id %d", errBadEvent, ev.StudentID)
	}

	if err := w.invalidator.InvalidateDisplayContext(ctx, examID, ev.StudentID); err != nil {
		return err
	}

	w.log.Debug().
		Str("exam_id", ev.ExamID).
		Int("student_id", ev.StudentID).
		Str("status", ev.Status).
		Msg("Timer widget context invalidated")
	return nil
}
