package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-proctor/internal/config"
	"github.com/stemsi/exstem-proctor/internal/i18n"
	"github.com/stemsi/exstem-proctor/internal/model"
	"github.com/stemsi/exstem-proctor/internal/widget"
)

// ErrAttemptNotFound is returned when the student has no attempt for the exam.
var ErrAttemptNotFound = errors.New("exam attempt not found")

// AttemptReader loads the exam attempt shown by the widget.
type AttemptReader interface {
	GetView(ctx context.Context, examID uuid.UUID, studentID int) (*model.ExamAttemptView, error)
}

// ContextCache stores display contexts between renders.
// Get returns (nil, nil) on a miss.
type ContextCache interface {
	Get(ctx context.Context, key string) (*widget.ExamDisplayContext, error)
	Set(ctx context.Context, key string, c widget.ExamDisplayContext, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisContextCache is a ContextCache backed by Redis JSON values.
type RedisContextCache struct {
	rdb *redis.Client
}

// NewRedisContextCache creates a new RedisContextCache.
func NewRedisContextCache(rdb *redis.Client) *RedisContextCache {
	return &RedisContextCache{rdb: rdb}
}

func (r *RedisContextCache) Get(ctx context.Context, key string) (*widget.ExamDisplayContext, error) {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var c widget.ExamDisplayContext
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode cached context: %w", err)
	}
	return &c, nil
}

func (r *RedisContextCache) Set(ctx context.Context, key string, c widget.ExamDisplayContext, ttl time.Duration) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, key, raw, ttl).Err()
}

func (r *RedisContextCache) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

// RenderedWidget is a rendered timer fragment and the locale it was rendered in.
type RenderedWidget struct {
	HTML   template.HTML
	Locale string
}

// TimerWidgetService builds display contexts from exam attempts and renders
// the timer widget.
type TimerWidgetService struct {
	attempts AttemptReader
	cache    ContextCache
	bundle   *i18n.Bundle
	cfg      *config.Config
	log      zerolog.Logger
}

// NewTimerWidgetService creates a new TimerWidgetService. cache may be nil.
func NewTimerWidgetService(
	attempts AttemptReader,
	cache ContextCache,
	bundle *i18n.Bundle,
	cfg *config.Config,
	log zerolog.Logger,
) *TimerWidgetService {
	return &TimerWidgetService{
		attempts: attempts,
		cache:    cache,
		bundle:   bundle,
		cfg:      cfg,
		log:      log,
	}
}

// DisplayContext returns the widget input for a student's attempt.
// Cache failures are logged and bypassed.
func (s *TimerWidgetService) DisplayContext(ctx context.Context, examID uuid.UUID, studentID int) (*widget.ExamDisplayContext, error) {
	key := config.CacheKey.TimerWidgetContextKey(examID.String(), studentID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("key", key).Msg("Timer widget cache read failed")
		case cached != nil:
			return cached, nil
		}
	}

	view, err := s.attempts.GetView(ctx, examID, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("get attempt view: %w", err)
	}

	dc := s.toDisplayContext(view)

	if s.cache != nil && s.cfg.WidgetCacheTTL > 0 {
		if err := s.cache.Set(ctx, key, dc, s.cfg.WidgetCacheTTL); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("Timer widget cache write failed")
		}
	}

	return &dc, nil
}

// RenderWidget renders the timer fragment for a student's attempt in the first
// supported locale among locales.
func (s *TimerWidgetService) RenderWidget(ctx context.Context, examID uuid.UUID, studentID int, locales []string) (*RenderedWidget, error) {
	dc, err := s.DisplayContext(ctx, examID, studentID)
	if err != nil {
		return nil, err
	}

	tr := s.bundle.Translator(locales...)
	out, err := widget.Render(tr, *dc)
	if err != nil {
		return nil, fmt.Errorf("render timer widget: %w", err)
	}

	s.log.Debug().
		Str("exam_id", examID.String()).
		Int("student_id", studentID).
		Str("locale", tr.Locale()).
		Str("attempt_status", dc.AttemptStatus).
		Msg("Timer widget rendered")

	return &RenderedWidget{HTML: out, Locale: tr.Locale()}, nil
}

// InvalidateDisplayContext drops the cached context, typically after the
// platform moved the attempt to another status.
func (s *TimerWidgetService) InvalidateDisplayContext(ctx context.Context, examID uuid.UUID, studentID int) error {
	if s.cache == nil {
		return nil
	}
	key := config.CacheKey.TimerWidgetContextKey(examID.String(), studentID)
	if err := s.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("invalidate timer widget context: %w", err)
	}
	return nil
}

func (s *TimerWidgetService) toDisplayContext(v *model.ExamAttemptView) widget.ExamDisplayContext {
	urlPath := strings.TrimSpace(v.URLPath)
	if urlPath == "" {
		urlPath = s.cfg.ExamBasePath + "/" + v.ExamID.String()
	}

	var examType string
	if v.ExamType != nil {
		examType = *v.ExamType
	}

	return widget.ExamDisplayContext{
		ExamURLPath:     urlPath,
		ExamDisplayName: v.Title,
		ExamType:        examType,
		AttemptStatus:   string(v.Status),
	}
}
