package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EXAM_BASE_PATH", "")
	t.Setenv("WIDGET_CACHE_TTL_SECONDS", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, "/student/exams", cfg.ExamBasePath)
	assert.Equal(t, 15*time.Second, cfg.WidgetCacheTTL)
	assert.Nil(t, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EXAM_BASE_PATH", "/courses/exams/")
	t.Setenv("WIDGET_CACHE_TTL_SECONDS", "30")
	t.Setenv("WIDGET_RATE_LIMIT_PER_MINUTE", "nope")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("DEFAULT_LOCALE", "id")

	cfg := Load()

	assert.Equal(t, "/courses/exams", cfg.ExamBasePath)
	assert.Equal(t, 30*time.Second, cfg.WidgetCacheTTL)
	assert.Equal(t, 60, cfg.WidgetRateLimit, "invalid ints fall back to the default")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "id", cfg.DefaultLocale)
}

func TestTimerWidgetContextKey(t *testing.T) {
	assert.Equal(t, "student:7:exam:abc:timer_widget", CacheKey.TimerWidgetContextKey("abc", 7))
	assert.Equal(t, "login:7", CacheKey.StudentSessionKey(7))
}
