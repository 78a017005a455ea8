package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey returns the cache key holding the JTI of a student's active login.
// The key is written by the exam platform at login time.
func (r *CacheKeyStruct) StudentSessionKey(studentID int) string {
	return fmt.Sprintf("login:%d", studentID)
}

// TimerWidgetContextKey returns the cache key for a student's timer widget display context
func (r *CacheKeyStruct) TimerWidgetContextKey(examID string, studentID int) string {
	return fmt.Sprintf("student:%d:exam:%s:timer_widget", studentID, examID)
}

var CacheKey = NewCacheKeyStruct()
