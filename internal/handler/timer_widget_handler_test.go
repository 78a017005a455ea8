package handler

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/exstem-proctor/internal/middleware"
	"github.com/stemsi/exstem-proctor/internal/service"
	"github.com/stemsi/exstem-proctor/internal/validator"
	"github.com/stemsi/exstem-proctor/internal/widget"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.Setup()
	os.Exit(m.Run())
}

type fakeWidgets struct {
	err         error
	gotLocales  []string
	gotExam     uuid.UUID
	gotStudent  int
	invalidated bool
}

func (f *fakeWidgets) DisplayContext(_ context.Context, examID uuid.UUID, studentID int) (*widget.ExamDisplayContext, error) {
	f.gotExam, f.gotStudent = examID, studentID
	if f.err != nil {
		return nil, f.err
	}
	return &widget.ExamDisplayContext{ExamURLPath: "/exam/42", ExamDisplayName: "Midterm", AttemptStatus: "started"}, nil
}

func (f *fakeWidgets) RenderWidget(_ context.Context, examID uuid.UUID, studentID int, locales []string) (*service.RenderedWidget, error) {
	f.gotExam, f.gotStudent, f.gotLocales = examID, studentID, locales
	if f.err != nil {
		return nil, f.err
	}
	return &service.RenderedWidget{HTML: template.HTML(`<div id="exam-timer"></div>`), Locale: "id"}, nil
}

func (f *fakeWidgets) InvalidateDisplayContext(_ context.Context, examID uuid.UUID, studentID int) error {
	f.gotExam, f.gotStudent = examID, studentID
	f.invalidated = f.err == nil
	return f.err
}

func newEngine(widgets *fakeWidgets, withClaims bool) *gin.Engine {
	h := NewTimerWidgetHandler(widgets, zerolog.Nop())

	r := gin.New()
	if withClaims {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextKeyClaims, &service.Claims{TokenType: service.TokenTypeStudent, UserID: 7})
			c.Next()
		})
	}
	r.GET("/exams/:exam_id/timer-widget", h.GetTimerWidget)
	r.GET("/exams/:exam_id/timer-widget/context", h.GetTimerWidgetContext)
	r.DELETE("/exams/:exam_id/timer-widget/context", h.InvalidateTimerWidgetContext)
	return r
}

func do(r *gin.Engine, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestGetTimerWidget(t *testing.T) {
	widgets := &fakeWidgets{}
	examID := uuid.New()

	w := do(newEngine(widgets, true), http.MethodGet, "/exams/"+examID.String()+"/timer-widget?locale=id",
		map[string]string{"Accept-Language": "en-US,en;q=0.9"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "id", w.Header().Get("Content-Language"))
	assert.Equal(t, `<div id="exam-timer"></div>`, w.Body.String())

	assert.Equal(t, examID, widgets.gotExam)
	assert.Equal(t, 7, widgets.gotStudent)
	assert.Equal(t, []string{"id", "en-US", "en"}, widgets.gotLocales)
}

func TestGetTimerWidgetErrors(t *testing.T) {
	examPath := "/exams/" + uuid.NewString() + "/timer-widget"

	tests := []struct {
		name       string
		err        error
		withClaims bool
		target     string
		status     int
		code       string
	}{
		{name: "no claims", target: examPath, status: http.StatusUnauthorized, code: "TOKEN_REQUIRED"},
		{name: "bad id", withClaims: true, target: "/exams/42/timer-widget", status: http.StatusBadRequest, code: "INVALID_ID"},
		{name: "bad locale", withClaims: true, target: examPath + "?locale=not_a_locale!", status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "no attempt", withClaims: true, err: service.ErrAttemptNotFound, target: examPath, status: http.StatusNotFound, code: "ATTEMPT_NOT_FOUND"},
		{name: "internal", withClaims: true, err: errors.New("boom"), target: examPath, status: http.StatusInternalServerError, code: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newEngine(&fakeWidgets{err: tt.err}, tt.withClaims), http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}

func TestGetTimerWidgetContext(t *testing.T) {
	examID := uuid.New()
	w := do(newEngine(&fakeWidgets{}, true), http.MethodGet, "/exams/"+examID.String()+"/timer-widget/context", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data TimerWidgetContext `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "/exam/42", body.Data.Context.ExamURLPath)
	assert.Equal(t, "Midterm", body.Data.Context.ExamDisplayName)
	assert.Equal(t, widget.DOMHooks, body.Data.Hooks)
}

func TestInvalidateTimerWidgetContext(t *testing.T) {
	widgets := &fakeWidgets{}
	examID := uuid.New()

	w := do(newEngine(widgets, true), http.MethodDelete, "/exams/"+examID.String()+"/timer-widget/context", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, widgets.invalidated)
	assert.Equal(t, examID, widgets.gotExam)
}
