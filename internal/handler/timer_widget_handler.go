package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-proctor/internal/i18n"
	"github.com/stemsi/exstem-proctor/internal/middleware"
	"github.com/stemsi/exstem-proctor/internal/model"
	"github.com/stemsi/exstem-proctor/internal/response"
	"github.com/stemsi/exstem-proctor/internal/service"
	"github.com/stemsi/exstem-proctor/internal/validator"
	"github.com/stemsi/exstem-proctor/internal/widget"
)

// TimerWidgetService is what the handler needs from service.TimerWidgetService.
type TimerWidgetService interface {
	DisplayContext(ctx context.Context, examID uuid.UUID, studentID int) (*widget.ExamDisplayContext, error)
	RenderWidget(ctx context.Context, examID uuid.UUID, studentID int, locales []string) (*service.RenderedWidget, error)
	InvalidateDisplayContext(ctx context.Context, examID uuid.UUID, studentID int) error
}

// TimerWidgetHandler serves the proctored exam timer widget.
type TimerWidgetHandler struct {
	widgets TimerWidgetService
	log     zerolog.Logger
}

// NewTimerWidgetHandler creates a new TimerWidgetHandler.
func NewTimerWidgetHandler(widgets TimerWidgetService, log zerolog.Logger) *TimerWidgetHandler {
	return &TimerWidgetHandler{widgets: widgets, log: log}
}

// TimerWidgetContext is the payload of GetTimerWidgetContext.
type TimerWidgetContext struct {
	Context *widget.ExamDisplayContext `json:"context"`
	Hooks   widget.Hooks               `json:"hooks"`
}

// GetTimerWidget godoc
// GET /api/v1/student/exams/:exam_id/timer-widget
// Returns the timer widget as an HTML fragment in the requested locale
// (?locale=, then Accept-Language).
func (h *TimerWidgetHandler) GetTimerWidget(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	locales := i18n.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
	if req.query.Locale != "" {
		locales = append([]string{req.query.Locale}, locales...)
	}

	rendered, err := h.widgets.RenderWidget(c.Request.Context(), req.examID, req.studentID, locales)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Language", rendered.Locale)
	response.HTML(c, http.StatusOK, string(rendered.HTML))
}

// GetTimerWidgetContext godoc
// GET /api/v1/student/exams/:exam_id/timer-widget/context
// Returns the display context and DOM hooks for hosts that render the widget themselves.
func (h *TimerWidgetHandler) GetTimerWidgetContext(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	dc, err := h.widgets.DisplayContext(c.Request.Context(), req.examID, req.studentID)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, TimerWidgetContext{Context: dc, Hooks: widget.DOMHooks})
}

// InvalidateTimerWidgetContext godoc
// DELETE /api/v1/student/exams/:exam_id/timer-widget/context
// Drops the cached display context so the next render reads the current attempt status.
func (h *TimerWidgetHandler) InvalidateTimerWidgetContext(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	if err := h.widgets.InvalidateDisplayContext(c.Request.Context(), req.examID, req.studentID); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type widgetRequest struct {
	examID    uuid.UUID
	studentID int
	query     model.TimerWidgetQuery
}

func (h *TimerWidgetHandler) bindRequest(c *gin.Context) (widgetRequest, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return widgetRequest{}, false
	}

	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return widgetRequest{}, false
	}

	req := widgetRequest{examID: examID, studentID: claims.UserID}
	if fields := validator.BindQuery(c, &req.query); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return widgetRequest{}, false
	}

	return req, true
}

func (h *TimerWidgetHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrAttemptNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrAttemptNotFound)
		return
	}

	h.log.Error().Err(err).
		Str("path", c.FullPath()).
		Str("exam_id", c.Param("exam_id")).
		Msg("Timer widget request failed")
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
