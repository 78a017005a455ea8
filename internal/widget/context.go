// Package widget renders the proctored exam timer fragment.
//
// The fragment is static once mounted. A client-side controller looks up the
// hooks listed in DOMHooks to run the countdown, swap the toggle labels and
// submit the exam; none of that happens here.
package widget

// StatusReadyToSubmit is the only attempt status the widget distinguishes.
// Attempts in this status are not offered the End My Exam button.
const StatusReadyToSubmit = "ready_to_submit"

// ExamDisplayContext is the input of a single render.
type ExamDisplayContext struct {
	ExamURLPath     string `json:"exam_url_path"`
	ExamDisplayName string `json:"exam_display_name"`
	// ExamType is optional. Empty renders the localized "timed" label.
	ExamType      string `json:"exam_type,omitempty"`
	AttemptStatus string `json:"attempt_status"`
}

// ShowsEndExam reports whether the End My Exam button is rendered.
func (c ExamDisplayContext) ShowsEndExam() bool {
	return c.AttemptStatus != StatusReadyToSubmit
}

// Translator resolves a message key, replacing named placeholders with params.
type Translator interface {
	Resolve(key string, params map[string]string) string
}

// Message keys used by the fragment.
const (
	KeyDescription        = "exam_timer.description"
	KeyInstructionsTime   = "exam_timer.instructions_time"
	KeyInstructionsSubmit = "exam_timer.instructions_submit"
	KeyInstructionsLabel  = "exam_timer.instructions_label"
	KeyShowMore           = "exam_timer.show_more"
	KeyShowLess           = "exam_timer.show_less"
	KeyEndExam            = "exam_timer.end_exam"
	KeyTimed              = "exam_timer.timed"
	KeyHideTimer          = "exam_timer.hide_timer"
	KeyTimeRemaining      = "exam_timer.time_remaining_label"
)

// Placeholders of KeyDescription.
const (
	ParamExamLink = "exam_link"
	ParamExamType = "exam_type"
)
