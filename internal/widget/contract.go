package widget

// Hooks lists the ids, classes and attributes the client controller binds to.
type Hooks struct {
	RootID              string `json:"root_id"`
	DescriptionClass    string `json:"description_class"`
	ExamLinkClass       string `json:"exam_link_class"`
	InstructionsID      string `json:"instructions_id"`
	InstructionsClass   string `json:"instructions_class"`
	ToggleTextClass     string `json:"toggle_text_class"`
	ShowMoreAttr        string `json:"show_more_attr"`
	ShowLessAttr        string `json:"show_less_attr"`
	EndExamContainer    string `json:"end_exam_container_class"`
	EndExamClass        string `json:"end_exam_class"`
	AnnounceClass       string `json:"announce_class"`
	TimeRemainingID     string `json:"time_remaining_id"`
	ToggleTimerID       string `json:"toggle_timer_id"`
	ToggleTimerPressed  string `json:"toggle_timer_pressed_attr"`
	ToggleTimerHideText string `json:"toggle_timer_hide_text_class"`
}

// DOMHooks must not change between releases without updating the controller.
var DOMHooks = Hooks{
	RootID:              "exam-timer",
	DescriptionClass:    "js-exam-text",
	ExamLinkClass:       "exam-link",
	InstructionsID:      "exam-timer-instructions",
	InstructionsClass:   "js-exam-additional-text",
	ToggleTextClass:     "js-toggle-show-more",
	ShowMoreAttr:        "data-show-more",
	ShowLessAttr:        "data-show-less",
	EndExamContainer:    "exam-button-turn-in-exam-container",
	EndExamClass:        "js-end-exam",
	AnnounceClass:       "js-timer-announce",
	TimeRemainingID:     "time_remaining_id",
	ToggleTimerID:       "toggle_timer",
	ToggleTimerPressed:  "aria-pressed",
	ToggleTimerHideText: "js-timer-hide-text",
}
