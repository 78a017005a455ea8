package widget

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"strings"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Parsed once; html/template execution is safe for concurrent use.
var timerTemplate = template.Must(template.ParseFS(templateFS, "templates/*.gohtml"))

type linkData struct {
	URL   string
	Name  string
	Class string
}

type fragmentData struct {
	Hooks              Hooks
	Description        template.HTML
	InstructionsLabel  string
	InstructionsTime   string
	InstructionsSubmit string
	ShowMore           string
	ShowLess           string
	ShowEndExam        bool
	EndExam            string
	TimeRemainingLabel string
	HideTimer          string
}

// Render returns the timer fragment for c with every string resolved by tr.
// Caller-supplied values are escaped; missing values render blank.
func Render(tr Translator, c ExamDisplayContext) (template.HTML, error) {
	var buf bytes.Buffer
	if err := timerTemplate.ExecuteTemplate(&buf, "exam-link", linkData{URL: c.ExamURLPath, Name: c.ExamDisplayName, Class: DOMHooks.ExamLinkClass}); err != nil {
		return "", fmt.Errorf("render exam link: %w", err)
	}

	examType := strings.TrimSpace(c.ExamType)
	if examType == "" {
		examType = tr.Resolve(KeyTimed, nil)
	}

	data := fragmentData{
		Hooks: DOMHooks,
		Description: interpolateHTML(tr, KeyDescription,
			map[string]string{ParamExamType: examType},
			map[string]template.HTML{ParamExamLink: template.HTML(buf.String())},
		),
		InstructionsLabel:  tr.Resolve(KeyInstructionsLabel, nil),
		InstructionsTime:   tr.Resolve(KeyInstructionsTime, nil),
		InstructionsSubmit: tr.Resolve(KeyInstructionsSubmit, nil),
		ShowMore:           tr.Resolve(KeyShowMore, nil),
		ShowLess:           tr.Resolve(KeyShowLess, nil),
		ShowEndExam:        c.ShowsEndExam(),
		EndExam:            tr.Resolve(KeyEndExam, nil),
		TimeRemainingLabel: tr.Resolve(KeyTimeRemaining, nil),
		HideTimer:          tr.Resolve(KeyHideTimer, nil),
	}

	buf.Reset()
	if err := timerTemplate.ExecuteTemplate(&buf, "exam-timer", data); err != nil {
		return "", fmt.Errorf("render exam timer: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// interpolateHTML resolves key with text params, escapes the result and then
// splices in the markup params. Markup params are passed to the translator as
// NUL-delimited markers, which neither the translator nor the escaper alter.
func interpolateHTML(tr Translator, key string, text map[string]string, markup map[string]template.HTML) template.HTML {
	params := make(map[string]string, len(text)+len(markup))
	for name, v := range text {
		params[name] = strings.ReplaceAll(v, "\x00", "")
	}

	markers := make([]string, 0, len(markup)*2)
	for name, v := range markup {
		marker := "\x00" + name + "\x00"
		params[name] = marker
		markers = append(markers, marker, string(v))
	}

	escaped := html.EscapeString(tr.Resolve(key, params))
	return template.HTML(strings.NewReplacer(markers...).Replace(escaped))
}
