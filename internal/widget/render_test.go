package widget_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/stemsi/exstem-proctor/internal/i18n"
	"github.com/stemsi/exstem-proctor/internal/widget"
)

func render(t *testing.T, locale string, c widget.ExamDisplayContext) (template.HTML, *html.Node) {
	t.Helper()

	bundle, err := i18n.NewBundle("en")
	require.NoError(t, err)

	out, err := widget.Render(bundle.Translator(locale), c)
	require.NoError(t, err)

	doc, err := html.Parse(strings.NewReader(string(out)))
	require.NoError(t, err)
	return out, doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, _ := attr(n, "class")
		for _, c := range strings.Fields(v) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func hasID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, _ := attr(n, "id")
		return v == id
	}
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func one(t *testing.T, doc *html.Node, match func(*html.Node) bool) *html.Node {
	t.Helper()
	nodes := findAll(doc, match)
	require.Len(t, nodes, 1)
	return nodes[0]
}

func TestRenderExample(t *testing.T) {
	_, doc := render(t, "en", widget.ExamDisplayContext{
		ExamURLPath:     "/exam/42",
		ExamDisplayName: "Midterm",
		ExamType:        "practice",
		AttemptStatus:   "started",
	})

	desc := one(t, doc, hasClass(widget.DOMHooks.DescriptionClass))
	assert.Equal(t, `You are taking "Midterm" as a practice exam.`, text(desc))

	link := one(t, desc, func(n *html.Node) bool { return n.Data == "a" })
	href, _ := attr(link, "href")
	assert.Equal(t, "/exam/42", href)
	assert.Equal(t, "Midterm", text(link))

	buttons := findAll(doc, hasClass(widget.DOMHooks.EndExamClass))
	require.Len(t, buttons, 1)
	assert.Equal(t, "End My Exam", text(buttons[0]))
}

func TestRenderEscapesDisplayName(t *testing.T) {
	out, doc := render(t, "en", widget.ExamDisplayContext{
		ExamURLPath:     "/exam/1",
		ExamDisplayName: `<script>alert("x")</script> & <b>`,
		AttemptStatus:   "started",
	})

	assert.NotContains(t, string(out), "<script>")
	assert.NotContains(t, string(out), "<b>")
	assert.Contains(t, string(out), "&lt;script&gt;")

	link := one(t, doc, hasClass(widget.DOMHooks.ExamLinkClass))
	assert.Equal(t, `<script>alert("x")</script> & <b>`, text(link))
	assert.Empty(t, findAll(doc, func(n *html.Node) bool { return n.Data == "script" || n.Data == "b" }))
}

func TestRenderEscapesURL(t *testing.T) {
	t.Run("attribute breakout", func(t *testing.T) {
		_, doc := render(t, "en", widget.ExamDisplayContext{ExamURLPath: `/exam/1"><img src=x>`, ExamDisplayName: "Final"})

		link := one(t, doc, hasClass(widget.DOMHooks.ExamLinkClass))
		href, _ := attr(link, "href")
		assert.True(t, strings.HasPrefix(href, "/exam/1"))
		assert.NotContains(t, href, `"`)
		assert.NotContains(t, href, "<")
		assert.Empty(t, findAll(doc, func(n *html.Node) bool { return n.Data == "img" }))
	})

	t.Run("script scheme", func(t *testing.T) {
		_, doc := render(t, "en", widget.ExamDisplayContext{ExamURLPath: "javascript:alert(1)", ExamDisplayName: "Final"})

		href, _ := attr(one(t, doc, hasClass(widget.DOMHooks.ExamLinkClass)), "href")
		assert.Equal(t, "#ZgotmplZ", href)
	})

	t.Run("query string", func(t *testing.T) {
		_, doc := render(t, "en", widget.ExamDisplayContext{ExamURLPath: "/exam/1?tab=a&b=c", ExamDisplayName: "Final"})

		href, _ := attr(one(t, doc, hasClass(widget.DOMHooks.ExamLinkClass)), "href")
		assert.Equal(t, "/exam/1?tab=a&b=c", href)
	})
}

func TestRenderExamType(t *testing.T) {
	tests := []struct {
		name     string
		locale   string
		examType string
		want     string
	}{
		{name: "absent uses timed", locale: "en", examType: "", want: `You are taking "Quiz" as a timed exam.`},
		{name: "blank uses timed", locale: "en", examType: "  ", want: `You are taking "Quiz" as a timed exam.`},
		{name: "verbatim", locale: "en", examType: "proctored", want: `You are taking "Quiz" as a proctored exam.`},
		{name: "escaped verbatim", locale: "en", examType: "<i>x</i>", want: `You are taking "Quiz" as a <i>x</i> exam.`},
		{name: "localized default", locale: "id", examType: "", want: `Anda sedang mengerjakan "Quiz" sebagai ujian berwaktu.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, doc := render(t, tt.locale, widget.ExamDisplayContext{
				ExamURLPath:     "/q",
				ExamDisplayName: "Quiz",
				ExamType:        tt.examType,
			})

			desc := one(t, doc, hasClass(widget.DOMHooks.DescriptionClass))
			assert.Equal(t, tt.want, text(desc))
			assert.Empty(t, findAll(desc, func(n *html.Node) bool { return n.Data == "i" }))
		})
	}
}

func TestRenderEndExamButton(t *testing.T) {
	statuses := map[string]int{
		"ready_to_submit": 0,
		"started":         1,
		"created":         1,
		"submitted":       1,
		"":                1,
	}

	for status, want := range statuses {
		t.Run("status="+status, func(t *testing.T) {
			_, doc := render(t, "en", widget.ExamDisplayContext{ExamURLPath: "/e", ExamDisplayName: "E", AttemptStatus: status})

			assert.Len(t, findAll(doc, hasClass(widget.DOMHooks.EndExamClass)), want)
			assert.Len(t, findAll(doc, func(n *html.Node) bool { return n.Data == "button" && strings.Contains(text(n), "End My Exam") }), want)
			// The container is part of the contract and stays in place.
			one(t, doc, hasClass(widget.DOMHooks.EndExamContainer))
		})
	}
}

func TestRenderToggleLabels(t *testing.T) {
	for _, status := range []string{"started", "ready_to_submit"} {
		_, doc := render(t, "en", widget.ExamDisplayContext{AttemptStatus: status, ExamType: "practice"})

		toggle := one(t, doc, hasClass(widget.DOMHooks.ToggleTextClass))
		more, ok := attr(toggle, widget.DOMHooks.ShowMoreAttr)
		require.True(t, ok)
		less, ok := attr(toggle, widget.DOMHooks.ShowLessAttr)
		require.True(t, ok)

		assert.Equal(t, "Show More", more)
		assert.Equal(t, "Show Less", less)
		assert.Equal(t, "Show More", text(toggle))

		expanded, _ := attr(toggle, "aria-expanded")
		assert.Equal(t, "false", expanded)
	}
}

func TestRenderLiveRegions(t *testing.T) {
	_, doc := render(t, "en", widget.ExamDisplayContext{})

	announce := one(t, doc, hasClass(widget.DOMHooks.AnnounceClass))
	live, _ := attr(announce, "aria-live")
	assert.Equal(t, "assertive", live)
	assert.Nil(t, announce.FirstChild)

	remaining := one(t, doc, hasID(widget.DOMHooks.TimeRemainingID))
	assert.Nil(t, remaining.FirstChild)

	toggle := one(t, doc, hasID(widget.DOMHooks.ToggleTimerID))
	pressed, _ := attr(toggle, widget.DOMHooks.ToggleTimerPressed)
	assert.Equal(t, "false", pressed)
	assert.Equal(t, "Hide Timer", strings.TrimSpace(text(toggle)))
}

func TestRenderInstructions(t *testing.T) {
	_, doc := render(t, "en", widget.ExamDisplayContext{})

	region := one(t, doc, hasID(widget.DOMHooks.InstructionsID))
	label, _ := attr(region, "aria-label")
	assert.Equal(t, "Exam instructions", label)
	_, hidden := attr(region, "hidden")
	assert.True(t, hidden)
	assert.Equal(t,
		`The timer on the right shows the time remaining in the exam. To receive credit for problems, you must select "Submit" for each problem before you select "End My Exam".`,
		text(region))
}

func TestRenderMissingFields(t *testing.T) {
	_, doc := render(t, "en", widget.ExamDisplayContext{})

	link := one(t, doc, hasClass(widget.DOMHooks.ExamLinkClass))
	href, _ := attr(link, "href")
	assert.Empty(t, href)
	assert.Empty(t, text(link))
	assert.Len(t, findAll(doc, hasClass(widget.DOMHooks.EndExamClass)), 1)
}

func TestRenderHooksStable(t *testing.T) {
	contexts := []widget.ExamDisplayContext{
		{},
		{ExamURLPath: "/a", ExamDisplayName: "A", ExamType: "practice", AttemptStatus: "started"},
		{ExamURLPath: "/b", ExamDisplayName: "B", AttemptStatus: "ready_to_submit"},
	}

	for _, c := range contexts {
		_, doc := render(t, "id", c)
		for _, id := range []string{
			widget.DOMHooks.RootID,
			widget.DOMHooks.InstructionsID,
			widget.DOMHooks.TimeRemainingID,
			widget.DOMHooks.ToggleTimerID,
		} {
			one(t, doc, hasID(id))
		}
		for _, class := range []string{
			widget.DOMHooks.DescriptionClass,
			widget.DOMHooks.ExamLinkClass,
			widget.DOMHooks.InstructionsClass,
			widget.DOMHooks.ToggleTextClass,
			widget.DOMHooks.EndExamContainer,
			widget.DOMHooks.AnnounceClass,
			widget.DOMHooks.ToggleTimerHideText,
		} {
			one(t, doc, hasClass(class))
		}
	}
}
