// Command render-widget prints the timer widget fragment for the given exam
// and attempt, for previewing layouts and translation overrides.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/stemsi/exstem-proctor/internal/i18n"
	"github.com/stemsi/exstem-proctor/internal/logger"
	"github.com/stemsi/exstem-proctor/internal/widget"
)

func main() {
	var (
		c          widget.ExamDisplayContext
		locale     string
		localesDir string
	)
	flag.StringVar(&c.ExamDisplayName, "name", "Midterm", "Exam display name")
	flag.StringVar(&c.ExamURLPath, "url", "/student/exams/preview", "Exam URL path")
	flag.StringVar(&c.ExamType, "type", "", "Exam type (empty renders the localized \"timed\" label)")
	flag.StringVar(&c.AttemptStatus, "status", "started", "Attempt status")
	flag.StringVar(&locale, "locale", "en", "Locale to render in")
	flag.StringVar(&localesDir, "locales-dir", "", "Directory of <locale>.yaml translation overrides")
	flag.Parse()

	log := logger.Setup("warn", "pretty")

	bundle, err := i18n.NewBundle("en")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build translation bundle")
	}
	if localesDir != "" {
		if _, err := bundle.LoadOverrides(localesDir); err != nil {
			log.Fatal().Err(err).Str("dir", localesDir).Msg("Failed to load translation overrides")
		}
	}

	tr := bundle.Translator(locale)
	if !bundle.Supports(locale) {
		log.Warn().Str("requested", locale).Str("using", tr.Locale()).Msg("Locale not supported")
	}

	out, err := widget.Render(tr, c)
	if err != nil {
		log.Fatal().Err(err).Msg("Render failed")
	}

	fmt.Fprintln(os.Stdout, out)
}
