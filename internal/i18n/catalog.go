package i18n

import "github.com/stemsi/exstem-proctor/internal/widget"

// defaultCatalog is the built-in text for every supported locale.
var defaultCatalog = map[string]map[string]string{
	"en": {
		widget.KeyDescription:        `You are taking "{exam_link}" as a {exam_type} exam.`,
		widget.KeyInstructionsTime:   "The timer on the right shows the time remaining in the exam.",
		widget.KeyInstructionsSubmit: `To receive credit for problems, you must select "Submit" for each problem before you select "End My Exam".`,
		widget.KeyInstructionsLabel:  "Exam instructions",
		widget.KeyShowMore:           "Show More",
		widget.KeyShowLess:           "Show Less",
		widget.KeyEndExam:            "End My Exam",
		widget.KeyTimed:              "timed",
		widget.KeyHideTimer:          "Hide Timer",
		widget.KeyTimeRemaining:      "Time remaining",
	},
	"id": {
		widget.KeyDescription:        `Anda sedang mengerjakan "{exam_link}" sebagai ujian {exam_type}.`,
		widget.KeyInstructionsTime:   "Pengatur waktu di sebelah kanan menunjukkan sisa waktu ujian.",
		widget.KeyInstructionsSubmit: `Untuk mendapatkan nilai, Anda harus memilih "Kirim" pada setiap soal sebelum memilih "Akhiri Ujian Saya".`,
		widget.KeyInstructionsLabel:  "Petunjuk ujian",
		widget.KeyShowMore:           "Tampilkan Lebih Banyak",
		widget.KeyShowLess:           "Tampilkan Lebih Sedikit",
		widget.KeyEndExam:            "Akhiri Ujian Saya",
		widget.KeyTimed:              "berwaktu",
		widget.KeyHideTimer:          "Sembunyikan Pengatur Waktu",
		widget.KeyTimeRemaining:      "Sisa waktu",
	},
}
