package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stemsi/exstem-proctor/internal/config"
	"github.com/stemsi/exstem-proctor/internal/database"
	"github.com/stemsi/exstem-proctor/internal/logger"
	"github.com/stemsi/exstem-proctor/internal/model"
)

// seedStatuses cycles across the seeded students so every widget variant can be
// previewed against a running server.
var seedStatuses = []model.AttemptStatus{
	model.AttemptStatusStarted,
	model.AttemptStatusReadyToSubmit,
	model.AttemptStatusReadyToStart,
	model.AttemptStatusSubmitted,
}

func main() {
	title := flag.String("title", "Ujian Tengah Semester Matematika", "exam title")
	examType := flag.String("type", "", "exam type (empty stores NULL)")
	students := flag.Int("students", 20, "number of students to seed, ids 1..n")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if *students < 1 {
		log.Fatal().Int("students", *students).Msg("-students must be at least 1")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	var typ *string
	if *examType != "" {
		typ = examType
	}

	examID := uuid.New()
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO exams (id, title, exam_type, url_path) VALUES ($1, $2, $3, $4)`,
			examID, *title, typ, fmt.Sprintf("%s/%s", cfg.ExamBasePath, examID),
		); err != nil {
			return fmt.Errorf("insert exam: %w", err)
		}

		rows := attemptRows(examID, *students)
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"exam_sessions"},
			[]string{"exam_id", "student_id", "status"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("copy attempts: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	fmt.Printf("Seeded exam %s with %d attempts.\n", examID, *students)
	for i := 0; i < min(*students, len(seedStatuses)); i++ {
		fmt.Printf("  student %d: %s\n", i+1, seedStatuses[i])
	}
}

// attemptRows builds CopyFrom rows for students 1..n. n < 1 yields no rows.
func attemptRows(examID uuid.UUID, n int) [][]any {
	if n < 1 {
		return nil
	}
	rows := make([][]any, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, []any{examID, i + 1, string(seedStatuses[i%len(seedStatuses)])})
	}
	return rows
}
