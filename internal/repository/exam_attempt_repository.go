package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/exstem-proctor/internal/model"
)

// ExamAttemptRepository reads exam attempts for display.
type ExamAttemptRepository struct {
	pool *pgxpool.Pool
}

// NewExamAttemptRepository creates a new ExamAttemptRepository.
func NewExamAttemptRepository(pool *pgxpool.Pool) *ExamAttemptRepository {
	return &ExamAttemptRepository{pool: pool}
}

// GetView retrieves the exam and attempt status for a specific exam-student combination.
// Returns pgx.ErrNoRows if the student has no attempt for the exam.
func (r *ExamAttemptRepository) GetView(ctx context.Context, examID uuid.UUID, studentID int) (*model.ExamAttemptView, error) {
	v := &model.ExamAttemptView{}
	err := r.pool.QueryRow(ctx,
		`SELECT e.id, es.student_id, e.title, e.exam_type, e.url_path, es.status
		 FROM exam_sessions es
		 JOIN exams e ON e.id = es.exam_id
		 WHERE es.exam_id = $1 AND es.student_id = $2`, examID, studentID,
	).Scan(&v.ExamID, &v.StudentID, &v.Title, &v.ExamType, &v.URLPath, &v.Status)
	if err != nil {
		return nil, err
	}
	return v, nil
}
