package sqlxrepos

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/classreconnect/backend/core/quiz"
)

type quizRow struct {
	ID           string          `db:"id"`
	Name         string          `db:"name"`
	Duration     int             `db:"duration"`
	Branch       string          `db:"branch"`
	Semester     string          `db:"semester"`
	Subject      string          `db:"subject"`
	NumQuestions int             `db:"num_questions"`
	SetPaper     null.String     `db:"set_paper"`
	Questions    json.RawMessage `db:"questions"`
	CreatedBy    string          `db:"created_by"`
	CreatedAt    time.Time       `db:"created_at"`
}

func (r quizRow) unpack() (quiz.Quiz, error) {
	q := quiz.Quiz{
		ID:           r.ID,
		Name:         r.Name,
		Duration:     r.Duration,
		Branch:       r.Branch,
		Semester:     r.Semester,
		Subject:      r.Subject,
		NumQuestions: r.NumQuestions,
		SetPaper:     r.SetPaper.String,
		Questions:    []quiz.Question{},
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt,
	}
	if len(r.Questions) > 0 {
		if err := json.Unmarshal(r.Questions, &q.Questions); err != nil {
			return quiz.Quiz{}, errors.Wrap(err, "decoding quiz questions")
		}
	}
	return q, nil
}

func packQuiz(q quiz.Quiz) (quizRow, error) {
	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return quizRow{}, errors.Wrap(err, "encoding quiz questions")
	}
	return quizRow{
		ID:           q.ID,
		Name:         q.Name,
		Duration:     q.Duration,
		Branch:       q.Branch,
		Semester:     q.Semester,
		Subject:      q.Subject,
		NumQuestions: q.NumQuestions,
		SetPaper:     null.NewString(q.SetPaper, q.SetPaper != ""),
		Questions:    questions,
		CreatedBy:    q.CreatedBy,
		CreatedAt:    q.CreatedAt.UTC(),
	}, nil
}

type resultRow struct {
	ID             string          `db:"id"`
	QuizID         string          `db:"quiz_id"`
	QuizRef        null.String     `db:"quiz_ref"`
	UserID         string          `db:"user_id"`
	UserName       null.String     `db:"user_name"`
	Branch         null.String     `db:"branch"`
	Semester       null.String     `db:"semester"`
	Score          int             `db:"score"`
	TotalQuestions int             `db:"total_questions"`
	Percentage     int             `db:"percentage"`
	Marks          null.Int        `db:"marks"`
	TotalMarks     null.Int        `db:"total_marks"`
	Answers        json.RawMessage `db:"answers"`
	CompletedAt    time.Time       `db:"completed_at"`
}

func (r resultRow) unpack() (quiz.Result, error) {
	res := quiz.Result{
		ID:             r.ID,
		QuizID:         r.QuizID,
		QuizRef:        r.QuizRef.String,
		UserID:         r.UserID,
		UserName:       r.UserName.String,
		Branch:         r.Branch.String,
		Semester:       r.Semester.String,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		Percentage:     r.Percentage,
		Marks:          r.Marks.Int,
		TotalMarks:     r.TotalMarks.Int,
		Answers:        []quiz.Answer{},
		CompletedAt:    r.CompletedAt,
	}
	if len(r.Answers) > 0 {
		if err := json.Unmarshal(r.Answers, &res.Answers); err != nil {
			return quiz.Result{}, errors.Wrap(err, "decoding result answers")
		}
	}
	return res, nil
}

func packResult(res quiz.Result) (resultRow, error) {
	answers, err := json.Marshal(res.Answers)
	if err != nil {
		return resultRow{}, errors.Wrap(err, "encoding result answers")
	}
	return resultRow{
		ID:             res.ID,
		QuizID:         res.QuizID,
		QuizRef:        null.NewString(res.QuizRef, res.QuizRef != ""),
		UserID:         res.UserID,
		UserName:       null.NewString(res.UserName, res.UserName != ""),
		Branch:         null.NewString(res.Branch, res.Branch != ""),
		Semester:       null.NewString(res.Semester, res.Semester != ""),
		Score:          res.Score,
		TotalQuestions: res.TotalQuestions,
		Percentage:     res.Percentage,
		Marks:          null.NewInt(res.Marks, res.Marks != 0),
		TotalMarks:     null.NewInt(res.TotalMarks, res.TotalMarks != 0),
		Answers:        answers,
		CompletedAt:    res.CompletedAt.UTC(),
	}, nil
}

type quizRepository struct {
	db *sqlx.DB
}

var _ quiz.Repository = (*quizRepository)(nil) // interface compliance check

func NewQuizRepository(db *sqlx.DB) *quizRepository {
	return &quizRepository{db: db}
}

func (repo quizRepository) CreateQuiz(ctx context.Context, q quiz.Quiz) (quiz.Quiz, error) {
	q.ID = uuid.New().String()
	row, err := packQuiz(q)
	if err != nil {
		return quiz.Quiz{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO quiz (
			id, name, duration, branch, semester, subject,
			num_questions, set_paper, questions, created_by, created_at
		) VALUES (
			:id, :name, :duration, :branch, :semester, :subject,
			:num_questions, :set_paper, :questions, :created_by, :created_at
		)`, row)
	if err != nil {
		return quiz.Quiz{}, errors.Wrap(err, "inserting quiz")
	}
	return q, nil
}

func (repo quizRepository) QueryAllQuizzes(ctx context.Context) ([]quiz.Quiz, error) {
	var rows []quizRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM quiz ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying quizzes")
	}
	quizzes := make([]quiz.Quiz, 0, len(rows))
	for _, row := range rows {
		q, err := row.unpack()
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, nil
}

func (repo quizRepository) GetQuizByID(ctx context.Context, id string) (quiz.Quiz, error) {
	if _, err := uuid.Parse(id); err != nil {
		return quiz.Quiz{}, quiz.ErrNotFound
	}
	var row quizRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM quiz WHERE id = $1`, id)
	if err != nil {
		return quiz.Quiz{}, trapNoRowsErr(err, quiz.ErrNotFound, "finding quiz by ID")
	}
	return row.unpack()
}

func (repo quizRepository) DeleteQuiz(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM quiz WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting quiz")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return quiz.ErrNotFound
	}
	return nil
}

func (repo quizRepository) DeleteAllQuizzes(ctx context.Context) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM quiz`); err != nil {
		return errors.Wrap(err, "clearing quizzes")
	}
	return nil
}

func (repo quizRepository) CreateResult(ctx context.Context, res quiz.Result) (quiz.Result, error) {
	res.ID = uuid.New().String()
	row, err := packResult(res)
	if err != nil {
		return quiz.Result{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO quiz_result (
			id, quiz_id, quiz_ref, user_id, user_name, branch, semester,
			score, total_questions, percentage, marks, total_marks, answers, completed_at
		) VALUES (
			:id, :quiz_id, :quiz_ref, :user_id, :user_name, :branch, :semester,
			:score, :total_questions, :percentage, :marks, :total_marks, :answers, :completed_at
		)`, row)
	if err != nil {
		return quiz.Result{}, errors.Wrap(err, "inserting quiz result")
	}
	return res, nil
}

func (repo quizRepository) ResultsForUser(ctx context.Context, userID string) ([]quiz.Result, error) {
	return repo.queryResults(ctx, `SELECT * FROM quiz_result WHERE user_id = $1 ORDER BY completed_at DESC`, userID)
}

func (repo quizRepository) ResultsForQuiz(ctx context.Context, quizID string) ([]quiz.Result, error) {
	return repo.queryResults(ctx, `SELECT * FROM quiz_result WHERE quiz_id = $1 ORDER BY completed_at DESC`, quizID)
}

func (repo quizRepository) queryResults(ctx context.Context, query string, arg interface{}) ([]quiz.Result, error) {
	var rows []resultRow
	if err := repo.db.SelectContext(ctx, &rows, query, arg); err != nil {
		return nil, errors.Wrap(err, "querying quiz results")
	}
	results := make([]quiz.Result, 0, len(rows))
	for _, row := range rows {
		res, err := row.unpack()
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
