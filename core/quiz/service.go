package quiz

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/classreconnect/backend/core/user"
)

var (
	// errors
	ErrNotFound    = errors.New("quiz not found")
	ErrTeacherOnly = errors.New("only teachers can manage quizzes")
	ErrStudentOnly = errors.New("only students can submit quiz results")
)

type (
	Repository interface {
		CreateQuiz(ctx context.Context, q Quiz) (Quiz, error)
		QueryAllQuizzes(ctx context.Context) ([]Quiz, error)
		GetQuizByID(ctx context.Context, id string) (Quiz, error)
		DeleteQuiz(ctx context.Context, id string) error
		DeleteAllQuizzes(ctx context.Context) error

		CreateResult(ctx context.Context, res Result) (Result, error)
		ResultsForUser(ctx context.Context, userID string) ([]Result, error)
		ResultsForQuiz(ctx context.Context, quizID string) ([]Result, error)
	}

	Service interface {
		Create(ctx context.Context, nq NewQuiz, actor user.User) (Quiz, error)
		QueryAll(ctx context.Context) ([]Quiz, error)
		Delete(ctx context.Context, id string, actor user.User) error
		Clear(ctx context.Context, actor user.User) error
		SubmitResult(ctx context.Context, quizID string, nr NewResult, actor user.User) (Result, error)
		ResultsForUser(ctx context.Context, userID string) ([]Result, error)
		ResultsForQuiz(ctx context.Context, quizID string, actor user.User) ([]Result, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, nq NewQuiz, actor user.User) (Quiz, error) {
	if !actor.IsTeacher() {
		return Quiz{}, ErrTeacherOnly
	}
	q := Quiz{
		Name:         nq.Name,
		Duration:     nq.Duration,
		Branch:       nq.Branch,
		Semester:     nq.Semester,
		Subject:      nq.Subject,
		NumQuestions: nq.NumQuestions,
		SetPaper:     nq.SetPaper,
		Questions:    nq.Questions,
		CreatedBy:    actor.ID,
		CreatedAt:    time.Now().UTC(),
	}
	if q.Questions == nil {
		q.Questions = []Question{}
	}
	return svc.repo.CreateQuiz(ctx, q)
}

func (svc *service) QueryAll(ctx context.Context) ([]Quiz, error) {
	return svc.repo.QueryAllQuizzes(ctx)
}

func (svc *service) Delete(ctx context.Context, id string, actor user.User) error {
	if !actor.IsTeacher() {
		return ErrTeacherOnly
	}
	if _, err := svc.repo.GetQuizByID(ctx, id); err != nil {
		return err
	}
	return svc.repo.DeleteQuiz(ctx, id)
}

func (svc *service) Clear(ctx context.Context, actor user.User) error {
	if !actor.IsTeacher() {
		return ErrTeacherOnly
	}
	return svc.repo.DeleteAllQuizzes(ctx)
}

// SubmitResult records a student's attempt. quizID is kept verbatim; when it
// resolves to a stored quiz, QuizRef is set as well.
func (svc *service) SubmitResult(ctx context.Context, quizID string, nr NewResult, actor user.User) (Result, error) {
	if !actor.IsStudent() {
		return Result{}, ErrStudentOnly
	}

	var quizRef string
	if q, err := svc.repo.GetQuizByID(ctx, quizID); err == nil {
		quizRef = q.ID
	} else if err != ErrNotFound {
		return Result{}, pkgerrors.Wrap(err, "resolving quiz reference")
	}

	percentage := 0
	if nr.Percentage != nil {
		percentage = *nr.Percentage
	} else if nr.TotalQuestions > 0 {
		percentage = int(float64(nr.Score)/float64(nr.TotalQuestions)*100 + 0.5)
	}

	res := Result{
		QuizID:         quizID,
		QuizRef:        quizRef,
		UserID:         actor.ID,
		UserName:       nr.UserName,
		Branch:         nr.Branch,
		Semester:       nr.Semester,
		Score:          nr.Score,
		TotalQuestions: nr.TotalQuestions,
		Percentage:     percentage,
		Marks:          nr.Marks,
		TotalMarks:     nr.TotalMarks,
		Answers:        nr.Answers,
		CompletedAt:    time.Now().UTC(),
	}
	if res.Answers == nil {
		res.Answers = []Answer{}
	}
	return svc.repo.CreateResult(ctx, res)
}

func (svc *service) ResultsForUser(ctx context.Context, userID string) ([]Result, error) {
	return svc.repo.ResultsForUser(ctx, userID)
}

func (svc *service) ResultsForQuiz(ctx context.Context, quizID string, actor user.User) ([]Result, error) {
	if !actor.IsTeacher() {
		return nil, ErrTeacherOnly
	}
	return svc.repo.ResultsForQuiz(ctx, quizID)
}
