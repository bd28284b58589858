package dummydb

import (
	"context"
	"sort"

	"github.com/classreconnect/backend/core/quiz"
)

type quizRepository struct {
	quizzes *quizTable
	results *resultTable
}

var _ quiz.Repository = (*quizRepository)(nil) // interface compliance check

func NewQuizRepository(db *DB) *quizRepository {
	return &quizRepository{quizzes: db.quiz, results: db.result}
}

func (repo *quizRepository) CreateQuiz(ctx context.Context, q quiz.Quiz) (quiz.Quiz, error) {
	repo.quizzes.Lock()
	defer repo.quizzes.Unlock()

	q.ID = nextPK()
	repo.quizzes.table[q.ID] = &q
	return q, nil
}

func (repo *quizRepository) QueryAllQuizzes(ctx context.Context) ([]quiz.Quiz, error) {
	repo.quizzes.RLock()
	defer repo.quizzes.RUnlock()

	quizzes := make([]quiz.Quiz, 0, len(repo.quizzes.table))
	for _, q := range repo.quizzes.table {
		quizzes = append(quizzes, *q)
	}
	sort.Slice(quizzes, func(i, j int) bool {
		return quizzes[i].CreatedAt.After(quizzes[j].CreatedAt)
	})
	return quizzes, nil
}

func (repo *quizRepository) GetQuizByID(ctx context.Context, id string) (quiz.Quiz, error) {
	repo.quizzes.RLock()
	defer repo.quizzes.RUnlock()

	if q, ok := repo.quizzes.table[id]; ok {
		return *q, nil
	}
	return quiz.Quiz{}, quiz.ErrNotFound
}

func (repo *quizRepository) DeleteQuiz(ctx context.Context, id string) error {
	repo.quizzes.Lock()
	defer repo.quizzes.Unlock()

	if _, ok := repo.quizzes.table[id]; !ok {
		return quiz.ErrNotFound
	}
	delete(repo.quizzes.table, id)
	return nil
}

func (repo *quizRepository) DeleteAllQuizzes(ctx context.Context) error {
	repo.quizzes.Lock()
	defer repo.quizzes.Unlock()

	repo.quizzes.table = make(map[string]*quiz.Quiz)
	return nil
}

func (repo *quizRepository) CreateResult(ctx context.Context, res quiz.Result) (quiz.Result, error) {
	repo.results.Lock()
	defer repo.results.Unlock()

	res.ID = nextPK()
	repo.results.table[res.ID] = &res
	return res, nil
}

func (repo *quizRepository) ResultsForUser(ctx context.Context, userID string) ([]quiz.Result, error) {
	return repo.queryResults(func(res quiz.Result) bool { return res.UserID == userID })
}

func (repo *quizRepository) ResultsForQuiz(ctx context.Context, quizID string) ([]quiz.Result, error) {
	return repo.queryResults(func(res quiz.Result) bool { return res.QuizID == quizID })
}

func (repo *quizRepository) queryResults(match func(quiz.Result) bool) ([]quiz.Result, error) {
	repo.results.RLock()
	defer repo.results.RUnlock()

	var results []quiz.Result
	for _, res := range repo.results.table {
		if match(*res) {
			results = append(results, *res)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if !results[i].CompletedAt.Equal(results[j].CompletedAt) {
			return results[i].CompletedAt.After(results[j].CompletedAt)
		}
		return results[i].ID > results[j].ID
	})
	if results == nil {
		results = []quiz.Result{}
	}
	return results, nil
}
