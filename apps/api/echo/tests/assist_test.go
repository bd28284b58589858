package tests

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	. "github.com/classreconnect/backend/apps/api/echo"
	"github.com/classreconnect/backend/core"
	"github.com/classreconnect/backend/core/assist"
)

func TestAssistAnswer(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		answerClient.Text, answerClient.Err = "A deadlock is a circular wait.", nil

		body := marchallObj(t, QuestionRequest{Question: "What is a deadlock?"})
		req, rec := newRequest(http.MethodPost, "/api/qa/answer", body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, AnswerResponse{Success: true, Source: "dummy", Answer: answerClient.Text}),
		}, rec)
	})

	t.Run("empty question", func(t *testing.T) {
		body := marchallObj(t, QuestionRequest{Question: "   "})
		req, rec := newRequest(http.MethodPost, "/api/qa/answer", body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"question": "question is required"}),
		}, rec)
	})

	t.Run("service unavailable", func(t *testing.T) {
		answerClient.Err = assist.ErrUnavailable
		defer func() { answerClient.Err = nil }()

		body := marchallObj(t, QuestionRequest{Question: "Anyone home?"})
		req, rec := newRequest(http.MethodPost, "/api/qa/answer", body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusServiceUnavailable,
			wantData: marchallObj(t, httpErr{Error: "AI service unavailable. Please try again later."}),
		}, rec)
	})
}

func TestAssistPredefinedQuestions(t *testing.T) {
	origPath := core.Conf.Assist.QuestionsPath
	defer func() { core.Conf.Assist.QuestionsPath = origPath }()

	t.Run("file missing", func(t *testing.T) {
		core.Conf.Assist.QuestionsPath = filepath.Join(t.TempDir(), "questions.txt")

		req, rec := newRequest(http.MethodGet, "/api/predefined/questions")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "questions.txt not found"}),
		}, rec)
	})

	t.Run("ok", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "questions.txt")
		text := "1. What is a database?\n2. What is an index?\nnot numbered\n"
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			t.Fatalf("writing questions file: %v", err)
		}
		core.Conf.Assist.QuestionsPath = path

		req, rec := newRequest(http.MethodGet, "/api/predefined/questions")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, QuestionListResponse{Questions: []string{"What is a database?", "What is an index?"}}),
		}, rec)
	})
}
