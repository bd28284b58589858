package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classreconnect/backend/core/assist"
)

var (
	errAssistUnavailable = echo.NewHTTPError(
		http.StatusServiceUnavailable, "AI service unavailable. Please try again later.")
	errQuestionsNotFound = echo.NewHTTPError(http.StatusNotFound, "questions.txt not found")
)

type assistApi struct {
	svc assist.Service
}

func registerAssistAPI(g *echo.Group, svc assist.Service) {
	api := assistApi{svc: svc}

	g.POST("/qa/answer", api.answer)
	g.GET("/predefined/questions", api.predefinedQuestions)
}

// Handlers

func (api *assistApi) answer(ctx echo.Context) error {
	var data QuestionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to QuestionRequest")
	}

	ans, err := api.svc.Answer(ctx.Request().Context(), data.Question)
	if err != nil {
		if errors.Cause(err) == assist.ErrUnavailable {
			return errAssistUnavailable
		}
		return errors.Wrap(err, "answering question")
	}
	return ctx.JSON(http.StatusOK, AnswerResponse{Success: true, Source: ans.Source, Answer: ans.Text})
}

func (api *assistApi) predefinedQuestions(ctx echo.Context) error {
	questions, err := api.svc.PredefinedQuestions()
	if err != nil {
		if errors.Is(err, assist.ErrQuestionsNotFound) {
			return errQuestionsNotFound
		}
		return errors.Wrap(err, "loading predefined questions")
	}
	if questions == nil {
		questions = []string{}
	}
	return ctx.JSON(http.StatusOK, QuestionListResponse{Questions: questions})
}

type (
	QuestionRequest struct {
		Question string `json:"question"`
	}

	AnswerResponse struct {
		Success bool   `json:"success"`
		Source  string `json:"source"`
		Answer  string `json:"answer"`
	}

	QuestionListResponse struct {
		Questions []string `json:"questions"`
	}
)
