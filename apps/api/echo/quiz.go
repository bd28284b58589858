package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classreconnect/backend/core/quiz"
	"github.com/classreconnect/backend/core/user"
)

type quizApi struct {
	svc    quiz.Service
	usrSvc user.Service
}

func registerQuizAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc quiz.Service, usrSvc user.Service) {
	api := quizApi{svc: svc, usrSvc: usrSvc}

	qg := g.Group("/quizzes", jwt)

	qg.POST("", api.create, teacherMiddleware())
	qg.GET("", api.query)
	qg.DELETE("", api.clear, teacherMiddleware())
	qg.GET("/results/me", api.myResults)
	qg.POST("/:quizId/results", api.submitResult, studentMiddleware())
	qg.GET("/:quizId/results", api.quizResults, teacherMiddleware())
	qg.DELETE("/:id", api.destroy, teacherMiddleware())
}

// Handlers

func (api *quizApi) create(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data quiz.NewQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuiz")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	q, err := api.svc.Create(ctx.Request().Context(), data, usr)
	if err != nil {
		return errors.Wrap(err, "creating quiz")
	}
	return ctx.JSON(http.StatusCreated, QuizResponse{Message: "Quiz created successfully", Quiz: q})
}

func (api *quizApi) query(ctx echo.Context) error {
	quizzes, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying quizzes")
	}
	if quizzes == nil {
		quizzes = []quiz.Quiz{}
	}
	return ctx.JSON(http.StatusOK, QuizListResponse{Quizzes: quizzes})
}

func (api *quizApi) submitResult(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data quiz.NewResult
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewResult")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	res, err := api.svc.SubmitResult(ctx.Request().Context(), ctx.Param("quizId"), data, usr)
	if err != nil {
		return errors.Wrap(err, "submitting quiz result")
	}
	return ctx.JSON(http.StatusCreated, ResultResponse{Message: "Result recorded", Result: res})
}

func (api *quizApi) myResults(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	results, err := api.svc.ResultsForUser(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying quiz results")
	}
	if results == nil {
		results = []quiz.Result{}
	}
	return ctx.JSON(http.StatusOK, ResultListResponse{Results: results})
}

func (api *quizApi) quizResults(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	results, err := api.svc.ResultsForQuiz(ctx.Request().Context(), ctx.Param("quizId"), usr)
	if err != nil {
		return errors.Wrap(err, "querying quiz results")
	}
	if results == nil {
		results = []quiz.Result{}
	}
	return ctx.JSON(http.StatusOK, ResultListResponse{Results: results})
}

func (api *quizApi) destroy(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id"), usr); err != nil {
		if errors.Cause(err) == quiz.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting quiz")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Quiz deleted successfully"})
}

func (api *quizApi) clear(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if err := api.svc.Clear(ctx.Request().Context(), usr); err != nil {
		return errors.Wrap(err, "clearing quizzes")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "All quizzes deleted"})
}

type (
	QuizResponse struct {
		Message string    `json:"message,omitempty"`
		Quiz    quiz.Quiz `json:"quiz"`
	}

	QuizListResponse struct {
		Quizzes []quiz.Quiz `json:"quizzes"`
	}

	ResultResponse struct {
		Message string      `json:"message,omitempty"`
		Result  quiz.Result `json:"result"`
	}

	ResultListResponse struct {
		Results []quiz.Result `json:"results"`
	}
)
