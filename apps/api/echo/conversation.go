package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classreconnect/backend/core/conversation"
	"github.com/classreconnect/backend/core/user"
)

type conversationApi struct {
	svc    conversation.Service
	usrSvc user.Service
}

func registerConversationAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc conversation.Service, usrSvc user.Service) {
	api := conversationApi{svc: svc, usrSvc: usrSvc}

	cg := g.Group("/conversations", jwt)
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.PUT("/:id", api.replace)
	cg.DELETE("/:id", api.destroy)

	dg := g.Group("/deleted-conversations", jwt)
	dg.GET("", api.queryArchived)
	dg.POST("", api.archive)
}

// Handlers

func (api *conversationApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	convs, err := api.svc.ListForUser(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying conversations")
	}
	return ctx.JSON(http.StatusOK, ConversationListResponse{Conversations: convs})
}

func (api *conversationApi) create(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data conversation.NewConversation
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewConversation")
	}

	conv, err := api.svc.Create(ctx.Request().Context(), data, usr)
	if err != nil {
		return errors.Wrap(err, "creating conversation")
	}
	return ctx.JSON(http.StatusCreated, ConversationResponse{Conversation: conv})
}

func (api *conversationApi) replace(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data conversation.ReplaceConversation
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ReplaceConversation")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	conv, err := api.svc.Replace(ctx.Request().Context(), ctx.Param("id"), data, usr)
	if err != nil {
		if errors.Cause(err) == conversation.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "replacing conversation")
	}
	return ctx.JSON(http.StatusOK, ConversationResponse{Conversation: conv})
}

func (api *conversationApi) destroy(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id"), usr); err != nil {
		if errors.Cause(err) == conversation.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting conversation")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Conversation deleted"})
}

func (api *conversationApi) queryArchived(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	archs, err := api.svc.ListArchivedForUser(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying archived conversations")
	}
	return ctx.JSON(http.StatusOK, ArchivedListResponse{Conversations: archs})
}

func (api *conversationApi) archive(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data conversation.NewArchived
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewArchived")
	}

	arch, err := api.svc.Archive(ctx.Request().Context(), data, usr)
	if err != nil {
		return errors.Wrap(err, "archiving conversation")
	}
	return ctx.JSON(http.StatusCreated, ArchivedResponse{Conversation: arch})
}

type (
	ConversationResponse struct {
		Conversation conversation.Conversation `json:"conversation"`
	}

	ConversationListResponse struct {
		Conversations []conversation.Conversation `json:"conversations"`
	}

	ArchivedResponse struct {
		Conversation conversation.Archived `json:"conversation"`
	}

	ArchivedListResponse struct {
		Conversations []conversation.Archived `json:"conversations"`
	}
)
