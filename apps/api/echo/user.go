package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classreconnect/backend/core"
	"github.com/classreconnect/backend/core/user"
)

type authApi struct {
	svc user.Service
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc user.Service) {
	api := authApi{svc: svc}

	ag := g.Group("/auth")

	// un-authed endpoints
	ag.POST("/register/student", api.registerStudent)
	ag.POST("/register/teacher", api.registerTeacher)
	ag.POST("/login", api.login)

	// authed endpoints
	tg := ag.Group("", jwt)
	tg.POST("/logout", api.logout)
	tg.POST("/token-refresh", api.refreshToken)
	tg.GET("/profile", api.profile)
	tg.PUT("/profile", api.updateProfile)
}

// Handlers

func (api *authApi) registerStudent(ctx echo.Context) error {
	var data user.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	usr, err := api.svc.RegisterStudent(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering student")
	}

	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusCreated, AuthResponse{
		Message: "Student registered successfully",
		Token:   token,
		User:    usr,
	})
}

func (api *authApi) registerTeacher(ctx echo.Context) error {
	var data user.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	usr, err := api.svc.RegisterTeacher(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering teacher")
	}

	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusCreated, AuthResponse{
		Message: "Teacher registered successfully",
		Token:   token,
		User:    usr,
	})
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := api.svc.Authenticate(ctx.Request().Context(), data.Email, data.Password, data.Role)
	if err != nil {
		switch errors.Cause(err) {
		case user.ErrInvalidCreds:
			return echo.NewHTTPError(http.StatusUnauthorized, user.ErrInvalidCreds.Error())
		case user.ErrWrongRole:
			return echo.NewHTTPError(http.StatusForbidden, user.ErrWrongRole.Error())
		case user.ErrNotActive:
			return errAccountDeactivated
		}
		return errors.Wrap(err, "authenticating")
	}

	// best-effort activity trail
	if err := api.svc.RecordActivity(ctx.Request().Context(), usr, user.EventLogin, requestMeta(ctx)); err != nil {
		ctx.Logger().Warnf("recording login: %v", err)
	}

	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, AuthResponse{Message: "Login successful", Token: token, User: usr})
}

func (api *authApi) logout(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if err := api.svc.RecordActivity(ctx.Request().Context(), usr, user.EventLogout, requestMeta(ctx)); err != nil {
		return errors.Wrap(err, "recording logout")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Logout recorded"})
}

func (api *authApi) profile(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, UserResponse{User: usr})
}

func (api *authApi) updateProfile(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data user.UpdateProfile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfile")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err = api.svc.UpdateProfile(ctx.Request().Context(), usr, data, requestMeta(ctx))
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	return ctx.JSON(http.StatusOK, AuthResponse{Message: "Profile updated successfully", User: usr})
}

func (api *authApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
		Role     string `json:"role"`
	}

	AuthResponse struct {
		Message string    `json:"message,omitempty"`
		Token   string    `json:"token,omitempty"`
		User    user.User `json:"user"`
	}

	UserResponse struct {
		User user.User `json:"user"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}

	MessageResponse struct {
		Message string `json:"message"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return core.Validate.Struct(lr)
}
