package echoapi

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classreconnect/backend/core"
	"github.com/classreconnect/backend/core/resource"
	"github.com/classreconnect/backend/core/user"
)

var errUnsupportedFileType = echo.NewHTTPError(
	http.StatusBadRequest, "only document files (PDF, DOC, DOCX, PPT, PPTX, TXT) are allowed")

type resourceApi struct {
	svc    resource.Service
	usrSvc user.Service
}

func registerResourceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc resource.Service, usrSvc user.Service) {
	api := resourceApi{svc: svc, usrSvc: usrSvc}

	rg := g.Group("/resources")

	rg.GET("", api.query)
	rg.GET("/deleted-defaults", api.deletedDefaults)
	rg.POST("/upload", api.upload, jwt)
	rg.POST("/:id/download", api.download)
	rg.DELETE("/:id", api.destroy, jwt)
}

// Handlers

func (api *resourceApi) upload(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file uploaded")
	}
	if !resource.ExtensionAllowed(file.Filename) {
		return errUnsupportedFileType
	}

	data := resource.NewResource{
		Title:       ctx.FormValue("title"),
		Subject:     ctx.FormValue("subject"),
		Semester:    ctx.FormValue("semester"),
		Type:        ctx.FormValue("type"),
		Branch:      ctx.FormValue("branch"),
		Description: ctx.FormValue("description"),
	}
	if err := data.Validate(); err != nil {
		return err
	}

	path, err := saveUpload(file)
	if err != nil {
		return errors.Wrap(err, "saving uploaded file")
	}
	data.FilePath = path

	res, err := api.svc.Upload(ctx.Request().Context(), data, usr)
	if err != nil {
		return errors.Wrap(err, "uploading resource")
	}
	return ctx.JSON(http.StatusCreated, ResourceResponse{
		Message:  "Resource uploaded successfully",
		Resource: res,
	})
}

func (api *resourceApi) query(ctx echo.Context) error {
	resources, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying resources")
	}
	if resources == nil {
		resources = []resource.Resource{}
	}
	return ctx.JSON(http.StatusOK, ResourceListResponse{Resources: resources})
}

func (api *resourceApi) deletedDefaults(ctx echo.Context) error {
	titles, err := api.svc.DeletedDefaultTitles(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying deleted defaults")
	}
	if titles == nil {
		titles = []string{}
	}
	return ctx.JSON(http.StatusOK, TitlesResponse{Titles: titles})
}

func (api *resourceApi) download(ctx echo.Context) error {
	res, err := api.svc.RecordDownload(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == resource.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "recording download")
	}
	return ctx.JSON(http.StatusOK, ResourceResponse{Resource: res})
}

func (api *resourceApi) destroy(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	// the deletion succeeds even when tombstone or audit writes fail
	_, err = api.svc.Delete(ctx.Request().Context(), ctx.Param("id"), usr)
	if err != nil {
		switch errors.Cause(err) {
		case resource.ErrNotFound:
			return errHttpNotFound
		case resource.ErrTeacherOnly:
			return echo.NewHTTPError(http.StatusForbidden, resource.ErrTeacherOnly.Error())
		}
		return errors.Wrap(err, "deleting resource")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Resource deleted successfully"})
}

// saveUpload stores the file under MediaRoot with a collision-proof name and
// returns the stored path.
func saveUpload(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(core.Conf.MediaRoot, 0o755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1e9), filepath.Ext(file.Filename))
	path := filepath.Join(core.Conf.MediaRoot, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", err
	}
	return path, nil
}

type (
	ResourceResponse struct {
		Message  string            `json:"message,omitempty"`
		Resource resource.Resource `json:"resource"`
	}

	ResourceListResponse struct {
		Resources []resource.Resource `json:"resources"`
	}

	TitlesResponse struct {
		Titles []string `json:"titles"`
	}
)
