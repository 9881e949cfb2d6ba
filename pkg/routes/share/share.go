package share

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/leguplabs/pythia/internal/services/match"
	"github.com/leguplabs/pythia/pkg/models"
	"github.com/leguplabs/pythia/pkg/utils"
)

// Register registers share link routes
func Register(g *echo.Group) {
	g.POST("", CreateShare)
	g.GET("/:token", ViewShare)
}

// CreateShare mints a share token over a startup's latest match set
func CreateShare(c echo.Context) error {
	ctx := c.Request().Context()

	req, err := utils.BindRequest[models.CreateShareRequest](c)
	if err != nil {
		return err
	}

	ctx, svc, err := ectoinject.GetContext[*match.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	response, err := svc.CreateShare(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response)
}

// ViewShare serves the frozen view behind a share token
func ViewShare(c echo.Context) error {
	ctx := c.Request().Context()

	token := c.Param("token")
	if token == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "token path parameter is required")
	}

	ctx, svc, err := ectoinject.GetContext[*match.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	view, err := svc.ViewShare(ctx, token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}
