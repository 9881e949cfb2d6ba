package resolve

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/leguplabs/pythia/internal/services/match"
	"github.com/leguplabs/pythia/pkg/models"
	"github.com/leguplabs/pythia/pkg/utils"
)

// Register registers identity resolution routes
func Register(g *echo.Group) {
	g.POST("", ResolveHint)
}

// ResolveHint resolves an identity hint to a canonical startup profile
func ResolveHint(c echo.Context) error {
	ctx := c.Request().Context()

	req, err := utils.BindRequest[models.ResolveRequest](c)
	if err != nil {
		return err
	}

	ctx, svc, err := ectoinject.GetContext[*match.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	result, err := svc.Resolve(ctx, req.Hint)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
