package match

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	matchservice "github.com/leguplabs/pythia/internal/services/match"
	"github.com/leguplabs/pythia/pkg/models"
	"github.com/leguplabs/pythia/pkg/utils"
)

// Register registers match generation routes
func Register(g *echo.Group) {
	g.POST("", GenerateMatches)
	g.GET("/weights", GetWeights)
}

// GenerateMatches resolves the hint, ranks the investor pool, and returns the
// ordered match set
func GenerateMatches(c echo.Context) error {
	ctx := c.Request().Context()

	req, err := utils.BindRequest[models.RankRequest](c)
	if err != nil {
		return err
	}

	ctx, svc, err := ectoinject.GetContext[*matchservice.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	response, err := svc.Rank(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response)
}

// GetWeights returns the scoring weights currently in effect, for diagnostics
func GetWeights(c echo.Context) error {
	ctx := c.Request().Context()

	_, svc, err := ectoinject.GetContext[*matchservice.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	return c.JSON(http.StatusOK, svc.Weights())
}
