package controllerImp

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"agro/pkg/dashboard/repository"
)

type DashCtrl struct{ repo repository.DashboardRepository }

func New(repo repository.DashboardRepository) *DashCtrl { return &DashCtrl{repo} }

func (h *DashCtrl) TotalProperties(c echo.Context) error {
	n, err := h.repo.TotalProperties(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"total_properties": n})
}

func (h *DashCtrl) TotalHectares(c echo.Context) error {
	ha, err := h.repo.TotalHectares(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]float64{"total_hectares": ha})
}

func (h *DashCtrl) ByState(c echo.Context) error {
	out, err := h.repo.ByState(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DashCtrl) ByCrop(c echo.Context) error {
	out, err := h.repo.ByCrop(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DashCtrl) LandUse(c echo.Context) error {
	lu, err := h.repo.LandUse(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, lu)
}

func (h *DashCtrl) Summary(c echo.Context) error {
	s, err := h.repo.Summary(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func fail(c echo.Context, err error) error {
	log.Printf("[dashboard] %s: %v", c.Path(), err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
