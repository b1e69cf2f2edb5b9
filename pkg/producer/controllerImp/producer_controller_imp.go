package controllerImp

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agro/pkg/export"
	"agro/pkg/producer/controller"
	"agro/pkg/producer/service"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProducerCtrl struct {
	s          service.ProducerService
	exportPage int
}

func New(s service.ProducerService, exportPage int) controller.ProducerController {
	return &ProducerCtrl{s: s, exportPage: exportPage}
}

func (h *ProducerCtrl) Create(c echo.Context) error {
	var in service.ProducerInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	p, err := h.s.Create(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProducerCtrl) List(c echo.Context) error {
	var q service.ListQuery
	err := echo.QueryParamsBinder(c).
		Int("skip", &q.Skip).
		Int("limit", &q.Limit).
		String("tax_id", &q.TaxID).
		BindError()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "skip and limit must be integers"})
	}
	out, err := h.s.List(c.Request().Context(), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProducerCtrl) Get(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.s.Get(c.Request().Context(), uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProducerCtrl) Update(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var in service.ProducerInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	p, err := h.s.Update(c.Request().Context(), uint(id), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProducerCtrl) Delete(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.s.Delete(c.Request().Context(), uint(id)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProducerCtrl) Export(c echo.Context) error {
	all, err := export.CollectAll(c.Request().Context(), h.s, h.exportPage)
	if err != nil {
		return fail(c, err)
	}
	var buf bytes.Buffer
	if err := export.WriteProducers(&buf, all); err != nil {
		return fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="producers.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		log.Printf("[producer] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case service.IsValidation(err):
		log.Printf("[producer] rejected %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	log.Printf("[producer] %s %s failed: %v", c.Request().Method, c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
