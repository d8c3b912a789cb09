package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/privatebanking/banking-system/internal/core/domain"
	"github.com/privatebanking/banking-system/internal/core/ports"
)

// ResourceHandler serves one resource kind. All four kinds share this
// handler and the generic service behind it; only the bound schema differs.
type ResourceHandler struct {
	service ports.ResourceService
	schema  domain.Schema
}

func NewResourceHandler(service ports.ResourceService, schema domain.Schema) *ResourceHandler {
	return &ResourceHandler{service: service, schema: schema}
}

// List handles GET /{kind}. No authentication required.
//
// @Summary      List all records of a kind
// @Tags         resources
// @Produce      json
// @Success      200  {array}   map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /{kind} [get]
func (h *ResourceHandler) List(c echo.Context) error {
	records, err := h.service.List(c.Request().Context(), h.schema)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Create handles POST /{kind}. Admin only.
//
// @Summary      Create a record
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      map[string]any  true  "Field values, primary key included"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /{kind} [post]
func (h *ResourceHandler) Create(c echo.Context) error {
	var payload domain.Record
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	record, err := h.service.Create(c.Request().Context(), h.schema, payload, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, record)
}

// Update handles PUT /{kind}/:id. Admin only.
//
// @Summary      Update a record by primary key
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Primary key"
// @Param        body  body      map[string]any  true  "Non-key field values"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /{kind}/{id} [put]
func (h *ResourceHandler) Update(c echo.Context) error {
	var payload domain.Record
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	record, err := h.service.Update(c.Request().Context(), h.schema, c.Param("id"), payload, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

// Delete handles DELETE /{kind}/:id. Admin only. Responds with a
// confirmation message naming the deleted key; the record itself is not
// echoed back.
//
// @Summary      Delete a record by primary key
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Primary key"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /{kind}/{id} [delete]
func (h *ResourceHandler) Delete(c echo.Context) error {
	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	key := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), h.schema, key, actor); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%s %s deleted", h.schema.Singular, key),
	})
}
