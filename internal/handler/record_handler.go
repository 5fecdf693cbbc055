package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/service"
)

// RecordHandler handles the generic data endpoints.
type RecordHandler struct {
	records service.RecordService
}

// NewRecordHandler creates a new record handler.
func NewRecordHandler(records service.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

// Create persists a record with an optional single image.
func (h *RecordHandler) Create(c echo.Context) error {
	// image is optional: a missing file field or a non-multipart body both
	// mean no image.
	var file *multipart.FileHeader
	if fh, err := c.FormFile("image"); err == nil {
		file = fh
	}

	record, err := h.records.Create(
		c.Request().Context(),
		c.FormValue("title"),
		c.FormValue("description"),
		file,
	)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": record})
}

// List returns all records.
func (h *RecordHandler) List(c echo.Context) error {
	records, err := h.records.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": records})
}
