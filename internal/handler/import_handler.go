package handler

import (
	"net/http"

	"github.com/dafibh/condo/condo-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// MaxImportSize caps uploaded reading workbooks
const MaxImportSize = 5 << 20

// ImportHandler handles spreadsheet imports
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportReadings handles POST /import/readings
// @Summary Import meter readings from an .xlsx workbook
// @Description Nothing is stored when any row is invalid
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Workbook"
// @Success 201 {object} service.ImportResult
// @Failure 400 {object} ProblemDetails
// @Router /import/readings [post]
func (h *ImportHandler) ImportReadings(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return invalidParam(c, "file", "file is required")
	}
	if fh.Size > MaxImportSize {
		return invalidParam(c, "file", "file exceeds 5MB")
	}
	f, err := fh.Open()
	if err != nil {
		log.Error().Err(err).Str("filename", fh.Filename).Msg("Failed to open upload")
		return NewInternalError(c, "Failed to read upload")
	}
	defer f.Close()

	result, err := h.importService.ImportReadings(c.Request().Context(), fh.Filename, f)
	if err != nil {
		return handleServiceError(c, err, "import readings")
	}
	return c.JSON(http.StatusCreated, result)
}
