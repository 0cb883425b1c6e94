package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/tzakkar/UTECBUDGET/internal/parser"
	"github.com/tzakkar/UTECBUDGET/internal/service"
	"github.com/tzakkar/UTECBUDGET/pkg/response"

	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	importService service.ImportService
}

func NewImportHandler(importService service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

func (h *ImportHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/budget/import")
	{
		group.POST("/preview", h.Preview)
		group.POST("/commit", h.Commit)
	}
}

func readUpload(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// parseMappings decodes the optional per-sheet mapping overrides. A payload
// that fails to decode is treated as absent rather than rejecting the upload.
func parseMappings(c *gin.Context) map[string]parser.ColumnMapping {
	raw := c.PostForm("customMappings")
	if raw == "" {
		return nil
	}
	var overrides map[string]parser.ColumnMapping
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		log.Printf("import: ignoring malformed customMappings: %v", err)
		return nil
	}
	return overrides
}

// Preview inspects an uploaded workbook without writing anything
// @Summary      Preview a budget import
// @Description  Parses the workbook and reports, per sheet, the inferred column mapping, sample rows and projected add/skip/conflict counts. No data is written.
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        file            formData  file    true   "Excel workbook (.xlsx)"
// @Param        customMappings  formData  string  false  "JSON object of sheet name to header-to-field mapping"
// @Success      200  {object}  response.Response{data=service.ImportPreview}
// @Failure      400  {object}  response.Response
// @Router       /api/budget/import/preview [post]
func (h *ImportHandler) Preview(c *gin.Context) {
	file, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Missing or unreadable file upload: "+err.Error()))
		return
	}

	preview, err := h.importService.Preview(c.Request.Context(), file, parseMappings(c))
	if err != nil {
		if errors.Is(err, parser.ErrUnreadableWorkbook) {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, preview))
}

// Commit imports an uploaded workbook into the budget store
// @Summary      Commit a budget import
// @Description  Upserts every importable row by natural key. Row-level failures are reported in the result and never abort the batch; re-uploading the same file updates items in place.
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        file            formData  file    true   "Excel workbook (.xlsx)"
// @Param        customMappings  formData  string  false  "JSON object of sheet name to header-to-field mapping"
// @Param        forceYear       formData  int     false  "Year applied to sheets whose name is not a year"
// @Success      200  {object}  response.Response{data=service.ImportResult}
// @Failure      400  {object}  response.Response
// @Router       /api/budget/import/commit [post]
func (h *ImportHandler) Commit(c *gin.Context) {
	file, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Missing or unreadable file upload: "+err.Error()))
		return
	}

	var forceYear *int
	if raw := c.PostForm("forceYear"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			forceYear = &year
		}
	}

	result, err := h.importService.Commit(c.Request.Context(), file, parseMappings(c), forceYear)
	if err != nil {
		if errors.Is(err, parser.ErrUnreadableWorkbook) {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	log.Printf("import: committed added=%d updated=%d errors=%d", result.Added, result.Updated, len(result.Errors))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
