package handler

import (
	"errors"
	"net/http"

	"github.com/tzakkar/UTECBUDGET/internal/model"
	"github.com/tzakkar/UTECBUDGET/internal/repository"
	"github.com/tzakkar/UTECBUDGET/internal/service"
	"github.com/tzakkar/UTECBUDGET/pkg/response"

	"github.com/gin-gonic/gin"
)

// lookupTypes maps URL path segments to lookup dimensions.
var lookupTypes = map[string]string{
	"owners":       model.DimensionOwner,
	"departments":  model.DimensionDepartment,
	"locations":    model.DimensionLocation,
	"vendors":      model.DimensionVendor,
	"programs":     model.DimensionProgram,
	"projects":     model.DimensionProject,
	"cost-centers": model.DimensionCostCenter,
	"gls":          model.DimensionGL,
}

type LookupHandler struct {
	lookupService service.LookupService
}

func NewLookupHandler(lookupService service.LookupService) *LookupHandler {
	return &LookupHandler{lookupService: lookupService}
}

func (h *LookupHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/lookups")
	{
		group.GET("/:type", h.List)
		group.POST("/:type", h.Resolve)
	}
}

// List returns all entities of one lookup dimension
// @Summary      List lookup entities
// @Description  Lists owners, departments, locations, vendors, programs, projects, cost-centers or gls, ordered by name
// @Tags         lookups
// @Produce      json
// @Param        type    path   string  true   "Lookup type"  Enums(owners, departments, locations, vendors, programs, projects, cost-centers, gls)
// @Param        search  query  string  false  "Substring filter on name"
// @Success      200  {object}  response.Response{data=[]repository.LookupEntry}
// @Failure      404  {object}  response.Response
// @Router       /api/lookups/{type} [get]
func (h *LookupHandler) List(c *gin.Context) {
	dimension, ok := lookupTypes[c.Param("type")]
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Unknown lookup type"))
		return
	}

	entries, err := h.lookupService.List(c.Request.Context(), dimension, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

type resolveLookupRequest struct {
	Name string `json:"name" binding:"required"`
}

// Resolve finds or creates a lookup entity by name
// @Summary      Resolve a lookup entity
// @Description  Returns the id of the named entity, creating it on first reference
// @Tags         lookups
// @Accept       json
// @Produce      json
// @Param        type  path  string               true  "Lookup type"  Enums(owners, departments, locations, vendors, programs, projects, cost-centers, gls)
// @Param        body  body  resolveLookupRequest true  "Entity name"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/lookups/{type} [post]
func (h *LookupHandler) Resolve(c *gin.Context) {
	dimension, ok := lookupTypes[c.Param("type")]
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Unknown lookup type"))
		return
	}

	var req resolveLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	id, err := h.lookupService.Resolve(c.Request.Context(), dimension, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyLookupName) {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id, "name": req.Name}))
}
