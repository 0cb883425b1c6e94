package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tzakkar/UTECBUDGET/internal/repository"
	"github.com/tzakkar/UTECBUDGET/internal/service"
	"github.com/tzakkar/UTECBUDGET/pkg/response"

	"github.com/gin-gonic/gin"
)

type RollupHandler struct {
	rollupService service.RollupService
}

func NewRollupHandler(rollupService service.RollupService) *RollupHandler {
	return &RollupHandler{rollupService: rollupService}
}

func (h *RollupHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/budget/rollups")
	{
		group.GET("", h.GetRollups)
	}
}

// GetRollups returns aggregated budget figures
// @Summary      Get budget rollups
// @Description  Sums allocated, committed, spent and remaining across budget items, bucketed by the groupBy field, with an execution percentage per bucket
// @Tags         rollups
// @Produce      json
// @Param        groupBy  query  string  false  "Grouping field (default year)"  Enums(year, quarter, status, category, owner, department)
// @Param        year     query  int     false  "Fiscal year filter"
// @Param        quarter  query  int     false  "Quarter filter"
// @Success      200  {object}  response.Response{data=[]model.RollupRow}
// @Failure      400  {object}  response.Response
// @Router       /api/budget/rollups [get]
func (h *RollupHandler) GetRollups(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	quarter, _ := strconv.Atoi(c.Query("quarter"))

	rows, err := h.rollupService.Rollup(c.Request.Context(), c.Query("groupBy"), year, quarter)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownRollupGroup) {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}
