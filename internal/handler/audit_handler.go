package handler

import (
	"net/http"

	"github.com/tzakkar/UTECBUDGET/internal/service"
	"github.com/tzakkar/UTECBUDGET/pkg/pagination"
	"github.com/tzakkar/UTECBUDGET/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/audit-logs")
	{
		group.GET("", h.GetAuditLogs)
	}
}

// GetAuditLogs retrieves the mutation history, newest first
// @Summary      Get audit logs
// @Description  Lists budget mutations with before/after snapshots, optionally narrowed to one entity
// @Tags         audit
// @Produce      json
// @Param        entityType  query  string  false  "Entity type filter"
// @Param        entityId    query  string  false  "Entity id filter"
// @Param        page        query  int     false  "Page number (default 1)"
// @Param        limit       query  int     false  "Items per page (default 50)"
// @Success      200  {object}  response.Response{data=response.ListData}
// @Router       /api/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	params := pagination.Parse(c)

	logs, total, err := h.auditService.List(c.Request.Context(), c.Query("entityType"), c.Query("entityId"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to retrieve audit logs: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, logs, total, params.Page, params.Limit))
}
