package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tzakkar/UTECBUDGET/internal/model"
	"github.com/tzakkar/UTECBUDGET/internal/repository"
	"github.com/tzakkar/UTECBUDGET/internal/service"
	"github.com/tzakkar/UTECBUDGET/pkg/pagination"
	"github.com/tzakkar/UTECBUDGET/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BudgetHandler struct {
	budgetService service.BudgetService
}

func NewBudgetHandler(budgetService service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

func (h *BudgetHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/api/budget/items")
	{
		items.GET("", h.ListItems)
		items.POST("", h.CreateItem)
		items.GET("/:id", h.GetItem)
		items.PATCH("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
	}
}

// actorFrom names the requester for the audit trail. Without an identity
// layer the caller self-identifies via header, defaulting to "system".
func actorFrom(c *gin.Context) string {
	if actor := c.GetHeader("X-Actor"); actor != "" {
		return actor
	}
	return model.ActorSystem
}

// ListItems returns budget items matching the query filters
// @Summary      List budget items
// @Description  Retrieves budget items filtered by year, quarter, status, classification and dimension ids
// @Tags         budget
// @Produce      json
// @Param        year        query  int     false  "Fiscal year"
// @Param        quarter     query  int     false  "Quarter 1-4"
// @Param        status      query  string  false  "Status"
// @Param        type        query  string  false  "Type"
// @Param        subType     query  string  false  "Sub type"
// @Param        workClass   query  string  false  "Work class"
// @Param        category    query  string  false  "Category"
// @Param        ownerId     query  string  false  "Owner id"
// @Param        search      query  string  false  "Free-text search over name, category and notes"
// @Param        sortBy      query  string  false  "Sort column"
// @Param        sortOrder   query  string  false  "asc or desc"
// @Param        page        query  int     false  "Page number (default 1)"
// @Param        limit       query  int     false  "Items per page (default 50)"
// @Success      200  {object}  response.Response{data=response.ListData}
// @Router       /api/budget/items [get]
func (h *BudgetHandler) ListItems(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	quarter, _ := strconv.Atoi(c.Query("quarter"))
	filters := repository.ItemFilters{
		Year:         year,
		Quarter:      quarter,
		Status:       c.Query("status"),
		Type:         c.Query("type"),
		SubType:      c.Query("subType"),
		WorkClass:    c.Query("workClass"),
		Category:     c.Query("category"),
		OwnerID:      c.Query("ownerId"),
		DepartmentID: c.Query("departmentId"),
		LocationID:   c.Query("locationId"),
		VendorID:     c.Query("vendorId"),
		ProgramID:    c.Query("programId"),
		ProjectID:    c.Query("projectId"),
		Search:       c.Query("search"),
		SortBy:       c.Query("sortBy"),
		SortOrder:    c.Query("sortOrder"),
	}
	params := pagination.Parse(c)

	items, total, err := h.budgetService.List(c.Request.Context(), filters, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to list budget items: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, items, total, params.Page, params.Limit))
}

// CreateItem creates a budget item
// @Summary      Create a budget item
// @Description  Creates a line item. Budget defaults to capex+opex when omitted; remaining is derived from budget and spent.
// @Tags         budget
// @Accept       json
// @Produce      json
// @Param        item  body      service.CreateItemRequest  true  "Budget item"
// @Success      201   {object}  response.Response{data=model.BudgetItem}
// @Failure      400   {object}  response.Response
// @Router       /api/budget/items [post]
func (h *BudgetHandler) CreateItem(c *gin.Context) {
	var req service.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.budgetService.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// GetItem returns one budget item by id
// @Summary      Get a budget item
// @Tags         budget
// @Produce      json
// @Param        id   path      string  true  "Budget item id"
// @Success      200  {object}  response.Response{data=model.BudgetItem}
// @Failure      404  {object}  response.Response
// @Router       /api/budget/items/{id} [get]
func (h *BudgetHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid item id"))
		return
	}

	item, err := h.budgetService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// UpdateItem applies a partial update to a budget item
// @Summary      Update a budget item
// @Description  Applies the provided fields only. Setting replacedById or replacesItemId keeps the peer item's link in sync; an explicit null clears both sides.
// @Tags         budget
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Budget item id"
// @Param        item  body      service.UpdateItemRequest  true  "Fields to update"
// @Success      200   {object}  response.Response{data=model.BudgetItem}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /api/budget/items/{id} [patch]
func (h *BudgetHandler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid item id"))
		return
	}

	var req service.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.budgetService.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		case errors.Is(err, service.ErrLinkedItemNotFound),
			errors.Is(err, service.ErrYearOutOfRange),
			errors.Is(err, service.ErrInvalidStatus),
			errors.Is(err, service.ErrInvalidType),
			errors.Is(err, service.ErrInvalidSubType),
			errors.Is(err, service.ErrInvalidWorkClass):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// DeleteItem deletes a budget item
// @Summary      Delete a budget item
// @Description  Deletes the item and clears replacement links pointing at it
// @Tags         budget
// @Produce      json
// @Param        id   path      string  true  "Budget item id"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/budget/items/{id} [delete]
func (h *BudgetHandler) DeleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid item id"))
		return
	}

	if err := h.budgetService.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": id}))
}
