package handler

import (
	"net/http"
	"strconv"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/apierror"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CustomerHandler struct{ svc service.CatalogService }

func NewCustomerHandler(svc service.CatalogService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// Search godoc
// @Summary Search customers by name, company or code
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text"
// @Param limit query int false "Max results (default 20)"
// @Success 200 {array} dto.CustomerResponse
// @Router /v1/customers [get]
func (h *CustomerHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	resp, err := h.svc.SearchCustomers(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Customer detail with wholesale status
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Router /v1/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid customer id"))
		return
	}
	resp, err := h.svc.GetCustomer(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
