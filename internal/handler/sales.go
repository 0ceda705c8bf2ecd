package handler

import (
	"net/http"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/apierror"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/dto"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/middleware"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SaleHandler struct{ svc service.SaleService }

func NewSaleHandler(svc service.SaleService) *SaleHandler { return &SaleHandler{svc: svc} }

// Complete godoc
// @Summary Complete a sale (items, discounts, tenders) atomically
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CompleteSaleRequest true "Cart and payments"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/sales [post]
func (h *SaleHandler) Complete(c *gin.Context) {
	var req dto.CompleteSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	cashierID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid user id in token"))
		return
	}

	resp, err := h.svc.CompleteSale(c.Request.Context(), cashierID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Void godoc
// @Summary Void a completed sale (supervisor)
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Param body body dto.VoidSaleRequest true "Void reason"
// @Success 200 {object} dto.SaleResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/sales/{id} [delete]
func (h *SaleHandler) Void(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid sale id"))
		return
	}
	var req dto.VoidSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	actorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.VoidSale(c.Request.Context(), saleID, req.Reason, actorID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one sale with items and payments.
func (h *SaleHandler) Get(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid sale id"))
		return
	}
	resp, err := h.svc.GetSale(c.Request.Context(), saleID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List returns sales filtered by session, date and status.
func (h *SaleHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query: "+err.Error()))
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
