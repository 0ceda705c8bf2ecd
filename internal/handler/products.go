package handler

import (
	"net/http"
	"strconv"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/apierror"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductHandler struct{ svc service.CatalogService }

func NewProductHandler(svc service.CatalogService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// Search godoc
// @Summary Search products by name, SKU or barcode
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text"
// @Param limit query int false "Max results (default 20)"
// @Success 200 {array} dto.ProductResponse
// @Router /v1/products [get]
func (h *ProductHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	resp, err := h.svc.SearchProducts(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one product by id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}
	resp, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PriceCheck godoc
// @Summary Public price check by barcode (kiosk displays)
// @Tags products
// @Produce json
// @Param barcode path string true "Barcode"
// @Success 200 {object} dto.PriceCheckResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/price/{barcode} [get]
func (h *ProductHandler) PriceCheck(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Barcode required"))
		return
	}
	resp, err := h.svc.PriceCheck(c.Request.Context(), barcode)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
