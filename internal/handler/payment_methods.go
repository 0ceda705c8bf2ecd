package handler

import (
	"net/http"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/apierror"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentMethodHandler struct{ svc service.CatalogService }

func NewPaymentMethodHandler(svc service.CatalogService) *PaymentMethodHandler {
	return &PaymentMethodHandler{svc: svc}
}

// List godoc
// @Summary Active payment methods ordered for the tender panel
// @Tags payment-methods
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PaymentMethodResponse
// @Router /v1/payment-methods [get]
func (h *PaymentMethodHandler) List(c *gin.Context) {
	resp, err := h.svc.ListPaymentMethods(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
