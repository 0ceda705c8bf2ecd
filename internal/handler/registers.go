package handler

import (
	"net/http"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/apierror"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/dto"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RegisterHandler struct {
	svc        service.CatalogService
	sessionSvc service.SessionService
}

func NewRegisterHandler(svc service.CatalogService, sessionSvc service.SessionService) *RegisterHandler {
	return &RegisterHandler{svc: svc, sessionSvc: sessionSvc}
}

// Create godoc
// @Summary Create a register in a branch (admin)
// @Tags registers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateRegisterRequest true "Register data"
// @Success 201 {object} dto.RegisterResponse
// @Router /v1/registers [post]
func (h *RegisterHandler) Create(c *gin.Context) {
	var req dto.CreateRegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateRegister(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListByBranch godoc
// @Summary List active registers of a branch with their open session, if any
// @Tags registers
// @Produce json
// @Security BearerAuth
// @Param branch_id query string true "Branch ID"
// @Success 200 {array} dto.RegisterResponse
// @Router /v1/registers [get]
func (h *RegisterHandler) ListByBranch(c *gin.Context) {
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("branch_id query parameter required"))
		return
	}
	resp, err := h.svc.ListRegisters(c.Request.Context(), branchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActiveSession returns the open session on a register, or 404.
func (h *RegisterHandler) ActiveSession(c *gin.Context) {
	registerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid register id"))
		return
	}
	resp, err := h.sessionSvc.ActiveForRegister(c.Request.Context(), registerID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("No open session on this register"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
