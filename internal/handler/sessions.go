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

type SessionHandler struct{ svc service.SessionService }

func NewSessionHandler(svc service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Open godoc
// @Summary Open a register session
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.OpenSessionRequest true "Opening data"
// @Success 201 {object} dto.SessionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/sessions [post]
func (h *SessionHandler) Open(c *gin.Context) {
	var req dto.OpenSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	cashierID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid user id in token"))
		return
	}

	resp, err := h.svc.Open(c.Request.Context(), cashierID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close godoc
// @Summary Blind-close a register session
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body dto.CloseSessionRequest true "Declared amounts per bucket"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/sessions/{id}/close [post]
func (h *SessionHandler) Close(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid session id"))
		return
	}
	var req dto.CloseSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	actorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Close(c.Request.Context(), sessionID, actorID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ForceClose godoc
// @Summary Force-close a session without a cashier declaration (supervisor)
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body dto.ForceCloseRequest true "Reason"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/sessions/{id}/force-close [post]
func (h *SessionHandler) ForceClose(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid session id"))
		return
	}
	var req dto.ForceCloseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	actorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.ForceClose(c.Request.Context(), sessionID, actorID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns a single session by id.
func (h *SessionHandler) Get(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid session id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), sessionID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List returns sessions filtered by branch, register, cashier, status and date.
func (h *SessionHandler) List(c *gin.Context) {
	var filter dto.SessionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query: "+err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summary godoc
// @Summary Running totals for a session (supervisor only — not shown to the closing cashier)
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionSummaryResponse
// @Router /v1/sessions/{id}/summary [get]
func (h *SessionHandler) Summary(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid session id"))
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), sessionID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Mine returns the authenticated cashier's currently open session.
func (h *SessionHandler) Mine(c *gin.Context) {
	claims := middleware.GetClaims(c)
	cashierID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid user id in token"))
		return
	}
	resp, err := h.svc.MySession(c.Request.Context(), cashierID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("No open session"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
