package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillbridge/marketplace-go/dto"
	"github.com/skillbridge/marketplace-go/response"
	"github.com/skillbridge/marketplace-go/services"
)

// NegotiationHandler exposes the lifecycle transitions as plain
// request/response endpoints so the caller always learns whether a
// transition was accepted.
type NegotiationHandler struct {
	svc *services.NegotiationService
}

func NewNegotiationHandler(svc *services.NegotiationService) *NegotiationHandler {
	return &NegotiationHandler{svc: svc}
}

// POST /projects/:id/bids
func (h *NegotiationHandler) SubmitBid(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input dto.SubmitBidDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	bid, err := h.svc.SubmitBid(id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bid)
}

// GET /projects/:id/bids
func (h *NegotiationHandler) GetBids(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	bids, err := h.svc.ListBids(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bids)
}

// POST /projects/:id/assign
func (h *NegotiationHandler) Assign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input dto.AssignDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	project, err := h.svc.Assign(id, input.FreelancerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// POST /projects/:id/submission
func (h *NegotiationHandler) SubmitWork(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input dto.SubmitWorkDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	project, err := h.svc.SubmitWork(id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// POST /projects/:id/submission/approve
func (h *NegotiationHandler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	project, err := h.svc.Approve(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// POST /projects/:id/submission/reject
func (h *NegotiationHandler) Reject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	project, err := h.svc.Reject(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}
