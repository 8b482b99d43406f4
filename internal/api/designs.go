package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/apierr"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/page"
)

type saveDesignRequest struct {
	Name   string       `json:"name"`
	Blocks []page.Block `json:"blocks"`
}

func (h *Handler) SaveDesign(c *gin.Context) {
	var req saveDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apierr.New(http.StatusBadRequest, "invalid_input", err))
		return
	}
	if err := page.ValidateBlocks(req.Blocks); err != nil {
		h.fail(c, err)
		return
	}
	id, err := h.designs.Save(c.Request.Context(), req.Name, req.Blocks)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}

func (h *Handler) ListDesigns(c *gin.Context) {
	list, err := h.designs.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "designs": list})
}

func (h *Handler) LoadDesign(c *gin.Context) {
	d, err := h.designs.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "design": d})
}

func (h *Handler) DeleteDesign(c *gin.Context) {
	if err := h.designs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DuplicateDesign(c *gin.Context) {
	id, err := h.designs.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}
