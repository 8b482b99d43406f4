package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/apierr"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/images"
)

type imageSearchRequest struct {
	Query    *string `json:"query"`
	Industry string  `json:"industry"`
	Count    int     `json:"count"`
}

// SearchImages serves both POST (JSON body) and GET (query string).
func (h *Handler) SearchImages(c *gin.Context) {
	var req imageSearchRequest
	if c.Request.Method == http.MethodGet {
		if q, ok := c.GetQuery("query"); ok {
			req.Query = &q
		}
		req.Industry = c.Query("industry")
		if n, err := strconv.Atoi(c.Query("count")); err == nil {
			req.Count = n
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apierr.BadRequest("El campo query es requerido y debe ser texto"))
		return
	}
	if req.Query == nil || strings.TrimSpace(*req.Query) == "" {
		h.fail(c, apierr.BadRequest("El campo query es requerido y debe ser texto"))
		return
	}

	count := req.Count
	if count <= 0 {
		count = images.DefaultCount
	}
	capped := count > images.MaxCount
	count = min(count, images.MaxCount)
	query := strings.TrimSpace(*req.Query)

	res := h.images.Resolve(c.Request.Context(), query, count, req.Industry)
	industry := req.Industry
	if industry == "" {
		industry = "general"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"images":   res.Images,
		"total":    len(res.Images),
		"query":    query,
		"industry": industry,
		"source":   res.Source,
		"count":    count,
		"capped":   capped,
	})
}
