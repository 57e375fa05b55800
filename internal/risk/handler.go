package risk

import (
	"github.com/gin-gonic/gin"

	"claims-backend/internal/shared/server/respond"
)

// Handler exposes the risk-factor catalog for analytics dashboards.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches risk routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/risk-factors", h.listFactors)
}

func (h *Handler) listFactors(c *gin.Context) {
	respond.OK(c, gin.H{"factors": Catalog()})
}
