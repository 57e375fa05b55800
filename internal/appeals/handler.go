package appeals

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"claims-backend/internal/claims"
	"claims-backend/internal/shared/server/middleware"
	"claims-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches appeal-letter routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/claims/:id/appeal-letter", h.generate)
	rg.GET("/claims/:id/appeal-letters", h.list)
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	letter, err := h.Svc.GenerateForClaim(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, claims.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "claim not found", nil)
		case errors.Is(err, ErrNotDenied):
			respond.Error(c, http.StatusConflict, "not_denied", "claim has no recorded denial", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "letter_generate_failed", "failed to generate appeal letter", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, letter)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	letters, err := h.Svc.ListForClaim(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, claims.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "claim not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "letter_list_failed", "failed to list appeal letters", nil)
		return
	}
	respond.OK(c, gin.H{"letters": letters})
}
