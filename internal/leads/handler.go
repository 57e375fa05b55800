package leads

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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

// RegisterRoutes attaches the public lead-capture route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/leads", h.capture)
}

type captureRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

func (h *Handler) capture(c *gin.Context) {
	var req captureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	lead, err := h.Svc.Capture(c.Request.Context(), CaptureInput{
		Email:   req.Email,
		Name:    req.Name,
		Company: req.Company,
		Phone:   req.Phone,
		Message: req.Message,
		Source:  req.Source,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "lead_capture_failed", "failed to capture lead", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"id": lead.ID})
}
