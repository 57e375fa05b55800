package claims

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"claims-backend/internal/extract"
	"claims-backend/internal/shared/server/middleware"
	"claims-backend/internal/shared/server/respond"
	"claims-backend/internal/shared/util"
)

const maxDenialUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches claim routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/claims", h.create)
	rg.GET("/claims", h.list)
	rg.GET("/claims/:id", h.get)
	rg.POST("/claims/:id/analyze", h.analyze)
	rg.POST("/claims/:id/denial", h.recordDenial)
	rg.PATCH("/claims/:id/status", h.updateStatus)
}

type createClaimRequest struct {
	ClaimNumber    string   `json:"claimNumber"`
	PatientName    string   `json:"patientName"`
	PayerName      string   `json:"payerName"`
	ProviderName   string   `json:"providerName"`
	ProviderNPI    string   `json:"providerNpi"`
	FacilityName   string   `json:"facilityName"`
	PlanType       string   `json:"planType"`
	DiagnosisCodes []string `json:"diagnosisCodes"`
	ProcedureCodes []string `json:"procedureCodes"`
	BilledAmount   float64  `json:"billedAmount"`
	ServiceDate    string   `json:"serviceDate"`
	Notes          string   `json:"notes"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	serviceDate, err := parseDate(req.ServiceDate)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "serviceDate must be YYYY-MM-DD", nil)
		return
	}

	claim, err := h.Svc.Create(c.Request.Context(), userID, CreateInput{
		ClaimNumber:    req.ClaimNumber,
		PatientName:    req.PatientName,
		PayerName:      req.PayerName,
		ProviderName:   req.ProviderName,
		ProviderNPI:    req.ProviderNPI,
		FacilityName:   req.FacilityName,
		PlanType:       req.PlanType,
		DiagnosisCodes: req.DiagnosisCodes,
		ProcedureCodes: req.ProcedureCodes,
		BilledAmount:   req.BilledAmount,
		ServiceDate:    serviceDate,
		Notes:          req.Notes,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "claim_create_failed", "failed to create claim", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, claim)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "claim_list_failed", "failed to list claims", nil)
		return
	}
	respond.OK(c, gin.H{"claims": items})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	claim, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "claim not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "claim_get_failed", "failed to load claim", nil)
		return
	}
	respond.OK(c, claim)
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	assessment, err := h.Svc.Analyze(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "claim not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "claim_analyze_failed", "failed to analyze claim", nil)
		return
	}
	respond.OK(c, assessment)
}

// recordDenial accepts either a JSON body or a multipart form carrying the
// payer's denial letter. When a letter is uploaded and no reason is given,
// the extracted text is used as the denial reason.
func (h *Handler) recordDenial(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var reason, code, dateRaw string
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxDenialUploadSize)
		reason = c.PostForm("reason")
		code = c.PostForm("code")
		dateRaw = c.PostForm("denialDate")

		if fileHeader, err := c.FormFile("letter"); err == nil {
			fileName, err := util.SanitizeFileName(fileHeader.Filename)
			if err != nil {
				respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
				return
			}
			file, err := fileHeader.Open()
			if err != nil {
				respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read letter", nil)
				return
			}
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read letter", nil)
				return
			}
			text, err := extract.TextFromBytes(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileName)
			if err != nil {
				if errors.Is(err, extract.ErrUnsupported) {
					respond.Error(c, http.StatusBadRequest, "validation_error", "letter must be a PDF or DOCX file", nil)
					return
				}
				respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "unable to extract text from letter", nil)
				return
			}
			if strings.TrimSpace(reason) == "" {
				reason = text
			}
		}
	} else {
		var req struct {
			Reason     string `json:"reason"`
			Code       string `json:"code"`
			DenialDate string `json:"denialDate"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
		reason, code, dateRaw = req.Reason, req.Code, req.DenialDate
	}

	denialDate, err := parseDate(dateRaw)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "denialDate must be YYYY-MM-DD", nil)
		return
	}

	claim, err := h.Svc.RecordDenial(c.Request.Context(), userID, c.Param("id"), reason, code, denialDate)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "claim not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "denial_record_failed", "failed to record denial", nil)
		}
		return
	}
	respond.OK(c, claim)
}

func (h *Handler) updateStatus(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	claim, err := h.Svc.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "claim not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "status_update_failed", "failed to update status", nil)
		}
		return
	}
	respond.OK(c, claim)
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
