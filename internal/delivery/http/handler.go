package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pantrylens/kitchen/internal/domain"
	"github.com/pantrylens/kitchen/internal/usecase"
	"go.uber.org/zap"
)

// ServiceName is reported by the health check
const ServiceName = "pantrylens-bff"

// Services bundles the use cases the handlers delegate to
type Services struct {
	Reconciliation  *usecase.ReconciliationService
	Recipes         *usecase.RecipeService
	Recommendations *usecase.RecommendationService
	Nutrition       *usecase.NutritionService
	Profile         *usecase.ProfileService
	Search          *usecase.IngredientSearcher
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	svc    Services
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates a new HTTP handler
func NewHandler(svc Services, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger.Named("http"), now: time.Now}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
		"version": "1.0.0",
	})
}

// errorResponse is the JSON body of every failed request
type errorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// statusFor maps an error from the use cases onto an HTTP status and a short code
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	default:
		return http.StatusBadGateway, "upstream_error"
	}
}

// respondError writes err as a JSON error body
func (h *Handler) respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	body := errorResponse{Error: err.Error(), Code: code}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		body.Fields = vErr.Fields
	}

	if status >= http.StatusInternalServerError {
		h.logger.Warn("request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, body)
}

// respond writes result, downgrading to 207 when err reports a partial success.
// Any other error is written with respondError.
func (h *Handler) respond(c *gin.Context, status int, result interface{}, err error) {
	var partial *domain.PartialSuccessError
	switch {
	case err == nil:
		c.JSON(status, result)
	case errors.As(err, &partial) && result != nil:
		h.logger.Warn("partial success",
			zap.String("path", c.FullPath()),
			zap.String("completed", partial.Completed),
			zap.String("failed", partial.Failed),
			zap.Error(partial.Err),
		)
		c.JSON(http.StatusMultiStatus, gin.H{
			"result":  result,
			"warning": err.Error(),
		})
	default:
		h.respondError(c, err)
	}
}

// invalid aborts with a 400 for a malformed path, query or body
func (h *Handler) invalid(c *gin.Context, field string, err error) {
	h.respondError(c, domain.NewValidationError(field, err.Error()))
}

// idParam parses a positive integer path parameter
func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}

// dateQuery parses the YYYY-MM-DD query parameter name, defaulting to today
func (h *Handler) dateQuery(c *gin.Context, name string) (time.Time, error) {
	today := h.now()
	raw := c.Query(name)
	if raw == "" {
		return today, nil
	}
	d, err := time.ParseInLocation(domain.DateLayout, raw, today.Location())
	if err != nil {
		return time.Time{}, domain.NewValidationError(name, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}
