// internal/handlers/list-positions/handler.go
package listpositions

import (
	"context"
	"net/http"
	"time"

	apperrors "dygs-jobs/internal/common/errors"
	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/models"
	"dygs-jobs/internal/positions"

	"github.com/gin-gonic/gin"
)

const Route = "/api/positions"

type Handler struct {
	lister  positions.Lister
	timeout time.Duration
	errors  *apperrors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(lister positions.Lister, timeout time.Duration, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"handler": "list-positions", "source": lister.Source()})
	return &Handler{
		lister:  lister,
		timeout: timeout,
		errors:  apperrors.NewErrorHandler(log),
		logger:  log,
	}
}

func (h *Handler) Handle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	active, err := h.execute(ctx)
	if err != nil {
		h.errors.Respond(c, apperrors.NewPositionsFailedError(err))
		return
	}
	c.JSON(http.StatusOK, active)
}

func (h *Handler) execute(ctx context.Context) ([]models.Position, error) {
	active, err := h.lister.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		active = []models.Position{}
	}
	return active, nil
}
