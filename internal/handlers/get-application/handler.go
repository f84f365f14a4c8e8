// internal/handlers/get-application/handler.go
package getapplication

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	apperrors "dygs-jobs/internal/common/errors"
	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/models"
	"dygs-jobs/internal/storage"

	"github.com/gin-gonic/gin"
)

const Route = "/api/applications"

type Handler struct {
	store   storage.Store
	timeout time.Duration
	errors  *apperrors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(store storage.Store, timeout time.Duration, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"handler": "get-application"})
	return &Handler{
		store:   store,
		timeout: timeout,
		errors:  apperrors.NewErrorHandler(log),
		logger:  log,
	}
}

func (h *Handler) Handle(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		h.errors.Respond(c, apperrors.NewMissingParameterError("id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	app, err := h.execute(ctx, id)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *Handler) execute(ctx context.Context, id string) (*models.Application, error) {
	app, err := h.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NewApplicationNotFoundError(id)
		}
		return nil, apperrors.NewStorageFailedError(err)
	}
	return app, nil
}
