// internal/handlers/download-archive/handler.go
package downloadarchive

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	apperrors "dygs-jobs/internal/common/errors"
	"dygs-jobs/internal/common/logger"

	"github.com/gin-gonic/gin"
)

const (
	Route              = "/api/download"
	ContentType        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	AttachmentName     = "dygs-applications.xlsx"
	contentDisposition = `attachment; filename="` + AttachmentName + `"`
)

// Handler streams the applications workbook. The xlsx store replaces the
// file by rename, so an open handle always sees a complete workbook.
type Handler struct {
	path   string
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(path string, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"handler": "download-archive"})
	return &Handler{
		path:   path,
		errors: apperrors.NewErrorHandler(log),
		logger: log,
	}
}

func (h *Handler) Handle(c *gin.Context) {
	f, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.errors.Respond(c, apperrors.NewArchiveNotFoundError())
			return
		}
		h.errors.Respond(c, apperrors.NewInternalError(fmt.Sprintf("open archive: %v", err)))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.errors.Respond(c, apperrors.NewInternalError(fmt.Sprintf("stat archive: %v", err)))
		return
	}

	h.logger.Debug("streaming archive", map[string]interface{}{"bytes": info.Size()})
	c.DataFromReader(http.StatusOK, info.Size(), ContentType, f, map[string]string{
		"Content-Disposition": contentDisposition,
	})
}
