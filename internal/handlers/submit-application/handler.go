// internal/handlers/submit-application/handler.go
package submitapplication

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "dygs-jobs/internal/common/errors"
	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/common/metrics"
	"dygs-jobs/internal/common/observability"
	"dygs-jobs/internal/common/validation"
	"dygs-jobs/internal/models"
	"dygs-jobs/internal/resumes"
	"dygs-jobs/internal/storage"

	"github.com/gin-gonic/gin"
)

const Route = "/api/applications"

const cleanupTimeout = 5 * time.Second

// Dispatcher hands the saved application to the notification channel.
type Dispatcher interface {
	Dispatch(app *models.Application)
}

type Handler struct {
	config     *Config
	store      storage.Store
	objects    resumes.ObjectStore
	dispatcher Dispatcher
	policy     resumes.Policy
	ids        *IDGenerator
	obs        *observability.Observability
	errors     *apperrors.ErrorHandler
	logger     logger.Logger
}

// NewHandler wires the intake flow. objects may be nil, in which case the
// resume bytes are kept on the record.
func NewHandler(config *Config, store storage.Store, objects resumes.ObjectStore, dispatcher Dispatcher, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"handler": "submit-application"})
	return &Handler{
		config:     config,
		store:      store,
		objects:    objects,
		dispatcher: dispatcher,
		policy:     resumes.Policy{MaxBytes: config.MaxResumeBytes},
		ids:        NewIDGenerator(config.IDPrefix),
		obs:        obs,
		errors:     apperrors.NewErrorHandler(log),
		logger:     log,
	}
}

func (h *Handler) Handle(c *gin.Context) {
	start := time.Now()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.config.bodyLimit())

	input, upload, err := h.parse(c)
	if err != nil {
		h.fail(c, start, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, input, upload)
	if err != nil {
		h.fail(c, start, err)
		return
	}

	h.record(c.Request.Context(), start, StatusSuccess)
	c.JSON(http.StatusOK, output)
}

// parse binds the form fields and runs the resume through the upload policy.
func (h *Handler) parse(c *gin.Context) (*Input, *resumes.Upload, error) {
	var input Input
	if err := c.ShouldBind(&input); err != nil {
		return nil, nil, bodyError(err, h.config.MaxResumeBytes)
	}

	fh, err := c.FormFile("resume")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return &input, nil, nil
		}
		return nil, nil, bodyError(err, h.config.MaxResumeBytes)
	}

	upload, err := h.policy.Read(fh)
	switch {
	case errors.Is(err, resumes.ErrFileTooLarge):
		metrics.ResumesReceived.WithLabelValues(StatusRejected).Inc()
		return nil, nil, apperrors.NewFileTooLargeError(h.config.MaxResumeBytes)
	case errors.Is(err, resumes.ErrFileTypeNotAllowed):
		metrics.ResumesReceived.WithLabelValues(StatusRejected).Inc()
		return nil, nil, apperrors.NewInvalidFileError(err.Error())
	case err != nil:
		return nil, nil, apperrors.NewInternalError(err.Error())
	}
	metrics.ResumesReceived.WithLabelValues(StatusSuccess).Inc()
	return &input, upload, nil
}

func (h *Handler) execute(ctx context.Context, input *Input, upload *resumes.Upload) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewValidationError("input cannot be nil")
	}

	years, fieldErrs := validate(input)
	if len(fieldErrs) > 0 {
		result := validation.ValidationResult{Errors: fieldErrs}
		return nil, apperrors.NewValidationError(strings.Join(result.GetErrorMessages(), "; "))
	}

	now := time.Now().UTC()
	app := &models.Application{
		ApplicationID:   h.ids.Next(),
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Email:           input.Email,
		Phone:           input.Phone,
		Position:        input.Position,
		ExperienceYears: years,
		Education:       input.Education,
		Skills:          input.Skills,
		CoverLetter:     input.CoverLetter,
		Status:          models.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if upload != nil {
		app.Resume = &models.Resume{
			Filename:    upload.Filename,
			ContentType: upload.ContentType,
			Size:        upload.Size,
		}
		if h.objects != nil {
			key := resumes.ObjectKey(app.ApplicationID, upload.Filename)
			if err := h.objects.PutResume(ctx, key, upload); err != nil {
				return nil, apperrors.NewResumeUploadFailedError(err)
			}
			app.Resume.ObjectKey = key
		} else {
			app.Resume.Data = upload.Data
		}
	}

	if err := h.store.Save(ctx, app); err != nil {
		h.discardResume(ctx, app)
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, apperrors.NewDuplicateApplicationError(app.ApplicationID)
		}
		return nil, apperrors.NewStorageFailedError(err)
	}

	h.logger.Info("application saved", map[string]interface{}{
		"applicationId": app.ApplicationID,
		"position":      app.Position,
		"hasResume":     app.Resume != nil,
		"backend":       h.store.Backend(),
	})

	h.dispatcher.Dispatch(app)

	return &Output{
		Success:       true,
		ApplicationID: app.ApplicationID,
		Message:       SuccessMessage,
		LineOAURL:     h.config.LineOAURL,
	}, nil
}

// discardResume removes an uploaded resume whose record was never saved.
func (h *Handler) discardResume(ctx context.Context, app *models.Application) {
	if h.objects == nil || app.Resume == nil || app.Resume.ObjectKey == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := h.objects.DeleteResume(ctx, app.Resume.ObjectKey); err != nil {
		h.logger.Warn("orphaned resume left in object storage", map[string]interface{}{
			"applicationId": app.ApplicationID,
			"key":           app.Resume.ObjectKey,
			"error":         err.Error(),
		})
	}
}

func (h *Handler) fail(c *gin.Context, start time.Time, err error) {
	status := StatusFailed
	if apperrors.IsClientError(apperrors.Normalize(err).Code) {
		status = StatusRejected
	}
	h.record(c.Request.Context(), start, status)
	h.errors.Respond(c, err)
}

func (h *Handler) record(ctx context.Context, start time.Time, status string) {
	metrics.ApplicationsSubmitted.WithLabelValues(h.store.Backend(), status).Inc()
	h.obs.RecordSubmission(ctx, status)
	h.obs.RecordSubmissionDuration(ctx, time.Since(start), status)
}

// bodyError maps multipart parse failures; an oversized body surfaces as
// *http.MaxBytesError.
func bodyError(err error, limit int64) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperrors.NewFileTooLargeError(limit)
	}
	return apperrors.NewValidationError(fmt.Sprintf("malformed form body: %v", err))
}

// Execute runs the intake flow without HTTP framing.
func Execute(ctx context.Context, h *Handler, input *Input, upload *resumes.Upload) (*Output, error) {
	return h.execute(ctx, input, upload)
}
