package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mmo-observer/mmo_uploader/analyzers"
	"github.com/mmo-observer/mmo_uploader/inits"
	"github.com/mmo-observer/mmo_uploader/middleware"
	"github.com/mmo-observer/mmo_uploader/models"
	"github.com/mmo-observer/mmo_uploader/validators"
)

const (
	serviceName    = "MMO – Material & Moisture Observer"
	serviceVersion = "0.1.0"
	noProject      = "(none)"
)

// RowLogger forwards one analysed upload to the external sheet.
type RowLogger interface {
	Log(ctx context.Context, payload models.LogPayload) error
}

type Handler struct {
	cfg       *inits.Config
	analyzer  analyzers.Analyzer
	logger    RowLogger
	startTime time.Time
}

func NewHandler(cfg *inits.Config, analyzer analyzers.Analyzer, logger RowLogger) *Handler {
	return &Handler{
		cfg:       cfg,
		analyzer:  analyzer,
		logger:    logger,
		startTime: time.Now(),
	}
}

func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
		"uptime":  time.Since(h.startTime).Truncate(time.Second).String(),
	})
}

func (h *Handler) Upload(c *gin.Context) {
	requestID := c.GetString(middleware.RequestIDKey)

	// A zero limit means uploads are unbounded. Otherwise leave room for the
	// multipart envelope and the project field.
	if h.cfg.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes+1<<20)
	}

	file, err := c.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: validators.ErrFileTooLarge.Error()})
			return
		}
		log.Printf("[upload %s] invalid multipart form: %v", requestID, err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid multipart form"})
		return
	}

	upload, err := validators.ValidateProcessUpload(models.UploadForm{
		File:    file,
		Project: c.PostForm("project"),
	}, h.cfg.MaxUploadBytes)
	if err != nil {
		var ctErr *validators.ContentTypeError
		switch {
		case errors.As(err, &ctErr), errors.Is(err, validators.ErrFileRequired):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		case errors.Is(err, validators.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: err.Error()})
		default:
			log.Printf("[upload %s] reading file: %v", requestID, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		}
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), upload.Content)
	if err != nil {
		log.Printf("[upload %s] analysis of %s failed: %v", requestID, upload.Filename, err)
		c.JSON(analysisStatus(err), models.AnalysisFailedResponse{
			Status: models.StatusAnalysisFailed,
			Error:  err.Error(),
		})
		return
	}

	if err := h.logger.Log(c.Request.Context(), models.NewLogPayload(upload, result)); err != nil {
		log.Printf("[upload %s] logging %s failed: %v", requestID, upload.Filename, err)
		c.JSON(http.StatusInternalServerError, models.LoggingFailedResponse{
			Status:   models.StatusLoggingFailed,
			Error:    err.Error(),
			AIResult: result,
		})
		return
	}

	project := upload.Project
	if project == "" {
		project = noProject
	}
	log.Printf("[upload %s] %s (%d bytes) analysed and logged", requestID, upload.Filename, len(upload.Content))
	c.HTML(http.StatusOK, "result.html", gin.H{
		"ImageName": upload.Filename,
		"Project":   project,
		"Summary":   result.Summary,
	})
}

func analysisStatus(err error) int {
	switch analyzers.KindOf(err) {
	case analyzers.KindUnsupportedImage:
		return http.StatusUnprocessableEntity
	case analyzers.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
