package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/quotation-service/internal/card"
	"github.com/nurpe/quotation-service/internal/http/middleware"
	"github.com/nurpe/quotation-service/internal/model"
	"github.com/nurpe/quotation-service/internal/repository"
	"github.com/nurpe/quotation-service/internal/service"
	"github.com/nurpe/quotation-service/internal/submission"
	"github.com/nurpe/quotation-service/internal/wizard"
)

type TokenIssuer interface {
	Issue(sessionID uuid.UUID, ttl time.Duration) (string, error)
}

type Handler struct {
	quotations *service.QuotationService
	reference  *repository.ReferenceRepository
	cards      *card.Renderer
	tokens     TokenIssuer
	sessionTTL time.Duration
	maxUpload  int64
	log        zerolog.Logger
}

type HandlerOptions struct {
	SessionTTL     time.Duration
	MaxUploadBytes int64
}

func NewHandler(
	quotations *service.QuotationService,
	reference *repository.ReferenceRepository,
	cards *card.Renderer,
	tokens TokenIssuer,
	opts HandlerOptions,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		quotations: quotations,
		reference:  reference,
		cards:      cards,
		tokens:     tokens,
		sessionTTL: opts.SessionTTL,
		maxUpload:  opts.MaxUploadBytes,
		log:        log,
	}
}

func (h *Handler) Register(router *gin.Engine, sessionMiddleware gin.HandlerFunc) {
	router.GET("/health", h.health)
	router.POST("/cards/render", h.renderCard)

	api := router.Group("/api")
	api.GET("/reference", h.getReference)
	api.GET("/reference/cities", h.listCities)
	api.POST("/quotations", h.startQuotation)

	current := api.Group("/quotations/current")
	current.Use(sessionMiddleware)
	current.GET("", h.getQuotation)
	current.PATCH("/fields", h.updateField)
	current.POST("/files", h.uploadFiles)
	current.GET("/files/:index", h.downloadFile)
	current.DELETE("/files/:index", h.removeFile)
	current.POST("/next", h.next)
	current.POST("/back", h.back)
	current.POST("/submit", h.submit)
	current.POST("/reset", h.reset)
	current.GET("/summary.pdf", h.summaryPDF)
	current.GET("/summary.xlsx", h.summaryXLSX)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) renderCard(c *gin.Context) {
	var fields model.CardFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := h.cards.Render(&buf, fields); err != nil {
		h.handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) getReference(c *gin.Context) {
	c.JSON(http.StatusOK, h.reference.Reference())
}

func (h *Handler) listCities(c *gin.Context) {
	country := c.Query("country")
	if country == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "country is required"})
		return
	}
	cities, err := h.reference.CitiesByCountry(country)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown country"})
			return
		}
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"country": country, "cities": cities})
}

type startQuotationRequest struct {
	Locale string `json:"locale"`
}

type startQuotationResponse struct {
	Token     string      `json:"token"`
	SessionID uuid.UUID   `json:"session_id"`
	ExpiresAt time.Time   `json:"expires_at"`
	View      wizard.View `json:"view"`
}

func (h *Handler) startQuotation(c *gin.Context) {
	var req startQuotationRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Locale == "" {
		req.Locale = c.Query("locale")
	}

	sess, err := h.quotations.Start(c.Request.Context(), req.Locale, c.GetHeader("Accept-Language"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	token, err := h.tokens.Issue(sess.ID, h.sessionTTL)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, startQuotationResponse{
		Token:     token,
		SessionID: sess.ID,
		ExpiresAt: time.Now().Add(h.sessionTTL).UTC(),
		View:      sess.View,
	})
}

func (h *Handler) getQuotation(c *gin.Context) {
	h.withSession(c, func(id uuid.UUID) (*service.Session, error) {
		return h.quotations.Get(c.Request.Context(), id)
	})
}

// updateFieldRequest carries either a string value or a checkbox state.
type updateFieldRequest struct {
	Name    string  `json:"name" binding:"required"`
	Value   *string `json:"value"`
	Checked *bool   `json:"checked"`
}

func (h *Handler) updateField(c *gin.Context) {
	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (req.Value == nil) == (req.Checked == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of value or checked is required"})
		return
	}

	h.withSession(c, func(id uuid.UUID) (*service.Session, error) {
		if req.Checked != nil {
			return h.quotations.ToggleField(c.Request.Context(), id, req.Name, *req.Checked)
		}
		return h.quotations.ChangeField(c.Request.Context(), id, req.Name, *req.Value)
	})
}

func (h *Handler) uploadFiles(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	defer form.RemoveAll()

	headers := form.File["files"]
	attachments := make([]model.Attachment, 0, len(headers))
	for _, fh := range headers {
		content, err := readUpload(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("read %s: %v", fh.Filename, err)})
			return
		}
		attachments = append(attachments, model.Attachment{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        int64(len(content)),
			Source:      model.MemoryFile(content),
		})
	}

	h.withSession(c, func(id uuid.UUID) (*service.Session, error) {
		return h.quotations.AddFiles(c.Request.Context(), id, attachments)
	})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func (h *Handler) downloadFile(c *gin.Context) {
	id, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	index, ok := fileIndex(c)
	if !ok {
		return
	}

	download, err := h.quotations.DownloadFile(c.Request.Context(), id, index)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendDownload(c, download)
}

func (h *Handler) removeFile(c *gin.Context) {
	index, ok := fileIndex(c)
	if !ok {
		return
	}
	h.withSession(c, func(id uuid.UUID) (*service.Session, error) {
		return h.quotations.RemoveFile(c.Request.Context(), id, index)
	})
}

func (h *Handler) next(c *gin.Context) {
	h.withSession(c, func(id uuid.UUID) (*service.Session, error) {
		return h.quotations.Next(c.Request.Context(), id)
	})
}

func (h *Handler) back(c *gin.Context) {
	h.withSession(c, func(id uuid.UUID) (*service.Session, error) {
		return h.quotations.Back(c.Request.Context(), id)
	})
}

func (h *Handler) reset(c *gin.Context) {
	h.withSession(c, func(id uuid.UUID) (*service.Session, error) {
		return h.quotations.Reset(c.Request.Context(), id)
	})
}

func (h *Handler) submit(c *gin.Context) {
	id, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	sess, err := h.quotations.Submit(c.Request.Context(), id)
	if err != nil {
		var rejected *submission.RejectedError
		if errors.As(err, &rejected) {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":       rejected.Body,
				"status_code": rejected.StatusCode,
				"view":        viewOf(sess),
			})
			return
		}
		if errors.Is(err, submission.ErrTransport) {
			h.log.Warn().Err(err).Str("session_id", id.String()).Msg("quotation submission failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "view": viewOf(sess)})
			return
		}
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.View)
}

func (h *Handler) summaryPDF(c *gin.Context) {
	h.summary(c, h.quotations.SummaryPDF)
}

func (h *Handler) summaryXLSX(c *gin.Context) {
	h.summary(c, h.quotations.SummaryXLSX)
}

func (h *Handler) summary(c *gin.Context, build func(ctx context.Context, id uuid.UUID) (*service.Download, error)) {
	id, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	download, err := build(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendDownload(c, download)
}

func (h *Handler) sendDownload(c *gin.Context, download *service.Download) {
	c.Header("Content-Disposition", contentDisposition(download.FileName))
	c.Data(http.StatusOK, download.ContentType, download.Content)
}

func contentDisposition(name string) string {
	if value := mime.FormatMediaType("attachment", map[string]string{"filename": name}); value != "" {
		return value
	}
	return "attachment"
}

func (h *Handler) withSession(c *gin.Context, fn func(id uuid.UUID) (*service.Session, error)) {
	id, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	sess, err := fn(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.View)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var validationErr *wizard.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"step":   validationErr.Step,
			"fields": validationErr.Fields,
		})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrSubmissionInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		requestID := middleware.GetRequestID(c)
		h.log.Error().Err(err).Str("request_id", requestID).Str("path", c.FullPath()).Msg("request failed")
		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetTag("request_id", requestID)
		hub.CaptureException(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func fileIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file index"})
		return 0, false
	}
	return index, true
}

func viewOf(sess *service.Session) any {
	if sess == nil {
		return nil
	}
	return sess.View
}
