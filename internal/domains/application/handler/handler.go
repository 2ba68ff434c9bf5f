package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"megheza-backend/internal/domains/application/model"
	"megheza-backend/internal/domains/application/service"
	"megheza-backend/internal/shared/response"
	"megheza-backend/pkg/dataurl"
	"megheza-backend/pkg/logger"
)

// maxRegisterBody bounds the whole registration request. It sits far above two
// base64 documents at the size ceiling, so an oversized file still reaches the
// validator and comes back as a field error.
const maxRegisterBody = 8 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// =====================================================
// APPLICATION HANDLER
// =====================================================

type ApplicationHandler struct {
	applicationService service.ServiceInterface
}

func NewApplicationHandler(applicationService service.ServiceInterface) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// Register accepts a journalist registration
// POST /api/register
func (h *ApplicationHandler) Register(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRegisterBody)

	sub, fields := h.bindSubmission(c)
	if fields != nil {
		response.Fields(c, http.StatusBadRequest, fields)
		return
	}

	app, err := h.applicationService.Register(c.Request.Context(), sub)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/admin/"+app.ID.String())
	response.JSON(c, http.StatusCreated, app)
}

// bindSubmission reads a JSON body, or a multipart form whose file parts are
// encoded into data URLs. A non-nil map is the error body to return.
func (h *ApplicationHandler) bindSubmission(c *gin.Context) (*model.Submission, map[string]string) {
	var sub model.Submission

	if strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
		if err := c.ShouldBind(&sub); err != nil {
			return nil, requestError(err)
		}
		for field, dst := range map[string]*string{
			model.FieldProfilePicture: &sub.ProfilePicture,
			model.FieldPressCard:      &sub.PressCard,
		} {
			header, err := c.FormFile(field)
			if errors.Is(err, http.ErrMissingFile) {
				continue
			}
			if err != nil {
				return nil, requestError(err)
			}
			encoded, err := encodePart(header)
			if err != nil {
				return nil, map[string]string{field: "Invalid file format for " + strings.ToLower(label(field))}
			}
			*dst = encoded
		}
		return &sub, nil
	}

	if err := c.ShouldBindJSON(&sub); err != nil {
		var langErr model.LanguagesTypeError
		if errors.As(err, &langErr) {
			return nil, map[string]string{"languages": langErr.Error()}
		}
		return nil, requestError(err)
	}
	return &sub, nil
}

func requestError(err error) map[string]string {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return map[string]string{"request": "Request body exceeds 8 MB limit"}
	}
	return map[string]string{"request": "Invalid request body"}
}

// encodePart reads at most one byte past the size ceiling so the validator
// still reports an oversized file as too large.
func encodePart(header *multipart.FileHeader) (string, error) {
	f, err := header.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, model.MaxDocumentBytes+1))
	if err != nil {
		return "", err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(data).String()
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", err
	}
	return dataurl.Encode(data, mediaType), nil
}

func label(field string) string {
	for _, r := range model.Rules {
		if r.Field == field {
			return r.Label
		}
	}
	return field
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// List returns every application, newest first
// GET /api/admin[?verified=true|false]
func (h *ApplicationHandler) List(c *gin.Context) {
	var filter model.ListFilter
	if raw, ok := c.GetQuery("verified"); ok {
		verified, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(c, "verified must be true or false")
			return
		}
		filter.Verified = &verified
	}

	apps, err := h.applicationService.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, apps)
}

// Get returns one application
// GET /api/admin/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	app, err := h.applicationService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, app)
}

// Verify sets the verified flag
// PATCH /api/admin/:id/verify
func (h *ApplicationHandler) Verify(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Verified == nil {
		response.BadRequest(c, "verified must be a boolean")
		return
	}

	result, err := h.applicationService.SetVerified(c.Request.Context(), id, *req.Verified)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message":  "Verification status updated",
		"verified": result.Verified,
	})
}

// Delete removes an application and its documents
// DELETE /api/admin/:id
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.applicationService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Application deleted"})
}

// Document serves a decoded document
// GET /api/admin/:id/documents/:field[?thumbnail=1]
func (h *ApplicationHandler) Document(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	thumbnail, _ := strconv.ParseBool(c.DefaultQuery("thumbnail", "false"))

	doc, err := h.applicationService.Document(c.Request.Context(), id, c.Param("field"), thumbnail)
	if err != nil {
		h.handleError(c, err)
		return
	}

	contentType, disposition := doc.MimeType, "inline"
	if !dataurl.Allowed(contentType, model.PressCardTypes) {
		contentType, disposition = "application/octet-stream", "attachment"
	}

	c.Header("Cache-Control", "private, no-store")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Content-Security-Policy", "sandbox; default-src 'none'")
	c.Header("Content-Disposition", fmt.Sprintf(`%s; filename="%s"`, disposition, c.Param("field")))
	c.Data(http.StatusOK, contentType, doc.Data)
}

// Export streams all applications as an XLSX workbook
// GET /api/admin/export
func (h *ApplicationHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.applicationService.Export(c.Request.Context(), &buf); err != nil {
		h.handleError(c, err)
		return
	}

	filename := fmt.Sprintf("applications-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// =====================================================
// HELPERS
// =====================================================

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidID, "Invalid application ID")
		return uuid.Nil, false
	}
	return id, true
}

// handleError maps service errors to HTTP responses. Internal detail is logged, never returned.
func (h *ApplicationHandler) handleError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	var appErr *model.ApplicationError

	switch {
	case errors.As(err, &validationErr):
		response.Fields(c, http.StatusBadRequest, validationErr.Fields)
	case errors.Is(err, model.ErrDuplicateEmail):
		response.Fields(c, http.StatusBadRequest, map[string]string{"email": model.MsgDuplicateEmail})
	case errors.Is(err, model.ErrApplicationNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeNotFound, "Application not found")
	case errors.Is(err, model.ErrUnknownDocument):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeUnknownDocument, "Unknown document")
	case errors.Is(err, model.ErrDocumentMissing):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeUnknownDocument, "Document not present")
	default:
		code := model.ErrCodeStoreUnavailable
		if errors.As(err, &appErr) {
			code = appErr.Code
		}
		logger.Error(c.Request.Method+" "+c.FullPath()+" failed", err)
		response.ErrorResponse(c, http.StatusInternalServerError, code, model.MsgStoreUnavailable)
	}
}
