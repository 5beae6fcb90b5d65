package resumes

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/shared/server/respond"
	"resume-tailor/internal/shared/util"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/upload-resume", h.upload)
	r.POST("/analyze-resume", h.analyze)
	r.GET("/resume/:id", h.get)
	r.POST("/generate-pdf", h.generate)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if _, err := util.SanitizeFileName(fileHeader.Filename); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	rec, err := h.Svc.Ingest(c.Request.Context(), data, fileHeader.Filename, c.PostForm("title"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrExtraction):
			respond.Error(c, http.StatusBadRequest, "extraction_error", "unable to extract text from document", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store resume", nil)
		}
		return
	}

	c.Set("resumeId", rec.ID)
	respond.OK(c, UploadResponse{ID: rec.ID, ResumeText: rec.RawText})
}

func (h *Handler) analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "id is required", nil)
		return
	}
	if len(req.StructuredJSON) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "structured_json is required", nil)
		return
	}

	if err := h.Svc.Annotate(c.Request.Context(), req.ID, req.StructuredJSON); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save analysis", nil)
		}
		return
	}

	c.Set("resumeId", req.ID)
	respond.OK(c, AnalyzeResponse{Saved: true})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")

	rec, err := h.Svc.Retrieve(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		}
		return
	}

	c.Set("resumeId", rec.ID)
	respond.OK(c, rec)
}

func (h *Handler) generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	fileName, err := h.Svc.Render(c.Request.Context(), req.ID, req.TailoredText)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrRender):
			respond.Error(c, http.StatusInternalServerError, "render_error", "failed to generate document", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate document", nil)
		}
		return
	}

	c.Set("resumeId", req.ID)
	respond.OK(c, GenerateResponse{DownloadLink: downloadLink(c.Request, fileName)})
}

func downloadLink(req *http.Request, fileName string) string {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/files/%s", scheme, req.Host, fileName)
}
