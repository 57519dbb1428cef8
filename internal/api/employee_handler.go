package api

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"staffhub/internal/dto/req"
	"staffhub/internal/media"
	"staffhub/internal/model"
	"staffhub/internal/repository"
	"staffhub/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ImageFormField is the multipart field carrying the avatar file.
const ImageFormField = "image"

type EmployeeProvider interface {
	Create(ctx context.Context, body req.CreateEmployeeRequest, image []byte) (*model.Employee, error)
	Get(ctx context.Context, id uint64) (*model.Employee, error)
	List(ctx context.Context, search string) ([]model.Employee, error)
	Update(ctx context.Context, id uint64, body req.UpdateEmployeeRequest, image []byte) (*model.Employee, error)
	Delete(ctx context.Context, id uint64) (*model.Employee, error)
	Health(ctx context.Context) error
}

type EmployeeHandler struct {
	service EmployeeProvider
	devMode bool
}

func NewEmployeeHandler(service EmployeeProvider, devMode bool) *EmployeeHandler {
	return &EmployeeHandler{service: service, devMode: devMode}
}

// readImageFile enforces the size cap before buffering the upload.
func readImageFile(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > media.MaxImageBytes {
		return nil, media.ErrImageTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *EmployeeHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, media.ErrUnsupportedImageType), errors.Is(err, media.ErrImageTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, media.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": "error uploading avatar to the media host"})
	default:
		logger.Error("employee request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		if h.devMode {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var body req.CreateEmployeeRequest
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fh, err := c.FormFile(ImageFormField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please attach an image file"})
		return
	}
	image, err := readImageFile(fh)
	if err != nil {
		h.writeError(c, err)
		return
	}

	emp, err := h.service.Create(c.Request.Context(), body, image)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, emp)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}

	emp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}

	var body req.UpdateEmployeeRequest
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Image is optional on edit; the stored one is kept when absent.
	var image []byte
	fh, err := c.FormFile(ImageFormField)
	switch {
	case err == nil:
		if image, err = readImageFile(fh); err != nil {
			h.writeError(c, err)
			return
		}
	case errors.Is(err, http.ErrMissingFile):
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emp, err := h.service.Update(c.Request.Context(), id, body, image)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}

	emp, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

func (h *EmployeeHandler) HealthCheck(c *gin.Context) {
	if err := h.service.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
