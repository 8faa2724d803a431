package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyshare/materials-api/internal/api/metrics"
	"github.com/studyshare/materials-api/internal/core/domain"
	"github.com/studyshare/materials-api/internal/core/ports"
)

type MaterialHandler struct {
	service  ports.MaterialService
	activity ActivityPublisher
}

func NewMaterialHandler(service ports.MaterialService, activity ActivityPublisher) *MaterialHandler {
	return &MaterialHandler{service: service, activity: activity}
}

type deleteMaterialRequest struct {
	SubjectID string `json:"subjectId" validate:"required"`
}

type urlResponse struct {
	URL string `json:"url"`
}

// Create handles POST /materials, a multipart form with fields title,
// subjectId, optional link, and an optional single file field "file".
//
// @Summary      Create a material (file upload and/or link)
// @Tags         materials
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        title      formData  string  true   "Material title"
// @Param        subjectId  formData  string  true   "Owning subject id"
// @Param        link       formData  string  false  "External link"
// @Param        file       formData  file    false  "File payload (max 10 MiB)"
// @Success      201  {object}  domain.Material
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /materials [post]
func (h *MaterialHandler) Create(c echo.Context) error {
	input := ports.CreateMaterialInput{
		Title:     c.FormValue("title"),
		SubjectID: c.FormValue("subjectId"),
		Link:      c.FormValue("link"),
		ActorID:   actorID(c),
	}

	fileHeader, err := c.FormFile("file")
	switch {
	case err == nil:
		if fileHeader.Size > domain.MaxUploadSize {
			// Reject before opening the part; no storage write happens.
			return fmt.Errorf("%w: file exceeds the %d byte limit", domain.ErrValidation, int64(domain.MaxUploadSize))
		}
		src, openErr := fileHeader.Open()
		if openErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable file payload")
		}
		defer src.Close()
		input.Upload = &ports.UploadInput{
			FileName: fileHeader.Filename,
			Size:     fileHeader.Size,
			Content:  src,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// Link-only create.
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
	}

	material, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}

	metrics.MaterialsCreatedTotal.WithLabelValues(materialKind(material)).Inc()
	if material.HasFile() {
		metrics.UploadBytes.Observe(float64(material.File.SizeBytes))
	}
	h.activity.Enqueue(domain.ActivityEvent{
		EntityType: domain.EntityMaterial,
		EntityID:   material.ID,
		Action:     domain.ActionCreated,
		ActorID:    actorID(c),
	})

	return c.JSON(http.StatusCreated, material)
}

// ListBySubject handles GET /materials/:subjectId.
//
// @Summary      List materials of a subject
// @Tags         materials
// @Produce      json
// @Security     BearerAuth
// @Param        subjectId  path  string  true  "Subject id"
// @Success      200  {array}   domain.Material
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /materials/{subjectId} [get]
func (h *MaterialHandler) ListBySubject(c echo.Context) error {
	materials, err := h.service.ListBySubject(c.Request().Context(), c.Param("subjectId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, materials)
}

// GetURL handles GET /materials/url/:id and resolves a download URL: the stored
// link for link-backed materials, a fresh presigned URL for file-backed ones.
//
// @Summary      Resolve a material's download URL
// @Tags         materials
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Material id"
// @Success      200  {object}  urlResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /materials/url/{id} [get]
func (h *MaterialHandler) GetURL(c echo.Context) error {
	url, err := h.service.GetURL(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.DownloadsTotal.WithLabelValues("url").Inc()
	return c.JSON(http.StatusOK, urlResponse{URL: url})
}

// Download handles GET /materials/download/:id and streams the blob back with
// an attachment disposition, mirroring a direct file download.
//
// @Summary      Download a file-backed material
// @Tags         materials
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id  path  string  true  "Material id"
// @Success      200  {file}    binary
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /materials/download/{id} [get]
func (h *MaterialHandler) Download(c echo.Context) error {
	result, err := h.service.Download(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	defer result.Content.Close()

	metrics.DownloadsTotal.WithLabelValues("stream").Inc()
	h.activity.Enqueue(domain.ActivityEvent{
		EntityType: domain.EntityMaterial,
		EntityID:   c.Param("id"),
		Action:     domain.ActionDownloaded,
		ActorID:    actorID(c),
	})

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.FileName))
	return c.Stream(http.StatusOK, result.ContentType, result.Content)
}

// Delete handles DELETE /materials/:id with body {subjectId}.
//
// @Summary      Delete a material
// @Tags         materials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "Material id"
// @Param        body  body  deleteMaterialRequest  true  "Owning subject"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /materials/{id} [delete]
func (h *MaterialHandler) Delete(c echo.Context) error {
	var req deleteMaterialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), id, req.SubjectID); err != nil {
		return err
	}

	metrics.MaterialsDeletedTotal.Inc()
	h.activity.Enqueue(domain.ActivityEvent{
		EntityType: domain.EntityMaterial,
		EntityID:   id,
		Action:     domain.ActionDeleted,
		ActorID:    actorID(c),
	})

	return c.JSON(http.StatusOK, messageResponse{Message: "material deleted successfully"})
}

func materialKind(m *domain.Material) string {
	switch {
	case m.HasFile() && m.Link != "":
		return "both"
	case m.HasFile():
		return "file"
	default:
		return "link"
	}
}
