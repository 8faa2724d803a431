package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyshare/materials-api/internal/api/metrics"
	"github.com/studyshare/materials-api/internal/core/domain"
	"github.com/studyshare/materials-api/internal/core/ports"
)

type SubjectHandler struct {
	service  ports.SubjectService
	activity ActivityPublisher
}

func NewSubjectHandler(service ports.SubjectService, activity ActivityPublisher) *SubjectHandler {
	return &SubjectHandler{service: service, activity: activity}
}

type createSubjectRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Create handles POST /subjects/create.
//
// @Summary      Create a subject
// @Tags         subjects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSubjectRequest  true  "Subject details"
// @Success      201   {object}  domain.Subject
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /subjects/create [post]
func (h *SubjectHandler) Create(c echo.Context) error {
	var req createSubjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	subject, err := h.service.Create(c.Request().Context(), req.Name, req.Description, actorID(c))
	if err != nil {
		return err
	}

	metrics.SubjectsCreatedTotal.Inc()
	h.activity.Enqueue(domain.ActivityEvent{
		EntityType: domain.EntitySubject,
		EntityID:   subject.ID,
		Action:     domain.ActionCreated,
		ActorID:    actorID(c),
	})

	return c.JSON(http.StatusCreated, subject)
}

// List handles GET /subjects and returns all subjects with material summaries.
//
// @Summary      List subjects with material summaries
// @Tags         subjects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.SubjectView
// @Failure      401  {object}  map[string]string
// @Router       /subjects [get]
func (h *SubjectHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Delete handles DELETE /subjects/:id, cascading over all referenced materials.
//
// @Summary      Delete a subject and its materials
// @Tags         subjects
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Subject id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /subjects/{id} [delete]
func (h *SubjectHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.SubjectsDeletedTotal.Inc()
	h.activity.Enqueue(domain.ActivityEvent{
		EntityType: domain.EntitySubject,
		EntityID:   id,
		Action:     domain.ActionDeleted,
		ActorID:    actorID(c),
	})

	return c.JSON(http.StatusOK, messageResponse{Message: "subject and associated materials deleted"})
}
