package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/studyshare/materials-api/internal/api/middleware"
	"github.com/studyshare/materials-api/internal/core/domain"
)

// ActivityPublisher enqueues audit events for asynchronous recording.
// Enqueueing never blocks request handling beyond channel capacity.
type ActivityPublisher interface {
	Enqueue(event domain.ActivityEvent)
}

// actorID returns the id of the authenticated actor, or "" on unauthenticated
// routes. Handlers use it for created_by/actor attribution only; access
// control itself is the middleware's job.
func actorID(c echo.Context) string {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return ""
	}
	return identity.ID
}
