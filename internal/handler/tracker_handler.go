package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/run-tracker-go/internal/models"
	"github.com/jengzang/run-tracker-go/internal/source"
	"github.com/jengzang/run-tracker-go/internal/tracker"
	"github.com/jengzang/run-tracker-go/pkg/response"
)

// TrackerHandler handles HTTP requests that drive the tracking session
type TrackerHandler struct {
	session *tracker.Session
	feed    *source.Feed // nil when fixes come from a replay source
}

// NewTrackerHandler creates a new tracker handler
func NewTrackerHandler(session *tracker.Session, feed *source.Feed) *TrackerHandler {
	return &TrackerHandler{
		session: session,
		feed:    feed,
	}
}

// Start handles POST /api/v1/tracker/start
func (h *TrackerHandler) Start(c *gin.Context) {
	if err := h.session.Start(); err != nil {
		response.Conflict(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"state": h.session.State(),
		"runId": h.session.RunID(),
	})
}

// Pause handles POST /api/v1/tracker/pause
func (h *TrackerHandler) Pause(c *gin.Context) {
	h.session.Pause()
	response.Success(c, gin.H{"state": h.session.State()})
}

// Finish handles POST /api/v1/tracker/finish
func (h *TrackerHandler) Finish(c *gin.Context) {
	saved := h.session.Finish()
	response.Success(c, gin.H{
		"state": h.session.State(),
		"saved": saved,
	})
}

// Status handles GET /api/v1/tracker/status
func (h *TrackerHandler) Status(c *gin.Context) {
	response.Success(c, gin.H{
		"state":          h.session.State(),
		"runId":          h.session.RunID(),
		"elapsedMs":      h.session.ElapsedTime().Milliseconds(),
		"distanceMeters": h.session.CurrentDistance(),
	})
}

// Fix handles POST /api/v1/tracker/fix. The body is one raw device fix; it is
// accepted into the feed regardless of session state, the session decides
// what to do with it.
func (h *TrackerHandler) Fix(c *gin.Context) {
	if h.feed == nil {
		response.Conflict(c, "Fix ingest is disabled while replaying fixtures")
		return
	}

	var fix models.Fix
	if err := c.ShouldBindJSON(&fix); err != nil {
		response.BadRequest(c, "Invalid fix payload")
		return
	}
	if fix.Accuracy < 0 {
		response.BadRequest(c, "Accuracy must be non-negative")
		return
	}

	h.feed.Push(fix)
	response.Accepted(c, nil)
}

type sensorErrorRequest struct {
	Type string `json:"type" binding:"required"`
}

// ReportError handles POST /api/v1/tracker/error. Devices report sensor
// trouble here; the session logs it and keeps the run alive.
func (h *TrackerHandler) ReportError(c *gin.Context) {
	if h.feed == nil {
		response.Conflict(c, "Error ingest is disabled while replaying fixtures")
		return
	}

	var req sensorErrorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Error type is required")
		return
	}

	var sensorErr error
	switch req.Type {
	case "permission-denied":
		sensorErr = tracker.ErrPermissionDenied
	case "unavailable":
		sensorErr = tracker.ErrUnavailable
	case "timeout":
		sensorErr = tracker.ErrTimeout
	default:
		response.BadRequest(c, "Unknown error type")
		return
	}

	h.feed.PushError(sensorErr)
	response.Accepted(c, nil)
}
