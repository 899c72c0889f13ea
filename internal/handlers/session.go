package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/worklet-dev/worklet/db"
	"github.com/worklet-dev/worklet/internal/models"
	"github.com/worklet-dev/worklet/internal/tracking"
	"github.com/worklet-dev/worklet/internal/utils"
	"gorm.io/gorm"
)

type EndSessionRequest struct {
	EndTime      time.Time `json:"endTime" binding:"required"`
	WasImportant *bool     `json:"wasImportant"`
	WasUrgent    *bool     `json:"wasUrgent"`
	Rating       *int      `json:"rating" binding:"required,min=1,max=5"`
	Notes        string    `json:"notes" binding:"required"`
}

type ProjectProgress struct {
	ID               uint          `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	EstimatedMinutes int           `json:"estimated_minutes"`
	TotalMinutes     int           `json:"total_minutes"`
	TotalDisplay     string        `json:"total_display"`
	Progress         float64       `json:"progress"`
	Band             tracking.Band `json:"band"`
}

type TimelineResponse struct {
	Project        ProjectProgress      `json:"project"`
	ActiveSessions []models.Session     `json:"active_sessions"`
	Weeks          []tracking.WeekGroup `json:"weeks"`
}

// StartSession opens a new session on a project. A project with a
// running session refuses a second start; the invariant holds at the
// endpoint, not just in the UI.
func StartSession(ctx *gin.Context) {
	projectIDStr := ctx.Query("projectId")

	if projectIDStr == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing projectId"})
		return
	}

	projectID, err := strconv.ParseUint(projectIDStr, 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid projectId"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND owner_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	var active models.Session

	err = db.DB.Where("project_id = ? AND end_time IS NULL", project.ID).First(&active).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Session already in progress"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check active session for project %d: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	session := models.Session{
		ProjectID: project.ID,
		StartTime: time.Now(),
	}

	if err := db.DB.Create(&session).Error; err != nil {
		log.Printf("Failed to start session for project %d: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	BroadcastRefresh(projectIDStr)

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// EndSession closes a running session and records the reflection fields.
// A session that does not exist, belongs to someone else, or has already
// ended reports not found rather than a generic failure.
func EndSession(ctx *gin.Context) {
	sessionIDStr := ctx.Query("sessionId")

	if sessionIDStr == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing sessionId"})
		return
	}

	sessionID, err := strconv.ParseUint(sessionIDStr, 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sessionId"})
		return
	}

	var body EndSessionRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var session models.Session

	if err := db.DB.Joins("JOIN projects ON projects.id = sessions.project_id").
		Where("sessions.id = ? AND projects.owner_id = ?", sessionID, userID).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve session"})
		}
		return
	}

	if session.EndTime != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Session not found or already ended"})
		return
	}

	if body.EndTime.Before(session.StartTime) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "endTime precedes session start"})
		return
	}

	notes := body.Notes
	session.EndTime = &body.EndTime
	session.WasImportant = body.WasImportant
	session.WasUrgent = body.WasUrgent
	session.ProductivityRating = body.Rating
	session.Notes = &notes

	if err := db.DB.Save(&session).Error; err != nil {
		log.Printf("Failed to end session %d: %v", session.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		return
	}

	BroadcastRefresh(strconv.FormatUint(uint64(session.ProjectID), 10))

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// GetTimeline returns everything the project detail view needs: progress
// against the estimate, running sessions, and past sessions grouped by
// week and day with per-bucket minute totals and collapse state.
func GetTimeline(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND owner_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	var sessions []models.Session

	if err := db.DB.Where("project_id = ?", project.ID).Order("start_time DESC").Find(&sessions).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sessions"})
		return
	}

	active, past := tracking.Partition(sessions)
	weeks := tracking.GroupSessions(past)
	tracking.ApplyCollapse(weeks, loadCollapseOverrides(userID, project.ID), time.Now())

	estimated, err := tracking.ParseEstimate(project.EstimatedDuration)

	if err != nil {
		// Rendering stays non-fatal on a malformed stored estimate.
		log.Printf("Project %d has malformed estimate %q", project.ID, project.EstimatedDuration)
		estimated = 0
	}

	total := tracking.TotalMinutes(past)
	percent := tracking.ProgressPercent(total, estimated)

	if active == nil {
		active = []models.Session{}
	}

	if weeks == nil {
		weeks = []tracking.WeekGroup{}
	}

	ctx.JSON(http.StatusOK, TimelineResponse{
		Project: ProjectProgress{
			ID:               project.ID,
			Title:            project.Title,
			Description:      project.Description,
			EstimatedMinutes: estimated,
			TotalMinutes:     total,
			TotalDisplay:     tracking.FormatMinutes(total),
			Progress:         percent,
			Band:             tracking.Classify(percent),
		},
		ActiveSessions: active,
		Weeks:          weeks,
	})
}

func loadCollapseOverrides(userID, projectID uint) map[string]bool {
	var pref models.WeekPreference

	if err := db.DB.Where("user_id = ? AND project_id = ?", userID, projectID).First(&pref).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to load week preferences for project %d: %v", projectID, err)
		}
		return nil
	}

	overrides := make(map[string]bool, len(pref.Collapsed))

	for key, value := range pref.Collapsed {
		if collapsed, ok := value.(bool); ok {
			overrides[key] = collapsed
		}
	}

	return overrides
}
