package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/worklet-dev/worklet/db"
	"github.com/worklet-dev/worklet/internal/models"
	"github.com/worklet-dev/worklet/internal/tracking"
	"github.com/worklet-dev/worklet/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description" binding:"required"`
	EstimatedDuration string `json:"estimated_duration" binding:"required,hhmm"`
}

type GetProjectResponse struct {
	ID                uint   `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	EstimatedDuration string `json:"estimated_duration"`
	OwnerID           uint   `json:"owner_id"`
	TotalMinutes      int    `json:"total_minutes"`
	TotalDisplay      string `json:"total_display"`
}

type ToggleCollapseRequest struct {
	Collapsed *bool `json:"collapsed" binding:"required"`
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project := models.Project{
		Title:             body.Title,
		Description:       body.Description,
		EstimatedDuration: body.EstimatedDuration,
		OwnerID:           userID,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, GetProjectResponse{
		ID:                project.ID,
		Title:             project.Title,
		Description:       project.Description,
		EstimatedDuration: project.EstimatedDuration,
		OwnerID:           project.OwnerID,
		TotalDisplay:      tracking.FormatMinutes(0),
	})
}

func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	if err := db.DB.Where("owner_id = ?", userID).Order("created_at DESC").Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	durations, err := projectDurations(projects)

	if err != nil {
		log.Printf("Failed to aggregate project durations: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]GetProjectResponse, 0, len(projects))

	for _, project := range projects {
		total := durations[project.ID]

		response = append(response, GetProjectResponse{
			ID:                project.ID,
			Title:             project.Title,
			Description:       project.Description,
			EstimatedDuration: project.EstimatedDuration,
			OwnerID:           project.OwnerID,
			TotalMinutes:      total,
			TotalDisplay:      tracking.FormatMinutes(total),
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// projectDurations sums tracked minutes per project in one pass over the
// completed sessions of all listed projects.
func projectDurations(projects []models.Project) (map[uint]int, error) {
	if len(projects) == 0 {
		return map[uint]int{}, nil
	}

	ids := make([]uint, 0, len(projects))

	for _, project := range projects {
		ids = append(ids, project.ID)
	}

	var sessions []models.Session

	if err := db.DB.Where("project_id IN ? AND end_time IS NOT NULL", ids).Find(&sessions).Error; err != nil {
		return nil, err
	}

	durations := make(map[uint]int, len(projects))

	for _, s := range sessions {
		durations[s.ProjectID] += tracking.SessionMinutes(s)
	}

	return durations, nil
}

func DeleteProject(ctx *gin.Context) {
	var project models.Project

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

	if err := db.DB.Where("id = ? AND owner_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ToggleWeekCollapse persists a manual collapse toggle for one week group.
// Saved toggles win over the recency default on every later fetch.
func ToggleWeekCollapse(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	weekKey := ctx.Param("week_key")

	if _, err := tracking.ParseWeekKey(weekKey); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid week key"})
		return
	}

	var body ToggleCollapseRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
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

	var pref models.WeekPreference

	err = db.DB.Where("user_id = ? AND project_id = ?", userID, project.ID).First(&pref).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		pref = models.WeekPreference{
			UserID:    userID,
			ProjectID: project.ID,
			Collapsed: datatypes.JSONMap{},
		}
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load week preferences"})
		return
	}

	if pref.Collapsed == nil {
		pref.Collapsed = datatypes.JSONMap{}
	}

	pref.Collapsed[weekKey] = *body.Collapsed

	if err := db.DB.Save(&pref).Error; err != nil {
		log.Printf("Failed to save week preferences for project %d: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save week preferences"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
