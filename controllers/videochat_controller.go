package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pulse-api/models"
	"pulse-api/utils"
)

type VideoChatController struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewVideoChatController(db *gorm.DB, logger *zap.Logger) *VideoChatController {
	return &VideoChatController{db: db, logger: logger}
}

type CreateVideoChatSessionRequest struct {
	Preferences *models.VideoChatPreferences `json:"preferences"`
}

// CreateSession records a new session row for the caller. Matching and
// signaling happen elsewhere; this only tracks who asked to be paired.
func (vc *VideoChatController) CreateSession(c *gin.Context) {
	userID := c.GetString("user_id")

	// Body is optional; an empty request means no preferences.
	var req CreateVideoChatSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendBindingError(c, err)
			return
		}
	}

	participants, err := json.Marshal([]models.VideoChatParticipant{{
		UserID:      userID,
		JoinedAt:    time.Now(),
		IsAnonymous: true,
		Preferences: req.Preferences,
	}})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create session")
		return
	}

	session := models.VideoChatSession{
		ID:           utils.NewID(),
		SessionID:    fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), utils.NewID()[:8]),
		Participants: string(participants),
		IsActive:     true,
	}

	if err := vc.db.Create(&session).Error; err != nil {
		vc.logger.Error("failed to create video chat session", zap.String("user", userID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to create session")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

func (vc *VideoChatController) GetSessions(c *gin.Context) {
	var sessions []models.VideoChatSession
	if err := vc.db.Where("is_active = ?", true).
		Order("created_at DESC").Limit(10).Find(&sessions).Error; err != nil {
		vc.logger.Error("failed to fetch video chat sessions", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch sessions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
