package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pulse-api/models"
	"pulse-api/utils"
)

type ReportController struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewReportController(db *gorm.DB, logger *zap.Logger) *ReportController {
	return &ReportController{db: db, logger: logger}
}

type CreateReportRequest struct {
	UserID      *string `json:"user_id"`
	PostID      *string `json:"post_id"`
	CommentID   *string `json:"comment_id"`
	Reason      string  `json:"reason" binding:"required,oneof=spam harassment hate_speech violence misinformation inappropriate_content copyright other"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

func (rc *ReportController) CreateReport(c *gin.Context) {
	reporterID := c.GetString("user_id")

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindingError(c, err)
		return
	}

	targets := 0
	for _, id := range []*string{req.UserID, req.PostID, req.CommentID} {
		if id != nil {
			targets++
		}
	}
	if targets != 1 {
		utils.SendError(c, http.StatusBadRequest, "Must report exactly one of: user, post, or comment")
		return
	}

	report := models.Report{
		ID:             utils.NewID(),
		ReporterID:     reporterID,
		ReportedUserID: req.UserID,
		PostID:         req.PostID,
		CommentID:      req.CommentID,
		Reason:         models.ReportReason(req.Reason),
		Description:    req.Description,
	}

	if err := rc.db.Create(&report).Error; err != nil {
		rc.logger.Error("failed to create report", zap.String("reporter", reporterID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to submit report")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Report submitted successfully"})
}
