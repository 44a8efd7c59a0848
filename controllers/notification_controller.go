package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pulse-api/models"
	"pulse-api/utils"
)

type NotificationController struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewNotificationController(db *gorm.DB, logger *zap.Logger) *NotificationController {
	return &NotificationController{db: db, logger: logger}
}

type NotificationsQuery struct {
	Page  int    `form:"page" binding:"omitempty,min=1"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=50"`
	Type  string `form:"type" binding:"omitempty,oneof=follow like comment"`
}

// GetNotifications gets paginated notifications for the current user
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")

	var query NotificationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.SendBindingError(c, err)
		return
	}
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 20
	}
	offset := (query.Page - 1) * query.Limit

	q := nc.db.Where("target_user_id = ?", userID)
	if query.Type != "" {
		q = q.Where("type = ?", query.Type)
	}

	var total int64
	if err := q.Model(&models.Notification{}).Count(&total).Error; err != nil {
		nc.logger.Error("failed to count notifications", zap.String("user", userID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	var notifications []models.Notification
	if err := q.Preload("ActorUser").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&notifications).Error; err != nil {
		nc.logger.Error("failed to fetch notifications", zap.String("user", userID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	responses := make([]models.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, notifications[i].ToResponse())
	}

	c.JSON(http.StatusOK, models.PaginatedNotifications{
		Notifications: responses,
		Page:          query.Page,
		Limit:         query.Limit,
		Total:         total,
		HasMore:       int64(offset+len(responses)) < total,
	})
}

// GetStats gets notification statistics (unread count, total count)
func (nc *NotificationController) GetStats(c *gin.Context) {
	userID := c.GetString("user_id")

	var unreadCount, totalCount int64

	if err := nc.db.Model(&models.Notification{}).
		Where("target_user_id = ? AND is_read = ?", userID, false).
		Count(&unreadCount).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch notification stats")
		return
	}

	if err := nc.db.Model(&models.Notification{}).
		Where("target_user_id = ?", userID).
		Count(&totalCount).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch notification stats")
		return
	}

	c.JSON(http.StatusOK, models.NotificationStats{
		UnreadCount: int(unreadCount),
		TotalCount:  int(totalCount),
	})
}

// MarkAsRead marks a notification as read
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	userID := c.GetString("user_id")
	notificationID := c.Param("id")

	result := nc.db.Model(&models.Notification{}).
		Where("id = ? AND target_user_id = ?", notificationID, userID).
		UpdateColumn("is_read", true)
	if result.Error != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	if result.RowsAffected == 0 {
		utils.SendError(c, http.StatusNotFound, "Notification not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllAsRead marks every unread notification of the caller as read
func (nc *NotificationController) MarkAllAsRead(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := nc.db.Model(&models.Notification{}).
		Where("target_user_id = ? AND is_read = ?", userID, false).
		UpdateColumn("is_read", true).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// CreateLikeNotification records a like event for the post author.
func (nc *NotificationController) CreateLikeNotification(actorUserID, targetUserID, postID string) error {
	return nc.create(models.Notification{
		ID:           utils.NewID(),
		Type:         models.NotificationTypeLike,
		ActorUserID:  actorUserID,
		TargetUserID: targetUserID,
		PostID:       &postID,
	})
}

// CreateFollowNotification records a follow event for the followed user.
func (nc *NotificationController) CreateFollowNotification(actorUserID, targetUserID string) error {
	return nc.create(models.Notification{
		ID:           utils.NewID(),
		Type:         models.NotificationTypeFollow,
		ActorUserID:  actorUserID,
		TargetUserID: targetUserID,
	})
}

// CreateCommentNotification records a comment event for the post author.
func (nc *NotificationController) CreateCommentNotification(actorUserID, targetUserID, postID, commentID string) error {
	return nc.create(models.Notification{
		ID:           utils.NewID(),
		Type:         models.NotificationTypeComment,
		ActorUserID:  actorUserID,
		TargetUserID: targetUserID,
		PostID:       &postID,
		CommentID:    &commentID,
	})
}

func (nc *NotificationController) create(notification models.Notification) error {
	return nc.db.Create(&notification).Error
}
