package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pulse-api/models"
	"pulse-api/utils"
)

type UserController struct {
	db                     *gorm.DB
	logger                 *zap.Logger
	notificationController *NotificationController
}

func NewUserController(db *gorm.DB, logger *zap.Logger, notificationController *NotificationController) *UserController {
	return &UserController{
		db:                     db,
		logger:                 logger,
		notificationController: notificationController,
	}
}

type ListUsersQuery struct {
	Search string `form:"search" binding:"omitempty,min=1,max=50"`
	Filter string `form:"filter" binding:"omitempty,oneof=all verified"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=50"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=50"`
	Username *string `json:"username" binding:"omitempty,min=3,max=20,alphanum_underscore"`
	Bio      *string `json:"bio" binding:"omitempty,max=160"`
	Location *string `json:"location" binding:"omitempty,max=50"`
	Website  *string `json:"website" binding:"omitempty,max=500,url_or_empty"`
}

func (uc *UserController) ListUsers(c *gin.Context) {
	var query ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.SendBindingError(c, err)
		return
	}
	if query.Limit == 0 {
		query.Limit = 20
	}

	q := uc.db.Model(&models.User{})
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		q = q.Where("name LIKE ? OR username LIKE ?", pattern, pattern)
	}
	if query.Filter == "verified" {
		q = q.Where("is_verified = ?", true)
	}

	var users []models.User
	if err := q.Order("is_verified DESC").
		Order("follower_count DESC").
		Order("created_at DESC").
		Offset(query.Offset).Limit(query.Limit).
		Find(&users).Error; err != nil {
		uc.logger.Error("failed to list users", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	summaries := make([]models.SuggestedUser, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].ToSuggested(false))
	}

	c.JSON(http.StatusOK, gin.H{"users": summaries})
}

// GetUser returns a public profile. The email field is present only when the
// viewer is the profile owner. The id "me" resolves to the caller and
// requires authentication.
func (uc *UserController) GetUser(c *gin.Context) {
	viewerID := c.GetString("user_id")
	targetID := c.Param("id")

	if targetID == "me" {
		if viewerID == "" {
			utils.SendError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		targetID = viewerID
	}

	var user models.User
	if err := uc.db.First(&user, "id = ?", targetID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToProfile(viewerID, uc.isFollowing(viewerID, targetID))})
}

func (uc *UserController) UpdateMe(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindingError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}

	if len(updates) > 0 {
		err := uc.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
		if err != nil {
			// The unique index on username is the authority; a pre-check
			// would race with concurrent claims.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				utils.SendError(c, http.StatusConflict, "Username already taken")
				return
			}
			uc.logger.Error("failed to update profile", zap.String("user", userID), zap.Error(err))
			utils.SendError(c, http.StatusInternalServerError, "Failed to update profile")
			return
		}
	}

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToProfile(userID, false)})
}

// ToggleFollow flips the follow edge from the caller to the target user.
// The edge row and both endpoint counters commit in a single transaction.
func (uc *UserController) ToggleFollow(c *gin.Context) {
	userID := c.GetString("user_id")
	targetID := c.Param("id")

	if userID == targetID {
		utils.SendError(c, http.StatusBadRequest, "Cannot follow yourself")
		return
	}

	var target models.User
	if err := uc.db.First(&target, "id = ?", targetID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	var existing models.Follow
	following := uc.db.Where("follower_id = ? AND following_id = ?", userID, targetID).First(&existing).Error == nil

	var err error
	if following {
		err = uc.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.User{}).Where("id = ?", userID).
				UpdateColumn("following_count", gorm.Expr("CASE WHEN following_count < 1 THEN 0 ELSE following_count - 1 END")).Error; err != nil {
				return err
			}
			return tx.Model(&models.User{}).Where("id = ?", targetID).
				UpdateColumn("follower_count", gorm.Expr("CASE WHEN follower_count < 1 THEN 0 ELSE follower_count - 1 END")).Error
		})
	} else {
		err = uc.db.Transaction(func(tx *gorm.DB) error {
			follow := models.Follow{FollowerID: userID, FollowingID: targetID}
			if err := tx.Create(&follow).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.User{}).Where("id = ?", userID).
				UpdateColumn("following_count", gorm.Expr("following_count + ?", 1)).Error; err != nil {
				return err
			}
			return tx.Model(&models.User{}).Where("id = ?", targetID).
				UpdateColumn("follower_count", gorm.Expr("follower_count + ?", 1)).Error
		})
	}
	if err != nil {
		uc.logger.Error("follow toggle failed",
			zap.String("actor", userID), zap.String("target", targetID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to update follow")
		return
	}

	if following {
		c.JSON(http.StatusOK, gin.H{"message": "Unfollowed successfully", "is_following": false})
		return
	}

	if err := uc.notificationController.CreateFollowNotification(userID, targetID); err != nil {
		uc.logger.Warn("failed to create follow notification",
			zap.String("actor", userID), zap.String("target", targetID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Followed successfully", "is_following": true})
}

func (uc *UserController) GetFollowers(c *gin.Context) {
	targetID := c.Param("id")

	var follows []models.Follow
	if err := uc.db.Preload("Follower").Where("following_id = ?", targetID).
		Order("created_at DESC").Find(&follows).Error; err != nil {
		uc.logger.Error("failed to get followers", zap.String("user", targetID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to get followers")
		return
	}

	followers := make([]models.AuthorSummary, 0, len(follows))
	for i := range follows {
		followers = append(followers, follows[i].Follower.ToAuthorSummary())
	}

	c.JSON(http.StatusOK, gin.H{"users": followers})
}

func (uc *UserController) GetFollowing(c *gin.Context) {
	targetID := c.Param("id")

	var follows []models.Follow
	if err := uc.db.Preload("Following").Where("follower_id = ?", targetID).
		Order("created_at DESC").Find(&follows).Error; err != nil {
		uc.logger.Error("failed to get following", zap.String("user", targetID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to get following")
		return
	}

	following := make([]models.AuthorSummary, 0, len(follows))
	for i := range follows {
		following = append(following, follows[i].Following.ToAuthorSummary())
	}

	c.JSON(http.StatusOK, gin.H{"users": following})
}

func (uc *UserController) isFollowing(viewerID, targetID string) bool {
	if viewerID == "" || viewerID == targetID {
		return false
	}
	var follow models.Follow
	return uc.db.Where("follower_id = ? AND following_id = ?", viewerID, targetID).First(&follow).Error == nil
}
