package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pulse-api/models"
	"pulse-api/services"
	"pulse-api/utils"
)

type TrendingController struct {
	db     *gorm.DB
	logger *zap.Logger
	cache  *services.TrendingCache
}

func NewTrendingController(db *gorm.DB, logger *zap.Logger, cache *services.TrendingCache) *TrendingController {
	return &TrendingController{db: db, logger: logger, cache: cache}
}

// GetTrending returns the top hashtags plus up to five suggested users the
// viewer does not already follow. The anonymous shapes are cached in redis
// for a minute; per-viewer suggestions are always computed live.
func (tc *TrendingController) GetTrending(c *gin.Context) {
	viewerID := c.GetString("user_id")
	ctx := c.Request.Context()

	var hashtags []models.Hashtag
	if !tc.cache.GetHashtags(ctx, &hashtags) {
		if err := tc.db.Order("post_count DESC").Order("updated_at DESC").
			Limit(10).Find(&hashtags).Error; err != nil {
			tc.logger.Error("failed to fetch trending hashtags", zap.Error(err))
			utils.SendError(c, http.StatusInternalServerError, "Failed to fetch trending")
			return
		}
		if err := tc.cache.SetHashtags(ctx, hashtags); err != nil {
			tc.logger.Warn("failed to cache trending hashtags", zap.Error(err))
		}
	}

	suggested, err := tc.suggestedUsers(c, viewerID)
	if err != nil {
		tc.logger.Error("failed to fetch suggested users", zap.String("viewer", viewerID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch trending")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hashtags":        hashtags,
		"suggested_users": suggested,
	})
}

func (tc *TrendingController) suggestedUsers(c *gin.Context, viewerID string) ([]models.SuggestedUser, error) {
	ctx := c.Request.Context()

	if viewerID == "" {
		var cached []models.SuggestedUser
		if tc.cache.GetSuggestedUsers(ctx, &cached) {
			return cached, nil
		}
	}

	q := tc.db.Model(&models.User{})
	if viewerID != "" {
		followedIDs := tc.db.Model(&models.Follow{}).
			Select("following_id").
			Where("follower_id = ?", viewerID)
		q = q.Where("id != ?", viewerID).Where("id NOT IN (?)", followedIDs)
	}

	var users []models.User
	if err := q.Order("is_verified DESC").
		Order("follower_count DESC").
		Order("created_at DESC").
		Limit(5).Find(&users).Error; err != nil {
		return nil, err
	}

	suggested := make([]models.SuggestedUser, 0, len(users))
	for i := range users {
		// Suggestions exclude followed accounts, so is_following is always false.
		suggested = append(suggested, users[i].ToSuggested(false))
	}

	if viewerID == "" {
		if err := tc.cache.SetSuggestedUsers(ctx, suggested); err != nil {
			tc.logger.Warn("failed to cache suggested users", zap.Error(err))
		}
	}

	return suggested, nil
}
