package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pulse-api/models"
	"pulse-api/utils"
)

type SearchController struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSearchController(db *gorm.DB, logger *zap.Logger) *SearchController {
	return &SearchController{db: db, logger: logger}
}

type SearchQuery struct {
	Query  string `form:"query" binding:"required,min=1,max=100"`
	Type   string `form:"type" binding:"omitempty,oneof=posts users hashtags"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=50"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

// Search does case-insensitive substring matching over posts, users or
// hashtags. Unlike the feed this endpoint pages by offset.
func (sc *SearchController) Search(c *gin.Context) {
	viewerID := c.GetString("user_id")

	var query SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.SendBindingError(c, err)
		return
	}
	if query.Type == "" {
		query.Type = "posts"
	}
	if query.Limit == 0 {
		query.Limit = 20
	}

	pattern := "%" + query.Query + "%"

	switch query.Type {
	case "users":
		var users []models.User
		if err := sc.db.
			Where("name LIKE ? OR username LIKE ? OR bio LIKE ?", pattern, pattern, pattern).
			Order("is_verified DESC").
			Order("follower_count DESC").
			Offset(query.Offset).Limit(query.Limit).
			Find(&users).Error; err != nil {
			sc.logger.Error("user search failed", zap.String("query", query.Query), zap.Error(err))
			utils.SendError(c, http.StatusInternalServerError, "Search failed")
			return
		}

		results := make([]models.SuggestedUser, 0, len(users))
		for i := range users {
			results = append(results, users[i].ToSuggested(sc.isFollowing(viewerID, users[i].ID)))
		}
		c.JSON(http.StatusOK, gin.H{"users": results})

	case "hashtags":
		var hashtags []models.Hashtag
		if err := sc.db.
			Where("name LIKE ?", pattern).
			Order("post_count DESC").
			Order("created_at DESC").
			Offset(query.Offset).Limit(query.Limit).
			Find(&hashtags).Error; err != nil {
			sc.logger.Error("hashtag search failed", zap.String("query", query.Query), zap.Error(err))
			utils.SendError(c, http.StatusInternalServerError, "Search failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"hashtags": hashtags})

	default: // posts
		var posts []models.Post
		if err := sc.db.Preload("Author").
			Where("published = ?", true).
			Where("content LIKE ?", pattern).
			Order("likes_count DESC").
			Order("created_at DESC").
			Offset(query.Offset).Limit(query.Limit).
			Find(&posts).Error; err != nil {
			sc.logger.Error("post search failed", zap.String("query", query.Query), zap.Error(err))
			utils.SendError(c, http.StatusInternalServerError, "Search failed")
			return
		}

		results := make([]models.PostResponse, 0, len(posts))
		for i := range posts {
			isLiked, isBookmarked := sc.viewerEdges(viewerID, posts[i].ID)
			results = append(results, posts[i].ToResponse(isLiked, isBookmarked))
		}
		c.JSON(http.StatusOK, gin.H{"posts": results})
	}
}

func (sc *SearchController) viewerEdges(viewerID, postID string) (isLiked, isBookmarked bool) {
	if viewerID == "" {
		return false, false
	}

	var like models.PostLike
	isLiked = sc.db.Where("post_id = ? AND user_id = ?", postID, viewerID).First(&like).Error == nil

	var bookmark models.PostBookmark
	isBookmarked = sc.db.Where("post_id = ? AND user_id = ?", postID, viewerID).First(&bookmark).Error == nil

	return isLiked, isBookmarked
}

func (sc *SearchController) isFollowing(viewerID, targetID string) bool {
	if viewerID == "" || viewerID == targetID {
		return false
	}
	var follow models.Follow
	return sc.db.Where("follower_id = ? AND following_id = ?", viewerID, targetID).First(&follow).Error == nil
}
