package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pulse-api/models"
	"pulse-api/utils"
)

type PostController struct {
	db                     *gorm.DB
	logger                 *zap.Logger
	notificationController *NotificationController
}

func NewPostController(db *gorm.DB, logger *zap.Logger, notificationController *NotificationController) *PostController {
	return &PostController{
		db:                     db,
		logger:                 logger,
		notificationController: notificationController,
	}
}

type CreatePostRequest struct {
	Content string   `json:"content" binding:"required,min=1,max=280"`
	Images  []string `json:"images" binding:"omitempty,max=4,dive,url"`
}

type FeedQuery struct {
	Type   string `form:"type" binding:"omitempty,oneof=following trending latest"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=50"`
	Cursor string `form:"cursor"`
}

// GetFeed lists posts under one of three selection modes. Cursor pagination
// uses the last returned id as an exclusive upper bound; ids are
// creation-ordered, so this is exact for following/latest. For trending the
// sort key is not the id and pages can skip rows, a known limitation.
func (pc *PostController) GetFeed(c *gin.Context) {
	viewerID := c.GetString("user_id")

	var query FeedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.SendBindingError(c, err)
		return
	}
	if query.Type == "" {
		query.Type = "following"
	}
	if query.Limit == 0 {
		query.Limit = 20
	}

	q := pc.db.Model(&models.Post{}).Preload("Author").Where("published = ?", true)

	switch query.Type {
	case "following":
		if viewerID == "" {
			// Anonymous callers have no follow graph; the feed is empty.
			c.JSON(http.StatusOK, models.FeedResponse{Posts: []models.PostResponse{}, NextCursor: nil})
			return
		}
		followedIDs := pc.db.Model(&models.Follow{}).
			Select("following_id").
			Where("follower_id = ?", viewerID)
		q = q.Where("author_id = ? OR author_id IN (?)", viewerID, followedIDs)
		q = q.Order("created_at DESC").Order("id DESC")
	case "trending":
		q = q.Order("likes_count DESC").
			Order("comments_count DESC").
			Order("shares_count DESC").
			Order("created_at DESC")
	default: // latest
		q = q.Order("created_at DESC").Order("id DESC")
	}

	if query.Cursor != "" {
		q = q.Where("id < ?", query.Cursor)
	}

	var posts []models.Post
	if err := q.Limit(query.Limit).Find(&posts).Error; err != nil {
		pc.logger.Error("failed to fetch feed",
			zap.String("type", query.Type), zap.String("viewer", viewerID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, models.FeedResponse{
		Posts:      pc.enrichPosts(viewerID, posts),
		NextCursor: nextCursor(posts, query.Limit),
	})
}

func (pc *PostController) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindingError(c, err)
		return
	}

	post := models.Post{
		ID:        utils.NewID(),
		AuthorID:  userID,
		Content:   req.Content,
		Images:    models.StringSlice(req.Images),
		Published: true,
	}

	// The post row and the author's post_count move together.
	err := pc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("post_count", gorm.Expr("post_count + ?", 1)).Error
	})
	if err != nil {
		pc.logger.Error("failed to create post", zap.String("author", userID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to create post")
		return
	}

	pc.db.Preload("Author").First(&post, "id = ?", post.ID)

	c.JSON(http.StatusCreated, gin.H{"post": post.ToResponse(false, false)})
}

func (pc *PostController) GetPost(c *gin.Context) {
	viewerID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.Preload("Author").First(&post, "id = ?", postID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	isLiked, isBookmarked := pc.viewerEdges(viewerID, postID)
	c.JSON(http.StatusOK, gin.H{"post": post.ToResponse(isLiked, isBookmarked)})
}

func (pc *PostController) DeletePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.First(&post, "id = ? AND author_id = ?", postID, userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found or access denied")
		return
	}

	err := pc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostBookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&post).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("post_count", gorm.Expr("CASE WHEN post_count < 1 THEN 0 ELSE post_count - 1 END")).Error
	})
	if err != nil {
		pc.logger.Error("failed to delete post",
			zap.String("post", postID), zap.String("author", userID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// ToggleLike flips the like edge for the caller. Edge row and likes_count
// commit in a single transaction, so a failure leaves neither changed.
func (pc *PostController) ToggleLike(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	var existing models.PostLike
	liked := pc.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error == nil

	var err error
	if liked {
		err = pc.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			return tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("likes_count", gorm.Expr("CASE WHEN likes_count < 1 THEN 0 ELSE likes_count - 1 END")).Error
		})
	} else {
		err = pc.db.Transaction(func(tx *gorm.DB) error {
			like := models.PostLike{PostID: postID, UserID: userID}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			return tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error
		})
	}
	if err != nil {
		pc.logger.Error("like toggle failed",
			zap.String("post", postID), zap.String("actor", userID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to update like")
		return
	}

	if liked {
		c.JSON(http.StatusOK, gin.H{"message": "Post unliked successfully", "is_liked": false})
		return
	}

	if post.AuthorID != userID {
		if err := pc.notificationController.CreateLikeNotification(userID, post.AuthorID, postID); err != nil {
			pc.logger.Warn("failed to create like notification",
				zap.String("post", postID), zap.String("actor", userID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post liked successfully", "is_liked": true})
}

// ToggleBookmark mirrors ToggleLike for the bookmark edge. Bookmarks are
// private, no notification.
func (pc *PostController) ToggleBookmark(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	var existing models.PostBookmark
	bookmarked := pc.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error == nil

	var err error
	if bookmarked {
		err = pc.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			return tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("bookmarks_count", gorm.Expr("CASE WHEN bookmarks_count < 1 THEN 0 ELSE bookmarks_count - 1 END")).Error
		})
	} else {
		err = pc.db.Transaction(func(tx *gorm.DB) error {
			bookmark := models.PostBookmark{PostID: postID, UserID: userID}
			if err := tx.Create(&bookmark).Error; err != nil {
				return err
			}
			return tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("bookmarks_count", gorm.Expr("bookmarks_count + ?", 1)).Error
		})
	}
	if err != nil {
		pc.logger.Error("bookmark toggle failed",
			zap.String("post", postID), zap.String("actor", userID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to update bookmark")
		return
	}

	if bookmarked {
		c.JSON(http.StatusOK, gin.H{"message": "Bookmark removed successfully", "is_bookmarked": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post bookmarked successfully", "is_bookmarked": true})
}

func (pc *PostController) GetBookmarkedPosts(c *gin.Context) {
	userID := c.GetString("user_id")

	var bookmarks []models.PostBookmark
	if err := pc.db.Preload("Post.Author").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&bookmarks).Error; err != nil {
		pc.logger.Error("failed to fetch bookmarks", zap.String("viewer", userID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch bookmarked posts")
		return
	}

	posts := make([]models.PostResponse, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		isLiked, _ := pc.viewerEdges(userID, bookmark.Post.ID)
		posts = append(posts, bookmark.Post.ToResponse(isLiked, true))
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// viewerEdges reports edge existence for the viewer; both false when anonymous.
func (pc *PostController) viewerEdges(viewerID, postID string) (isLiked, isBookmarked bool) {
	if viewerID == "" {
		return false, false
	}

	var like models.PostLike
	isLiked = pc.db.Where("post_id = ? AND user_id = ?", postID, viewerID).First(&like).Error == nil

	var bookmark models.PostBookmark
	isBookmarked = pc.db.Where("post_id = ? AND user_id = ?", postID, viewerID).First(&bookmark).Error == nil

	return isLiked, isBookmarked
}

func (pc *PostController) enrichPosts(viewerID string, posts []models.Post) []models.PostResponse {
	responses := make([]models.PostResponse, 0, len(posts))
	for _, post := range posts {
		isLiked, isBookmarked := pc.viewerEdges(viewerID, post.ID)
		responses = append(responses, post.ToResponse(isLiked, isBookmarked))
	}
	return responses
}

func nextCursor(posts []models.Post, limit int) *string {
	if len(posts) < limit {
		return nil
	}
	last := posts[len(posts)-1].ID
	return &last
}
