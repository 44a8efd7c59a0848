package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pulse-api/models"
	"pulse-api/utils"
)

type CommentController struct {
	db                     *gorm.DB
	logger                 *zap.Logger
	notificationController *NotificationController
}

func NewCommentController(db *gorm.DB, logger *zap.Logger, notificationController *NotificationController) *CommentController {
	return &CommentController{
		db:                     db,
		logger:                 logger,
		notificationController: notificationController,
	}
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=280"`
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindingError(c, err)
		return
	}

	var post models.Post
	if err := cc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	comment := models.Comment{
		ID:       utils.NewID(),
		PostID:   postID,
		AuthorID: userID,
		Content:  req.Content,
	}

	// Comment row and the post's comments_count move together.
	err := cc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1)).Error
	})
	if err != nil {
		cc.logger.Error("failed to create comment",
			zap.String("post", postID), zap.String("actor", userID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	if post.AuthorID != userID {
		if err := cc.notificationController.CreateCommentNotification(userID, post.AuthorID, postID, comment.ID); err != nil {
			cc.logger.Warn("failed to create comment notification",
				zap.String("post", postID), zap.String("actor", userID), zap.Error(err))
		}
	}

	cc.db.Preload("Author").First(&comment, "id = ?", comment.ID)
	c.JSON(http.StatusCreated, gin.H{"comment": comment.ToResponse()})
}

func (cc *CommentController) GetComments(c *gin.Context) {
	postID := c.Param("id")

	var comments []models.Comment
	if err := cc.db.Preload("Author").Where("post_id = ?", postID).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		cc.logger.Error("failed to fetch comments", zap.String("post", postID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch comments")
		return
	}

	responses := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, comments[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"comments": responses})
}
