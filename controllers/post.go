// controllers/post.go
package controllers

import (
	"errors"
	"net/http"
	"templekovan-backend/config"
	"templekovan-backend/models"
	"templekovan-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePostInput defines the expected JSON structure for creating a post
type CreatePostInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Image   string `json:"image"`
}

// CreateCommentInput defines the expected JSON structure for a comment
type CreateCommentInput struct {
	Content  string     `json:"content" binding:"required"`
	ParentID *uuid.UUID `json:"parentId"`
}

// GetPosts lists announcements, newest first
func GetPosts(c *gin.Context) {
	var posts []models.Post
	if err := config.DB.Preload("Comments", "parent_id IS NULL").
		Preload("Comments.Replies").
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve posts")
		return
	}

	c.JSON(http.StatusOK, posts)
}

// CreatePost publishes an announcement authored by the caller
func CreatePost(c *gin.Context) {
	authorID, ok := callerUUID(c)
	if !ok {
		return
	}

	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	post := models.Post{
		AuthorID: authorID,
		Title:    input.Title,
		Content:  input.Content,
		Image:    input.Image,
	}

	if err := config.DB.Create(&post).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create post")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// DeletePost removes a post; only the author or an Admin may delete
func DeletePost(c *gin.Context) {
	callerID, ok := callerUUID(c)
	if !ok {
		return
	}

	postUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid post ID format")
		return
	}

	var post models.Post
	if err := config.DB.First(&post, "id = ?", postUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Post not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if post.AuthorID != callerID &&
		!utils.HasAnyRole(utils.ContextRoles(c), []string{models.RoleAdmin, models.RoleSuperAdmin}) {
		utils.RespondWithError(c, http.StatusForbidden, "Only the author or an admin may delete a post")
		return
	}

	if err := config.DB.Delete(&post).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// LikePost toggles the caller's like on a post. Liking removes an existing
// dislike, and the counters always match the member sets.
func LikePost(c *gin.Context) {
	reactToPost(c, true)
}

// DislikePost toggles the caller's dislike on a post
func DislikePost(c *gin.Context) {
	reactToPost(c, false)
}

func reactToPost(c *gin.Context, like bool) {
	callerID, ok := callerUUID(c)
	if !ok {
		return
	}

	postUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid post ID format")
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var post models.Post
	if err := tx.First(&post, "id = ?", postUUID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Post not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	user := models.User{ID: callerID}

	liked, err := memberOf(tx, &post, "LikedBy", callerID)
	if err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	disliked, err := memberOf(tx, &post, "DislikedBy", callerID)
	if err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	set, unset := "LikedBy", "DislikedBy"
	already, opposite := liked, disliked
	if !like {
		set, unset = "DislikedBy", "LikedBy"
		already, opposite = disliked, liked
	}

	if already {
		// Toggle off
		if err := tx.Model(&post).Association(set).Delete(&user); err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reaction")
			return
		}
	} else {
		if opposite {
			if err := tx.Model(&post).Association(unset).Delete(&user); err != nil {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reaction")
				return
			}
		}
		if err := tx.Model(&post).Association(set).Append(&user); err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reaction")
			return
		}
	}

	likes := tx.Model(&post).Association("LikedBy").Count()
	dislikes := tx.Model(&post).Association("DislikedBy").Count()
	if err := tx.Model(&post).Updates(map[string]interface{}{
		"likes":    likes,
		"dislikes": dislikes,
	}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update counters")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reaction")
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes, "dislikes": dislikes})
}

func memberOf(tx *gorm.DB, post *models.Post, association string, userID uuid.UUID) (bool, error) {
	var members []models.User
	if err := tx.Model(post).Association(association).Find(&members, "users.id = ?", userID); err != nil {
		return false, err
	}
	return len(members) > 0, nil
}

// CreateComment adds a comment (or a reply when parentId is set) to a post
func CreateComment(c *gin.Context) {
	authorID, ok := callerUUID(c)
	if !ok {
		return
	}

	postUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid post ID format")
		return
	}

	var input CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var post models.Post
	if err := config.DB.First(&post, "id = ?", postUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Post not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ParentID != nil {
		var parent models.Comment
		if err := config.DB.Where("id = ? AND post_id = ?", *input.ParentID, postUUID).
			First(&parent).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Parent comment not found on this post")
			return
		}
	}

	comment := models.Comment{
		PostID:   postUUID,
		AuthorID: authorID,
		ParentID: input.ParentID,
		Content:  input.Content,
	}

	if err := config.DB.Create(&comment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}
