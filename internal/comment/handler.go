package comment

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/h662/x-clone-go/internal/apperr"
	"github.com/h662/x-clone-go/internal/database"
	"github.com/h662/x-clone-go/internal/httputil"
	"github.com/h662/x-clone-go/internal/logs"
	"github.com/h662/x-clone-go/internal/middleware"
	"github.com/h662/x-clone-go/internal/policy"
	"github.com/h662/x-clone-go/internal/post"
	"github.com/h662/x-clone-go/internal/user"
)

type createInput struct {
	Content string `json:"content"`
	PostID  uint   `json:"postId"`
}

type updateInput struct {
	Content string `json:"content"`
}

// Create handles POST /comment. The parent post must exist at creation
// time; nothing re-validates the reference afterwards.
func Create(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		httputil.Fail(c, apperr.New(apperr.Unauthenticated, "Not exist token."))
		return
	}

	var input createInput
	if err := c.BindJSON(&input); err != nil || input.Content == "" || input.PostID == 0 {
		httputil.Fail(c, apperr.New(apperr.Validation, "Not exist data."))
		return
	}

	authorID, err := user.ResolveID(identity.Account)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.Fail(c, apperr.New(apperr.NotFound, "Not exist user."))
			return
		}
		httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
		return
	}

	var parent post.Post
	if err := database.DB.First(&parent, input.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.Fail(c, apperr.New(apperr.NotFound, "Not exist post."))
			return
		}
		httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
		return
	}

	newComment := Comment{
		Content: input.Content,
		UserID:  authorID,
		PostID:  parent.ID,
	}
	if err := database.DB.Create(&newComment).Error; err != nil {
		httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
		return
	}

	httputil.OK(c, gin.H{"comment": newComment})
}

// List handles GET /comment?postId=N, newest first.
func List(c *gin.Context) {
	postID, err := strconv.Atoi(c.Query("postId"))
	if err != nil {
		httputil.Fail(c, apperr.New(apperr.Validation, "Not exist post id."))
		return
	}

	var comments []Comment
	if err := database.DB.Preload("User").
		Where("post_id = ?", postID).
		Order("id desc").
		Find(&comments).Error; err != nil {
		httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
		return
	}

	httputil.OK(c, gin.H{"postId": postID, "comments": comments})
}

// Get handles GET /comment/:id, returning the comment together with its
// parent post and both author accounts.
func Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.Fail(c, apperr.New(apperr.Validation, "Not exist id."))
		return
	}

	var cm Comment
	if err := database.DB.Preload("User").
		Preload("Post").
		Preload("Post.User").
		First(&cm, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.Fail(c, apperr.New(apperr.NotFound, "Not exist comment."))
			return
		}
		httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
		return
	}

	httputil.OK(c, gin.H{"comment": cm})
}

// Update handles PUT /comment/:id, author only.
func Update(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		httputil.Fail(c, apperr.New(apperr.Unauthenticated, "Not exist token."))
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.Fail(c, apperr.New(apperr.Validation, "Not exist data."))
		return
	}
	var input updateInput
	if err := c.BindJSON(&input); err != nil || input.Content == "" {
		httputil.Fail(c, apperr.New(apperr.Validation, "Not exist data."))
		return
	}

	existing, err := loadForMutation(c, id, identity.Account)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	existing.Content = input.Content
	if err := database.DB.Save(existing).Error; err != nil {
		httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
		return
	}

	httputil.OK(c, gin.H{"comment": existing})
}

// Delete handles DELETE /comment/:id, author only.
func Delete(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		httputil.Fail(c, apperr.New(apperr.Unauthenticated, "Not exist token."))
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.Fail(c, apperr.New(apperr.Validation, "Not exist data."))
		return
	}

	existing, err := loadForMutation(c, id, identity.Account)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	if err := database.DB.Delete(existing).Error; err != nil {
		httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
		return
	}

	httputil.OK(c, gin.H{"comment": existing})
}

// loadForMutation fetches the comment and runs the ownership check,
// collapsing "missing" and "not yours" into the shared denial.
func loadForMutation(c *gin.Context, id int, callerAccount string) (*Comment, error) {
	var existing Comment
	if err := database.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logs.LogJSON("WARN", "mutation target missing", map[string]interface{}{
				"route":      c.FullPath(),
				"comment_id": id,
				"account":    callerAccount,
			})
			return nil, policy.Denial(err)
		}
		return nil, apperr.Wrap(apperr.Internal, "Server error.", err)
	}

	if err := policy.Authorize(callerAccount, existing.UserID); err != nil {
		return nil, err
	}
	return &existing, nil
}
