package post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/h662/x-clone-go/internal/apperr"
	"github.com/h662/x-clone-go/internal/cache"
	"github.com/h662/x-clone-go/internal/database"
	"github.com/h662/x-clone-go/internal/httputil"
	"github.com/h662/x-clone-go/internal/logs"
	"github.com/h662/x-clone-go/internal/middleware"
	"github.com/h662/x-clone-go/internal/policy"
	"github.com/h662/x-clone-go/internal/user"
)

// Listing pages are fixed at three posts, newest id first.
const pageSize = 3

type contentInput struct {
	Content string `json:"content"`
}

// Create handles POST /post.
func Create(pages *cache.PageCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.CallerIdentity(c)
		if !ok {
			httputil.Fail(c, apperr.New(apperr.Unauthenticated, "Not exist token."))
			return
		}

		var input contentInput
		if err := c.BindJSON(&input); err != nil || input.Content == "" {
			httputil.Fail(c, apperr.New(apperr.Validation, "Not exist content."))
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

		newPost := Post{
			Content: input.Content,
			UserID:  authorID,
		}
		if err := database.DB.Create(&newPost).Error; err != nil {
			httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
			return
		}

		pages.Invalidate(c.Request.Context())
		httputil.OK(c, gin.H{"post": newPost})
	}
}

// List handles GET /post?page=N: a fixed window of pageSize posts at
// offset page*pageSize, descending id, each with its author preloaded.
func List(pages *cache.PageCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		pageStr := c.Query("page")
		if pageStr == "" {
			httputil.Fail(c, apperr.New(apperr.Validation, "Not exist page."))
			return
		}
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 0 {
			httputil.Fail(c, apperr.New(apperr.Validation, "Not exist page."))
			return
		}

		if body := pages.Get(c.Request.Context(), pageStr); body != "" {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(body))
			return
		}

		var posts []Post
		if err := database.DB.Preload("User").
			Order("id desc").
			Offset(page * pageSize).
			Limit(pageSize).
			Find(&posts).Error; err != nil {
			httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
			return
		}

		if len(posts) == 0 {
			httputil.Fail(c, apperr.New(apperr.NotFound, "Not exist posts."))
			return
		}

		body, err := json.Marshal(gin.H{"ok": true, "posts": posts})
		if err != nil {
			httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
			return
		}
		pages.Set(c.Request.Context(), pageStr, string(body))
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	}
}

// ListByUser handles GET /post/user/:userId?page=N, the per-author
// variant of List.
func ListByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		httputil.Fail(c, apperr.New(apperr.Validation, "Not exist data."))
		return
	}
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 0 {
		httputil.Fail(c, apperr.New(apperr.Validation, "Not exist data."))
		return
	}

	var posts []Post
	if err := database.DB.Preload("User").
		Where("user_id = ?", userID).
		Order("id desc").
		Offset(page * pageSize).
		Limit(pageSize).
		Find(&posts).Error; err != nil {
		httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
		return
	}

	if len(posts) == 0 {
		httputil.Fail(c, apperr.New(apperr.NotFound, "Not exist posts."))
		return
	}
	httputil.OK(c, gin.H{"posts": posts})
}

// Get handles GET /post/:id.
func Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.Fail(c, apperr.New(apperr.Validation, "Not exist data."))
		return
	}

	var p Post
	if err := database.DB.Preload("User").First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.Fail(c, apperr.New(apperr.NotFound, "Not exist post."))
			return
		}
		httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
		return
	}
	httputil.OK(c, gin.H{"post": p})
}

// Update handles PUT /post/:id. Only the author may change content; a
// missing post and a foreign post produce the same denial.
func Update(pages *cache.PageCache) gin.HandlerFunc {
	return func(c *gin.Context) {
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
		var input contentInput
		if err := c.BindJSON(&input); err != nil || input.Content == "" {
			httputil.Fail(c, apperr.New(apperr.Validation, "Not exist data."))
			return
		}

		var existing Post
		if err := database.DB.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logs.LogJSON("WARN", "mutation target missing", map[string]interface{}{
					"route":   c.FullPath(),
					"post_id": id,
					"account": identity.Account,
				})
				httputil.Fail(c, policy.Denial(err))
				return
			}
			httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
			return
		}

		if err := policy.Authorize(identity.Account, existing.UserID); err != nil {
			httputil.Fail(c, err)
			return
		}

		existing.Content = input.Content
		if err := database.DB.Save(&existing).Error; err != nil {
			httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
			return
		}

		pages.Invalidate(c.Request.Context())
		httputil.OK(c, gin.H{"post": existing})
	}
}

// Delete handles DELETE /post/:id, gated the same way as Update.
func Delete(pages *cache.PageCache) gin.HandlerFunc {
	return func(c *gin.Context) {
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

		var existing Post
		if err := database.DB.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logs.LogJSON("WARN", "mutation target missing", map[string]interface{}{
					"route":   c.FullPath(),
					"post_id": id,
					"account": identity.Account,
				})
				httputil.Fail(c, policy.Denial(err))
				return
			}
			httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
			return
		}

		if err := policy.Authorize(identity.Account, existing.UserID); err != nil {
			httputil.Fail(c, err)
			return
		}

		if err := database.DB.Delete(&existing).Error; err != nil {
			httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
			return
		}

		pages.Invalidate(c.Request.Context())
		httputil.OK(c, gin.H{"post": existing})
	}
}
