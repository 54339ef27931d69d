package like

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/h662/x-clone-go/internal/apperr"
	"github.com/h662/x-clone-go/internal/httputil"
	"github.com/h662/x-clone-go/internal/middleware"
	"github.com/h662/x-clone-go/internal/user"
)

// Mark handles PUT /like?postId=N or PUT /like?commentId=N. Exactly one
// subject parameter must be present.
func Mark(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		httputil.Fail(c, apperr.New(apperr.Unauthenticated, "Not exist token."))
		return
	}

	if _, err := user.ResolveID(identity.Account); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.Fail(c, apperr.New(apperr.NotFound, "Not exist user."))
			return
		}
		httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
		return
	}

	postStr := c.Query("postId")
	commentStr := c.Query("commentId")

	var kind SubjectKind
	var subjectStr string
	switch {
	case postStr != "" && commentStr != "":
		httputil.Fail(c, apperr.New(apperr.Validation, "Not exist data."))
		return
	case postStr != "":
		kind, subjectStr = SubjectPost, postStr
	case commentStr != "":
		kind, subjectStr = SubjectComment, commentStr
	default:
		httputil.Fail(c, apperr.New(apperr.Validation, "Not exist data."))
		return
	}

	subjectID, err := strconv.Atoi(subjectStr)
	if err != nil || subjectID <= 0 {
		httputil.Fail(c, apperr.New(apperr.Validation, "Not exist data."))
		return
	}

	row, err := MarkLiked(kind, uint(subjectID))
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	httputil.OK(c, gin.H{"like": row})
}
