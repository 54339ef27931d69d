package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/h662/x-clone-go/internal/apperr"
	"github.com/h662/x-clone-go/internal/httputil"
	"github.com/h662/x-clone-go/internal/token"
	"github.com/h662/x-clone-go/internal/user"
)

type loginInput struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

// Login handles POST /auth: check the password against the stored bcrypt
// hash and issue a bearer token for the account.
func Login(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input loginInput
		if err := c.BindJSON(&input); err != nil {
			httputil.Fail(c, apperr.New(apperr.Validation, "Account and password are required."))
			return
		}
		if input.Account == "" || input.Password == "" {
			httputil.Fail(c, apperr.New(apperr.Validation, "Account and password are required."))
			return
		}

		u, err := user.FindByAccount(input.Account)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httputil.Fail(c, apperr.New(apperr.NotFound, "Not exist user."))
				return
			}
			httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(input.Password)) != nil {
			httputil.Fail(c, apperr.New(apperr.Unauthenticated, "Incorrect password."))
			return
		}

		signed, err := tokens.Issue(u.Account)
		if err != nil {
			httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
			return
		}

		httputil.OK(c, gin.H{"token": signed})
	}
}
