package user

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/h662/x-clone-go/internal/apperr"
	"github.com/h662/x-clone-go/internal/database"
	"github.com/h662/x-clone-go/internal/httputil"
	"github.com/h662/x-clone-go/internal/logs"
	"github.com/h662/x-clone-go/internal/token"
)

type credentialsInput struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

// Register handles POST /user: create an account and hand back a signed
// token so the client is logged in right away.
func Register(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input credentialsInput
		if err := c.BindJSON(&input); err != nil {
			httputil.Fail(c, apperr.New(apperr.Validation, "Not exist data."))
			return
		}
		if input.Account == "" || input.Password == "" {
			httputil.Fail(c, apperr.New(apperr.Validation, "Not exist data."))
			return
		}

		exists, err := ExistsByAccount(input.Account)
		if err != nil {
			httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
			return
		}
		if exists {
			// Second registration must not touch the stored credentials.
			httputil.Fail(c, apperr.New(apperr.Conflict, "Already exist user."))
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
			return
		}

		newUser := User{
			Account:  input.Account,
			Password: string(hashed),
		}
		if err := database.DB.Create(&newUser).Error; err != nil {
			httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
			return
		}

		signed, err := tokens.Issue(newUser.Account)
		if err != nil {
			httputil.Fail(c, apperr.Wrap(apperr.Internal, "Server error.", err))
			return
		}

		logs.LogJSON("INFO", "user registered", map[string]interface{}{
			"account": newUser.Account,
			"user_id": newUser.ID,
		})
		httputil.OK(c, gin.H{"token": signed})
	}
}
