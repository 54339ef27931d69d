package policy

import (
	"errors"

	"gorm.io/gorm"

	"github.com/h662/x-clone-go/internal/apperr"
	"github.com/h662/x-clone-go/internal/user"
)

// Internal denial causes. The response side deliberately collapses all of
// them into one "Can not access." body so a caller cannot tell a missing
// resource from someone else's resource; logs keep the distinction.
var (
	ErrUnknownCaller = errors.New("caller account does not exist")
	ErrNotOwner      = errors.New("caller is not the resource owner")
)

// Denial is the uniform response-level error for every ownership failure.
func Denial(cause error) *apperr.Error {
	return apperr.Wrap(apperr.Forbidden, "Can not access.", cause)
}

// Authorize permits a mutation only when callerAccount resolves to the
// numeric identity recorded as the resource's author. Read paths never
// call this.
func Authorize(callerAccount string, resourceAuthorID uint) error {
	callerID, err := user.ResolveID(callerAccount)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Denial(ErrUnknownCaller)
		}
		return apperr.Wrap(apperr.Internal, "Server error.", err)
	}
	if callerID != resourceAuthorID {
		return Denial(ErrNotOwner)
	}
	return nil
}
