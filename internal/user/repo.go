package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/h662/x-clone-go/internal/database"
)

// FindByAccount resolves a handle to its stored row. Returns
// gorm.ErrRecordNotFound when the account does not exist.
func FindByAccount(account string) (*User, error) {
	var u User
	if err := database.DB.Where("account = ?", account).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func ExistsByAccount(account string) (bool, error) {
	_, err := FindByAccount(account)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// ResolveID maps an account handle to its numeric identity, the value
// the ownership policy compares against resource author ids.
func ResolveID(account string) (uint, error) {
	u, err := FindByAccount(account)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}
