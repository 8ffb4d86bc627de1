package user

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/masomo-admin/core"
)

var (
	ErrUsernameExists = errors.New("username already taken")
	ErrWrongPassword  = errors.New("wrong password")
)

// Account is a User as the API stores it: with contact details and credentials.
type Account struct {
	User
	Email        string
	Telefone     string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a *Account) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hashing password")
	}
	a.PasswordHash = hash
	return nil
}

func (a Account) CheckPassword(pwd string) error {
	if len(a.PasswordHash) == 0 {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

type Repository interface {
	core.Repository[Account, QueryFilter]
	GetByUsername(ctx context.Context, username string) (Account, error)
}
