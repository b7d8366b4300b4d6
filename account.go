package accounts

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/rs/xid"
)

type Repository interface {
	FindByEmail(email string) (*Account, error)
	FindAll() ([]Account, error)
	Store(acc *Account) error
	Update(acc *Account) error
}

type ID string

type Account struct {
	ID                 ID
	Email              string
	PasswordHash       string
	FavouriteLocations []string
}

var (
	ErrInvalidInput        = errors.New("invalid new account")
	ErrNotFound            = errors.New("account not found")
	ErrInternal            = errors.New("internal error")
	ErrPasswordMismatch    = errors.New("password does not match")
	ErrDuplicateFavourite  = errors.New("location already in favourites")
	ErrFavouriteNotPresent = errors.New("location not in favourites")
)

//NewAccount returns an Account for the given email with an empty
// favourites list. The password is hashed and attached by the service.
func NewAccount(email string) (*Account, error) {
	if len(email) < 1 {
		return nil, ErrInvalidInput
	}
	return &Account{Email: email, FavouriteLocations: []string{}}, nil
}

func (a *Account) HasFavourite(locationID string) bool {
	for _, l := range a.FavouriteLocations {
		if l == locationID {
			return true
		}
	}

	return false
}

func (a *Account) AddFavourite(locationID string) {
	a.FavouriteLocations = append(a.FavouriteLocations, locationID)
}

func (a *Account) RemoveFavourite(locationID string) {
	for i, l := range a.FavouriteLocations {
		if l == locationID {
			a.FavouriteLocations = append(a.FavouriteLocations[:i], a.FavouriteLocations[i+1:]...)
			break
		}
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", errors.New("error hashing password")
	}
	return string(hash), nil
}

func hashMatchesPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func nextID() ID {
	return ID(xid.New().String())
}

//IsValidID checks if a given id is valid based on the xid library definition of a valid id
// this method should change if we ever change our uid generation library
func IsValidID(id string) bool {
	if _, err := xid.FromString(id); err != nil {
		return false
	}
	return true
}
