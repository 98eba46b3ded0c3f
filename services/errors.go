package services

import (
	"errors"

	"sick-fits/constants"
	"sick-fits/storage"
)

var (
	ErrNotLoggedIn        = errors.New(constants.ErrNotLoggedIn)
	ErrNoPermission       = errors.New(constants.ErrNoPermission)
	ErrNoSuchUser         = errors.New(constants.ErrNoSuchUser)
	ErrInvalidPassword    = errors.New(constants.ErrInvalidPassword)
	ErrPasswordsDontMatch = errors.New(constants.ErrPasswordsDontMatch)
	ErrResetTokenInvalid  = errors.New(constants.ErrResetTokenInvalid)
	ErrEmailTaken         = errors.New(constants.ErrEmailTaken)
	ErrInvalidPermission  = errors.New(constants.ErrInvalidPermission)
	ErrItemNotFound       = errors.New(constants.ErrItemNotFound)
	ErrUploadsDisabled    = errors.New(constants.ErrUploadsNotAvailable)
	ErrSessionRevoked     = errors.New(constants.ErrSessionRevoked)
)

var public = []error{
	ErrNotLoggedIn,
	ErrNoPermission,
	ErrNoSuchUser,
	ErrInvalidPassword,
	ErrPasswordsDontMatch,
	ErrResetTokenInvalid,
	ErrEmailTaken,
	ErrInvalidPermission,
	ErrItemNotFound,
	ErrUploadsDisabled,
	storage.ErrUnsupportedType,
}

// IsPublic reports whether err carries a message meant for the client.
func IsPublic(err error) bool {
	for _, known := range public {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
