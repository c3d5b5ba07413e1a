package service

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors shared by the services. Handlers map these onto the HTTP
// error taxonomy: validation -> 400, authentication -> 401, permission ->
// 403, missing resource -> 404.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyReviewed    = errors.New("you have already reviewed this title")
	ErrNameInUse          = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrSlugInUse          = errors.New("slug already in use")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUnknownCategory    = errors.New("unknown category slug")
	ErrUnknownGenre       = errors.New("unknown genre slug")
	ErrScoreOutOfRange    = errors.New("score must be between 1 and 10")
)

// notFound converts a gorm record miss into the service-level sentinel and
// leaves every other error untouched.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
