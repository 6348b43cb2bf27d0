package utils

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrMissingCoordinates  = fmt.Errorf("%w: latitude and longitude are required", ErrValidation)
	ErrInvalidCoordinates  = fmt.Errorf("%w: latitude and longitude must be valid numbers", ErrValidation)
	ErrInvalidID           = fmt.Errorf("%w: invalid id", ErrValidation)
	ErrInvalidStatus       = errors.New("invalid feedback status")
	ErrInvalidGeoJSON      = errors.New("invalid geojson format")
	ErrMissingFile         = errors.New("no file uploaded")
	ErrOutOfRegion         = errors.New("location is outside the service boundary")
	ErrBoundaryUnavailable = errors.New("boundary data not loaded")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrFeedbackNotFound    = errors.New("feedback not found")
	ErrUpload              = errors.New("image upload failed")
	ErrDatabaseError       = errors.New("database error")
)
