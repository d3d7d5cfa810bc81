package repository

import "errors"

var (
	ErrAlimentNotFound     = errors.New("aliment not found")
	ErrMacroNotFound       = errors.New("macro not found")
	ErrEquipmentNotFound   = errors.New("equipment not found")
	ErrPreparationNotFound = errors.New("preparation not found")
	ErrMealNotFound        = errors.New("meal not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrProfileNotFound     = errors.New("user profile not found")
	ErrAPIKeyNotFound      = errors.New("api key not found")
)
