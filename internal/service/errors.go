package service

import "errors"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")

	ErrPlanNotFound     = errors.New("meal plan not found")
	ErrDayNotFound      = errors.New("day not found")
	ErrMealNotFound     = errors.New("meal not found")
	ErrInvalidDay       = errors.New("invalid day")
	ErrInvalidWeekStart = errors.New("invalid weekStart date")

	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrIngredientNotFound = errors.New("ingredient not found")

	ErrItemNotFound         = errors.New("item not found")
	ErrPlanItemReadOnly     = errors.New("plan items can only be checked/unchecked, edit them in your meal plan")
	ErrPlanItemNotDeletable = errors.New("plan items cannot be deleted from the list, edit them in your meal plan")
	ErrInvalidInput         = errors.New("invalid input")

	// ErrConcurrentUpdate means the list was saved by someone else between read and write.
	ErrConcurrentUpdate = errors.New("shopping list was modified concurrently")

	ErrExportUnavailable = errors.New("export storage is not configured")
)
