package api

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/calendar"
)

var mealTimes = map[string]bool{
	"Breakfast": true,
	"Lunch":     true,
	"Dinner":    true,
	"Snack":     true,
}

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the weekday and mealtime tags to gin's validator.
// Safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		if err := v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
			return calendar.IsWeekDay(fl.Field().String())
		}); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("mealtime", func(fl validator.FieldLevel) bool {
			return mealTimes[fl.Field().String()]
		})
	})
	return registerErr
}

// validationMessage flattens binding errors into one readable line
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
