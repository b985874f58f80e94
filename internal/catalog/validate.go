package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"serpentaware/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("continent", func(fl validator.FieldLevel) bool {
			return models.Continent(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("danger_level", func(fl validator.FieldLevel) bool {
			return models.DangerLevel(fl.Field().String()).Valid()
		})
	})
	return validate
}

// Validate checks every record and reports all failures at once.
func Validate(d Dataset) error {
	v := validatorInstance()
	var errs []error
	if len(d.Snakes) == 0 {
		errs = append(errs, errors.New("dataset has no snakes"))
	}
	seen := make(map[string]int, len(d.Snakes))
	for i, s := range d.Snakes {
		if err := v.Struct(s); err != nil {
			errs = append(errs, fmt.Errorf("snake %d (%q): %w", i, s.Name, err))
		}
		if s.ID == "" {
			continue
		}
		if j, dup := seen[s.ID]; dup {
			errs = append(errs, fmt.Errorf("snake %d (%q): duplicate id %s (also snake %d)", i, s.Name, s.ID, j))
		}
		seen[s.ID] = i
	}
	for i, e := range d.EmergencyInfo {
		if err := v.Struct(e); err != nil {
			errs = append(errs, fmt.Errorf("emergency info %d (%q): %w", i, e.Title, err))
		}
	}
	return errors.Join(errs...)
}
