// Package validation wraps go-playground/validator with the inventory's
// custom rules. Validator satisfies echo.Validator.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/srvtrack/internal/common"
	"github.com/dmitrijs2005/srvtrack/internal/server/models"
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

// New builds a Validator. It panics if a rule fails to register, since that
// is a programming error.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := registerRules(v); err != nil {
		panic("register validation rules: " + err.Error())
	}
	return &Validator{v: v}
}

func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("serverstatus", func(fl validator.FieldLevel) bool {
		return models.ServerStatus(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("locationtype", func(fl validator.FieldLevel) bool {
		switch models.LocationType(fl.Field().String()) {
		case models.LocationDepot, models.LocationOffice, models.LocationField:
			return true
		}
		return false
	}); err != nil {
		return err
	}
	return v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		switch models.Role(fl.Field().String()) {
		case models.RoleAdmin, models.RoleUser:
			return true
		}
		return false
	})
}

// Validate checks the struct tags of i. Failures wrap common.ErrorValidation
// and name each offending field.
func (cv *Validator) Validate(i any) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", common.ErrorValidation, strings.Join(msgs, "; "))
}
