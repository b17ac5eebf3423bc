package validator

import (
	"errors"
	"sync"

	"aptbooking/internal/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterGinValidations adds the project tags to gin's binding validator.
// Safe to call more than once.
func RegisterGinValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("apartment_type", validateApartmentType)
		_ = v.RegisterValidation("user_role", validateUserRole)
	})
}

func validateApartmentType(fl validator.FieldLevel) bool {
	return domain.ApartmentType(fl.Field().String()).Valid()
}

func validateUserRole(fl validator.FieldLevel) bool {
	return domain.UserRole(fl.Field().String()).Valid()
}

// Details flattens a binding error into field -> failed tag. Returns nil for
// errors that are not validation errors (e.g. malformed JSON).
func Details(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
