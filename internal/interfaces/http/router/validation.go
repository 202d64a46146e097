package router

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domain "github.com/sales/backend/internal/domain/sales"
)

var validatorsOnce sync.Once

// registerValidators adds the domain validations to gin's binding engine.
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
			return domain.OrderStatus(fl.Field().Int()).IsValid()
		})
	})
}
