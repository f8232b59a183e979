package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/openbooks/openbooks/internal/core/domain"
)

// RegisterCustomValidators installs the domain binding tags on gin's
// validator engine. Must run before any route handles a request.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		_, err := domain.ParsePeriod(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("doctype", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDocType(fl.Field().String())
		return err == nil
	})
}
