package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"provided-storefront/internal/models"
)

const objectIDTag = "objectid"

// RegisterValidators agrega el tag `objectid` al validador de gin y hace que
// los errores usen los nombres JSON de los campos
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v.RegisterValidation(objectIDTag, func(fl validator.FieldLevel) bool {
		return models.ValidID(fl.Field().String())
	})
}
