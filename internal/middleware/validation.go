package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/omermarcel/renaltrack/internal/model"
)

// RegisterValidations configures gin's binding validator: error messages
// report json field names, and enum tags are available to request structs.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("patientstatus", func(fl validator.FieldLevel) bool {
		return model.PatientStatus(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
}
