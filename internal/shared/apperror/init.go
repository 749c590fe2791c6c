package apperror

import (
	"os"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var exposeDetails = true

// Init registers json tag names with gin's validator and decides whether
// wrapped error text is exposed to clients.
func Init() {
	exposeDetails = !strings.EqualFold(os.Getenv("APP_ENV"), "production")

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// SetExposeDetails overrides the environment derived setting.
func SetExposeDetails(v bool) {
	exposeDetails = v
}
