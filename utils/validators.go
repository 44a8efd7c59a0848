package utils

import (
	"net/url"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// RegisterValidations installs custom binding tags on gin's validator engine.
// Must run before the router starts handling requests.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("alphanum_underscore", func(fl validator.FieldLevel) bool {
			return usernameRe.MatchString(fl.Field().String())
		})
		// An empty string clears the field; anything else must be an
		// absolute URL.
		v.RegisterValidation("url_or_empty", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if value == "" {
				return true
			}
			u, err := url.Parse(value)
			return err == nil && u.Scheme != "" && u.Host != ""
		})
	}
}
