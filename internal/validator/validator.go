package validator

import (
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/brightforge/agency-backend/internal/response"
)

// trans is the singleton English translator for validation errors.
var trans ut.Translator

// Setup registers the validator with English translations on Gin's binding engine.
// Call once during application startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// Register English translations.
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		en_translations.RegisterDefaultTranslations(v, trans)
	}
}

// TranslateErrors turns a binding error into field errors. Errors that are not
// validation failures (malformed JSON, wrong types) are reported on "body" or
// on the offending field.
func TranslateErrors(err error) []response.FieldError {
	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]response.FieldError, 0, len(ve))
		for _, fe := range ve {
			msg := fe.Error()
			if trans != nil {
				msg = fe.Translate(trans)
			}
			fields = append(fields, response.FieldError{Field: fieldPath(fe), Message: msg})
		}
		sort.SliceStable(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
		return fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []response.FieldError{{Field: typeErr.Field, Message: "must be of type " + typeErr.Type.String()}}
	}

	return []response.FieldError{{Field: "body", Message: "request body must be valid JSON"}}
}

// fieldPath strips the struct name from the namespace: "CreateContactRequest.tags[0]" -> "tags[0]".
func fieldPath(fe govalidator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// Bind binds and validates the request body into dst.
// Returns nil on success or the list of invalid fields on failure.
func Bind(c *gin.Context, dst interface{}) []response.FieldError {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
