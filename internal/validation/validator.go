// Package validation wraps go-playground/validator with a shared instance that
// reports field names by their json tag and produces Mongolian messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/temply-mn/temply-api/internal/apperr"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Get returns the shared validator instance.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates s and returns an *apperr.Error of KindValidation describing
// the first failing field, or nil.
func Struct(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperr.Validation(apperr.MsgInvalidBody)
	}
	return apperr.Validation(message(fieldErrs[0]))
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " шаардлагатай"
	case "email":
		return "Имэйл хаяг буруу байна"
	case "url", "http_url":
		return field + " холбоос буруу байна"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s хамгийн багадаа %s тэмдэгт байх ёстой", field, fe.Param())
		}
		return fmt.Sprintf("%s %s-аас бага байж болохгүй", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s хамгийн ихдээ %s тэмдэгт байх ёстой", field, fe.Param())
		}
		return fmt.Sprintf("%s хэт их байна (дээд хязгаар %s)", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s нь [%s]-ийн аль нэг байх ёстой", field, fe.Param())
	default:
		return field + " утга буруу байна"
	}
}
