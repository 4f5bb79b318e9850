package dto

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// passwordSymbols is the symbol set accepted by the registration form.
const passwordSymbols = "@$!%*?&"

// NewValidator builds a standalone validator configured like gin's binding
// engine, for payloads that arrive off the HTTP path (broker messages).
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	v.SetTagName("binding")
	if err := RegisterValidations(v); err != nil {
		return nil, err
	}
	return v, nil
}

// RegisterValidations wires the custom checks and type adapters into the
// validator instance backing gin's binding.
func RegisterValidations(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if dt, ok := field.Interface().(DateTime); ok {
			return dt.Time
		}
		return nil
	}, DateTime{})

	if err := v.RegisterValidation("objectid", validObjectID); err != nil {
		return err
	}
	if err := v.RegisterValidation("password", validPassword); err != nil {
		return err
	}
	return v.RegisterValidation("partnerid", validPartnerID)
}

func validObjectID(fl validator.FieldLevel) bool {
	return primitive.IsValidObjectID(fl.Field().String())
}

// validPassword enforces the registration complexity rule: at least 8
// characters with an upper-case letter, a lower-case letter, a digit and one
// of the accepted symbols.
func validPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// validPartnerID accepts exactly nine ASCII digits.
func validPartnerID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 9 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
