package errdefs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	ut "github.com/go-playground/universal-translator"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

type structValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

var getValidator = sync.OnceValue(func() *structValidator {
	enLoc := en.New()
	uni := ut.New(enLoc, enLoc)
	trans, _ := uni.GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their configuration key.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("json")
		if tag == "-" || tag == "" {
			return fld.Name
		}
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}

		return tag
	})

	err := v.RegisterValidation("notblank", validators.NotBlank)
	if err != nil {
		panic(fmt.Errorf("register notblank validation: %w", err))
	}

	err = entranslations.RegisterDefaultTranslations(v, trans)
	if err != nil {
		panic(fmt.Errorf("register validator translations: %w", err))
	}

	err = v.RegisterTranslation("notblank", trans,
		func(t ut.Translator) error {
			return t.Add("notblank", "{0} must not be blank", true) //nolint:wrapcheck // Registration callback.
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T("notblank", fe.Field())
			return msg
		},
	)
	if err != nil {
		panic(fmt.Errorf("register notblank translation: %w", err))
	}

	return &structValidator{validate: v, translator: trans}
})

// ValidateStruct checks the `validate` struct tags of v. The first failing
// field is reported as an [ErrInvalidConfig] error.
func ValidateStruct(v any) error {
	sv := getValidator()

	err := sv.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]

		return fmt.Errorf("%w: %s", ErrInvalidConfig, fe.Translate(sv.translator))
	}

	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}
