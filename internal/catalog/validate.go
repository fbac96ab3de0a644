package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance reports field errors under their json names. The
// "validate" tag is not read by gin's binding, so view models are checked
// once, by the service that owns the write.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateBook trims the title and checks it against the book constraints.
func ValidateBook(vm *BookViewModel) error {
	vm.Title = strings.TrimSpace(vm.Title)
	vm.AuthorIDs = NormalizeIDs(vm.AuthorIDs)
	return validateStruct(vm)
}

// ValidateAuthor trims the name and checks it against the author constraints.
func ValidateAuthor(vm *AuthorViewModel) error {
	vm.Name = strings.TrimSpace(vm.Name)
	vm.BookIDs = NormalizeIDs(vm.BookIDs)
	return validateStruct(vm)
}

func validateStruct(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	ve := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		ve.Fields[fe.Field()] = fieldMessage(fe)
	}
	return ve
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
