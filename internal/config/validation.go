package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	gwerrors "github.com/sqve/gw/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	// Report fields by their TOML key so errors match what users wrote.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks a configuration layer and reports the first invalid
// field as a CONFIG_INVALID error.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return gwerrors.NewGwError(gwerrors.ErrCodeConfigInvalid, "config validation failed", err)
	}

	fe := fieldErrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	return gwerrors.ErrConfigInvalid(field, describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s (got %v)", fe.Param(), fe.Value())
	case "notblank":
		return "must not be blank"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// ValidateEnv rejects environment overrides that are set but blank. An
// unset variable is fine; an empty one would silently replace a setting.
func ValidateEnv(env Env) error {
	for _, key := range []string{EnvDefaultBase, EnvWorktreesDir} {
		v, ok := lookup(env, key)
		if !ok {
			continue
		}
		if err := validate.Var(v, "notblank"); err != nil {
			return gwerrors.ErrConfigInvalid(key, "must not be blank")
		}
	}
	return nil
}
