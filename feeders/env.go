package feeders

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/golobby/cast"
)

// PrefixEnvFeeder reads environment variables named <PREFIX>_<TAG> for
// struct fields carrying an `env` tag, coercing the string values into the
// field types. Nested structs are walked recursively with the same prefix.
type PrefixEnvFeeder struct {
	Prefix string
}

// NewPrefixEnvFeeder creates a feeder for the given prefix, without the
// trailing underscore.
func NewPrefixEnvFeeder(prefix string) PrefixEnvFeeder {
	return PrefixEnvFeeder{Prefix: prefix}
}

// Feed implements the golobby/config Feeder contract.
func (f PrefixEnvFeeder) Feed(structure interface{}) error {
	if f.Prefix == "" {
		return ErrEmptyPrefix
	}
	v := reflect.ValueOf(structure)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %T", ErrInvalidStructure, structure)
	}
	return f.feedStruct(v.Elem())
}

func (f PrefixEnvFeeder) feedStruct(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		tag, ok := t.Field(i).Tag.Lookup("env")
		if !ok {
			if field.Kind() == reflect.Struct {
				if err := f.feedStruct(field); err != nil {
					return err
				}
			}
			continue
		}

		name := strings.ToUpper(f.Prefix) + "_" + strings.ToUpper(tag)
		value, present := os.LookupEnv(name)
		if !present {
			continue
		}
		if err := setField(field, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// setField coerces a string environment value into the field's type,
// handling named types (e.g. string-kinded enums) via conversion.
func setField(field reflect.Value, value string) error {
	converted, err := cast.FromType(value, field.Type())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCannotConvert, err)
	}
	cv := reflect.ValueOf(converted)
	if !cv.Type().AssignableTo(field.Type()) {
		if !cv.Type().ConvertibleTo(field.Type()) {
			return fmt.Errorf("%w: %s to %s", ErrCannotConvert, cv.Type(), field.Type())
		}
		cv = cv.Convert(field.Type())
	}
	field.Set(cv)
	return nil
}
