package mosaic

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Struct tag keys recognized on configuration fields.
const (
	tagDefault = "default"
	tagDesc    = "desc" // documentation and sample-config generation
)

// ConfigValidator is implemented by configuration structs carrying custom
// validation beyond defaults. LoadConfigFile and New call Validate
// automatically after defaults are applied.
type ConfigValidator interface {
	Validate() error
}

// ProcessConfigDefaults applies `default:"value"` struct tags to zero-valued
// fields, field by field. Supported kinds: string (including named string
// types), bool, signed and unsigned integers, floats, time.Duration and
// comma-separated string slices. Embedded structs are processed
// recursively; fields without a default tag are left alone.
func ProcessConfigDefaults(cfg any) error {
	if cfg == nil {
		return ErrConfigNil
	}
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrConfigNotPointer
	}
	return processStructDefaults(v.Elem())
}

func processStructDefaults(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct && field.Type() != reflect.TypeOf(time.Time{}) {
			if _, tagged := t.Field(i).Tag.Lookup(tagDefault); !tagged {
				if err := processStructDefaults(field); err != nil {
					return err
				}
				continue
			}
		}

		defaultVal, ok := t.Field(i).Tag.Lookup(tagDefault)
		if !ok || !field.IsZero() {
			continue
		}
		if err := setDefaultValue(field, defaultVal); err != nil {
			return fmt.Errorf("field %s: %w", t.Field(i).Name, err)
		}
	}
	return nil
}

func setDefaultValue(field reflect.Value, value string) error {
	if field.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %q as duration: %w", ErrDefaultValueParse, value, err)
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %q as bool: %w", ErrDefaultValueParse, value, err)
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q as int: %w", ErrDefaultValueParse, value, err)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q as uint: %w", ErrDefaultValueParse, value, err)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %q as float: %w", ErrDefaultValueParse, value, err)
		}
		field.SetFloat(f)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("%w: %s", ErrUnsupportedFieldKind, field.Type())
		}
		parts := strings.Split(value, ",")
		slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
		for i, p := range parts {
			slice.Index(i).SetString(strings.TrimSpace(p))
		}
		field.Set(slice)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFieldKind, field.Kind())
	}
	return nil
}
