package util

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// IsStructInitialized checks that every exported field of s is set. Fields tagged
// `wire:"-"` are skipped as they are initialized outside of wire.
func IsStructInitialized(s any) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return errors.New("struct is nil")
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return errors.Errorf("expected struct, got %s", v.Kind())
	}

	t := v.Type()
	var missing []string

	for i := range v.NumField() {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("wire") == "-" {
			continue
		}

		if v.Field(i).IsZero() {
			missing = append(missing, field.Name)
		}
	}

	if len(missing) > 0 {
		return errors.Errorf("uninitialized fields: %s", strings.Join(missing, ", "))
	}

	return nil
}
