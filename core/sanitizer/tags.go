package sanitizer

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ErrNotStructPointer is returned by SanitizeStruct for anything but a
// non-nil pointer to a struct.
var ErrNotStructPointer = errors.New("sanitizer: must pass a pointer to struct")

var (
	registryMu sync.RWMutex
	registry   = map[string]func(string) string{
		"trim":        Trim,
		"trim_lower":  TrimToLower,
		"single_line": SingleLine,
		"no_spaces":   RemoveExtraWhitespace,
		"no_control":  RemoveControlChars,
		"lines":       TrimLines,
	}
)

// RegisterSanitizer adds a custom sanitizer function to the registry.
func RegisterSanitizer(name string, fn func(string) string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// SanitizeStruct applies the comma-separated sanitizers named in each
// field's `sanitize` tag, in order. "max:N" truncates to N runes. Nested
// structs are always visited; string slices only when tagged.
//
//	type Payload struct {
//		Subject string `sanitize:"no_control,single_line,max:120"`
//	}
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrNotStructPointer
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	sanitizeStruct(rv)
	return nil
}

func sanitizeStruct(rv reflect.Value) {
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		tag := rt.Field(i).Tag.Get("sanitize")
		if tag == "-" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if tag != "" {
				field.SetString(apply(field.String(), tag))
			}
		case reflect.Pointer:
			if field.IsNil() {
				continue
			}
			elem := field.Elem()
			switch {
			case elem.Kind() == reflect.String && tag != "":
				elem.SetString(apply(elem.String(), tag))
			case elem.Kind() == reflect.Struct:
				sanitizeStruct(elem)
			}
		case reflect.Struct:
			sanitizeStruct(field)
		case reflect.Slice:
			if tag != "" && field.Type().Elem().Kind() == reflect.String {
				for j := range field.Len() {
					elem := field.Index(j)
					elem.SetString(apply(elem.String(), tag))
				}
			}
		}
	}
}

func apply(value, tag string) string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for name := range strings.SplitSeq(tag, ",") {
		name = strings.TrimSpace(name)
		if n, ok := strings.CutPrefix(name, "max:"); ok {
			if maxLen, err := strconv.Atoi(n); err == nil && maxLen > 0 {
				value = MaxLength(value, maxLen)
			}
			continue
		}
		if fn, ok := registry[name]; ok {
			value = fn(value)
		}
	}
	return value
}
