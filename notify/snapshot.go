package notify

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// Snapshot is a loosely-typed, read-only view of one record at one point in
// time. Nested documents may be any map with string keys and lists any slice,
// so decoder-specific types (bson.M, bson.A) work without conversion.
type Snapshot map[string]any

// Lookup walks a dotted path. It never panics: a missing segment, a nil value
// or a non-document intermediate all report (nil, false).
func (s Snapshot) Lookup(path string) (any, bool) {
	if s == nil || path == "" {
		return nil, false
	}

	var cur any = map[string]any(s)
	for _, key := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		v, ok := m[key]
		if !ok || v == nil {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// String returns the value at path as a trimmed string, or fallback when it is
// absent, empty, or not a scalar.
func (s Snapshot) String(path, fallback string) string {
	v, ok := s.Lookup(path)
	if !ok {
		return fallback
	}
	if str, ok := scalarString(v); ok && str != "" {
		return str
	}
	return fallback
}

// FirstString tries each path in order (primary spelling first) and returns
// the first non-empty string.
func (s Snapshot) FirstString(fallback string, paths ...string) string {
	for _, p := range paths {
		if v := s.String(p, ""); v != "" {
			return v
		}
	}
	return fallback
}

// Strings reads a field that may hold a string or a list of strings, trying
// each path in order. Empty items are dropped.
func (s Snapshot) Strings(paths ...string) []string {
	for _, p := range paths {
		v, ok := s.Lookup(p)
		if !ok {
			continue
		}
		var out []string
		if items, ok := asSlice(v); ok {
			for _, item := range items {
				if str, ok := scalarString(item); ok && str != "" {
					out = append(out, str)
				}
			}
		} else if str, ok := scalarString(v); ok && str != "" {
			out = append(out, str)
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// Bool coerces the value at path: booleans as-is, "true"/"yes"/"1"/"on"
// strings, and non-zero numbers are true. Anything else is false.
func (s Snapshot) Bool(path string) bool {
	v, ok := s.Lookup(path)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "1", "on", "y":
			return true
		}
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	}
	return false
}

// FileShape enumerates the shapes the files field has taken over time.
type FileShape int

const (
	FilesAbsent FileShape = iota
	FilesSingleName
	FilesListOfNames
	FilesListOfObjects
)

// FileField is the classified files field. Names holds scalar entries and
// Objects holds structured entries; which one is populated depends on Shape.
type FileField struct {
	Shape   FileShape
	Names   []string
	Objects []Snapshot
}

// Files classifies the files field, preferring "files" over the legacy "file".
func (s Snapshot) Files() FileField {
	for _, key := range []string{"files", "file"} {
		v, ok := s.Lookup(key)
		if !ok {
			continue
		}
		if str, ok := v.(string); ok {
			if strings.TrimSpace(str) == "" {
				continue
			}
			return FileField{Shape: FilesSingleName, Names: []string{str}}
		}
		if m, ok := asMap(v); ok {
			return FileField{Shape: FilesListOfObjects, Objects: []Snapshot{m}}
		}
		items, ok := asSlice(v)
		if !ok {
			continue
		}
		return classifyFileList(items)
	}
	return FileField{Shape: FilesAbsent}
}

func classifyFileList(items []any) FileField {
	var (
		names   []string
		objects []Snapshot
	)
	for _, item := range items {
		if m, ok := asMap(item); ok {
			objects = append(objects, m)
			continue
		}
		if str, ok := scalarString(item); ok {
			names = append(names, str)
		}
	}

	if len(objects) == 0 {
		if len(names) == 0 {
			return FileField{Shape: FilesAbsent}
		}
		return FileField{Shape: FilesListOfNames, Names: names}
	}
	// Mixed lists are rare; scalars become path-only objects.
	for _, n := range names {
		objects = append(objects, Snapshot{"path": n})
	}
	return FileField{Shape: FilesListOfObjects, Objects: objects}
}

// DisplayNames flattens the field into display file names, dropping empties.
func (f FileField) DisplayNames() []string {
	var out []string
	add := func(name string) {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}

	switch f.Shape {
	case FilesSingleName, FilesListOfNames:
		for _, n := range f.Names {
			add(baseName(n))
		}
	case FilesListOfObjects:
		for _, o := range f.Objects {
			add(objectName(o))
		}
	case FilesAbsent:
	}
	return out
}

func objectName(o Snapshot) string {
	if n := o.String("name", ""); n != "" {
		return n
	}
	if n := o.String("fileName", ""); n != "" {
		return n
	}
	for _, key := range []string{"path", "url"} {
		if n := baseName(o.String(key, "")); n != "" {
			return n
		}
	}
	return "file"
}

// baseName returns the last path segment of a file path or URL. URL paths are
// unescaped, so storage links like ".../o/a%2Fb%2Freport.pdf?alt=media" yield
// "report.pdf".
func baseName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if u, err := url.Parse(s); err == nil && u.Scheme != "" && u.Host != "" {
		if last := lastSegment(u.Path); last != "" {
			return last
		}
		return s
	}
	return lastSegment(s)
}

func lastSegment(p string) string {
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case fmt.Stringer:
		return strings.TrimSpace(t.String()), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(v), true
	}
	return "", false
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Snapshot:
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func asSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	// []byte is a scalar blob, not a list.
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
