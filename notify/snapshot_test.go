package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/changenotify/notify"
)

type bsonLikeDoc map[string]any
type bsonLikeArray []any

func TestSnapshot_Lookup(t *testing.T) {
	t.Parallel()

	s := notify.Snapshot{
		"a":    map[string]any{"b": map[string]any{"c": "deep"}},
		"nil":  nil,
		"str":  "x",
		"bson": bsonLikeDoc{"k": "v"},
	}

	v, ok := s.Lookup("a.b.c")
	assert.True(t, ok)
	assert.Equal(t, "deep", v)

	v, ok = s.Lookup("bson.k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	for _, path := range []string{"missing", "a.missing.c", "nil", "nil.x", "str.x", ""} {
		_, ok := s.Lookup(path)
		assert.False(t, ok, path)
	}

	var empty notify.Snapshot
	_, ok = empty.Lookup("a")
	assert.False(t, ok)
}

func TestSnapshot_StringAndFallbacks(t *testing.T) {
	t.Parallel()

	s := notify.Snapshot{
		"sourceLanguage": "EN",
		"targetLang":     "  ",
		"targetLanguage": "FR",
		"count":          3,
		"list":           []any{"a"},
	}

	assert.Equal(t, "EN", s.FirstString("-", "sourceLang", "sourceLanguage"))
	assert.Equal(t, "FR", s.FirstString("-", "targetLang", "targetLanguage"))
	assert.Equal(t, "3", s.String("count", "-"))
	assert.Equal(t, "-", s.String("list", "-"))
	assert.Equal(t, "-", s.String("missing", "-"))
}

func TestSnapshot_StringsPrefersPrimary(t *testing.T) {
	t.Parallel()

	s := notify.Snapshot{
		"sourceLang":     []any{"EN", "", "DE"},
		"sourceLanguage": "IT",
		"targetLang":     bsonLikeArray{"FR"},
	}
	assert.Equal(t, []string{"EN", "DE"}, s.Strings("sourceLang", "sourceLanguage"))
	assert.Equal(t, []string{"FR"}, s.Strings("targetLang", "targetLanguage"))
	assert.Nil(t, s.Strings("nope"))
}

func TestSnapshot_Bool(t *testing.T) {
	t.Parallel()

	s := notify.Snapshot{
		"t": true, "f": false, "yes": "Yes", "no": "no", "one": 1, "zero": 0.0, "obj": map[string]any{},
	}
	assert.True(t, s.Bool("t"))
	assert.False(t, s.Bool("f"))
	assert.True(t, s.Bool("yes"))
	assert.False(t, s.Bool("no"))
	assert.True(t, s.Bool("one"))
	assert.False(t, s.Bool("zero"))
	assert.False(t, s.Bool("obj"))
	assert.False(t, s.Bool("missing"))
}

func TestSnapshot_FilesShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		snap  notify.Snapshot
		shape notify.FileShape
		names []string
	}{
		{name: "absent", snap: notify.Snapshot{}, shape: notify.FilesAbsent},
		{name: "null", snap: notify.Snapshot{"files": nil}, shape: notify.FilesAbsent},
		{name: "empty list", snap: notify.Snapshot{"files": []any{}}, shape: notify.FilesAbsent},
		{name: "single name", snap: notify.Snapshot{"files": "a/b/report.pdf"}, shape: notify.FilesSingleName, names: []string{"report.pdf"}},
		{name: "legacy field", snap: notify.Snapshot{"file": "brief.pdf"}, shape: notify.FilesSingleName, names: []string{"brief.pdf"}},
		{name: "files wins over file", snap: notify.Snapshot{"files": []any{"a.pdf"}, "file": "b.pdf"}, shape: notify.FilesListOfNames, names: []string{"a.pdf"}},
		{name: "list of names", snap: notify.Snapshot{"files": []string{"x/a.pdf", "", "b.doc"}}, shape: notify.FilesListOfNames, names: []string{"a.pdf", "b.doc"}},
		{
			name: "list of objects",
			snap: notify.Snapshot{"files": []any{
				map[string]any{"name": "x.docx"},
				map[string]any{"fileName": "y.pdf"},
				map[string]any{"path": "uploads/p1/z.txt"},
				map[string]any{"url": "https://storage.example.com/v0/b/bkt/o/p1%2Fscan.png?alt=media"},
				map[string]any{"size": 12},
			}},
			shape: notify.FilesListOfObjects,
			names: []string{"x.docx", "y.pdf", "z.txt", "scan.png", "file"},
		},
		{name: "single object", snap: notify.Snapshot{"files": map[string]any{"name": "solo.pdf"}}, shape: notify.FilesListOfObjects, names: []string{"solo.pdf"}},
		{name: "url string", snap: notify.Snapshot{"files": []any{"https://cdn.example.com/a/b/final.pdf?token=1"}}, shape: notify.FilesListOfNames, names: []string{"final.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := tt.snap.Files()
			assert.Equal(t, tt.shape, f.Shape)
			assert.Equal(t, tt.names, f.DisplayNames())
		})
	}
}
