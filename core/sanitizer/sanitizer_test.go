package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/changenotify/core/sanitizer"
)

func TestStringFunctions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"single line", sanitizer.SingleLine, "a\r\nb\n\n c", "a b c"},
		{"control chars", sanitizer.RemoveControlChars, "a\x00b\x1bc\td\n", "abc\td\n"},
		{"extra whitespace", sanitizer.RemoveExtraWhitespace, "  a \t  b  ", "a b"},
		{"trim lower", sanitizer.TrimToLower, "  Jane@X.COM ", "jane@x.com"},
		{"trim lines", sanitizer.TrimLines, "\n\nfirst  \r\n\n second\t\n\n", "first\n\n second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestMaxLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "héll", sanitizer.MaxLength("héllo", 4))
	assert.Equal(t, "hi", sanitizer.MaxLength("hi", 10))
	assert.Empty(t, sanitizer.MaxLength("hi", 0))
}

func TestSanitizeStruct(t *testing.T) {
	t.Parallel()

	type inner struct {
		Code string `sanitize:"trim_lower"`
	}
	type sample struct {
		Subject string   `sanitize:"no_control,single_line,max:10"`
		Body    string   `sanitize:"no_control,lines"`
		Raw     string   `sanitize:"-"`
		Plain   string
		Tags    []string `sanitize:"trim"`
		Inner   inner
		Ptr     *inner
		hidden  string `sanitize:"trim"`
	}

	s := sample{
		Subject: "New\r\nBcc: x@evil.com",
		Body:    "line one  \n\x00line two\n\n",
		Raw:     "  keep  ",
		Plain:   "  keep  ",
		Tags:    []string{" a ", "b "},
		Inner:   inner{Code: " ES "},
		Ptr:     &inner{Code: " FR "},
		hidden:  "  keep  ",
	}
	require.NoError(t, sanitizer.SanitizeStruct(&s))

	assert.Equal(t, "New Bcc: x", s.Subject)
	assert.False(t, strings.ContainsAny(s.Subject, "\r\n"))
	assert.Equal(t, "line one\nline two", s.Body)
	assert.Equal(t, "  keep  ", s.Raw)
	assert.Equal(t, "  keep  ", s.Plain)
	assert.Equal(t, []string{"a", "b"}, s.Tags)
	assert.Equal(t, "es", s.Inner.Code)
	assert.Equal(t, "fr", s.Ptr.Code)
	assert.Equal(t, "  keep  ", s.hidden)
}

func TestSanitizeStruct_Errors(t *testing.T) {
	t.Parallel()

	type sample struct{}
	var nilPtr *sample

	assert.ErrorIs(t, sanitizer.SanitizeStruct(sample{}), sanitizer.ErrNotStructPointer)
	assert.ErrorIs(t, sanitizer.SanitizeStruct(nilPtr), sanitizer.ErrNotStructPointer)
	s := "x"
	assert.ErrorIs(t, sanitizer.SanitizeStruct(&s), sanitizer.ErrNotStructPointer)
}

func TestRegisterSanitizer(t *testing.T) {
	t.Parallel()

	sanitizer.RegisterSanitizer("shout_test", strings.ToUpper)

	type sample struct {
		V string `sanitize:"trim,shout_test"`
	}
	s := sample{V: " hey "}
	require.NoError(t, sanitizer.SanitizeStruct(&s))
	assert.Equal(t, "HEY", s.V)
}
