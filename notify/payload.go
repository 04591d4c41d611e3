package notify

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/changenotify/core/sanitizer"
)

// Placeholder is printed for any field that has no data.
const Placeholder = "—"

// Payload is the render-ready content of one notification. Every string field
// is non-empty after Normalize; missing data is represented by Placeholder.
// Single-line fields end up in subjects and header-like body lines, so line
// breaks are folded.
type Payload struct {
	ProjectID    string `sanitize:"no_control,single_line,max:128"`
	ClientName   string `sanitize:"no_control,single_line,max:200"`
	ClientEmail  string `sanitize:"no_control,single_line"`
	LanguagePair string `sanitize:"no_control,single_line,max:500"`
	FileList     string `sanitize:"no_control,single_line,max:2000"`
	Rush         bool
	Notes        string `sanitize:"no_control,lines,max:4000"`
	NewStatus    string `sanitize:"no_control,single_line,max:64"`
}

// HasClientEmail reports whether the payload carries a real client address.
func (p Payload) HasClientEmail() bool {
	return p.ClientEmail != "" && p.ClientEmail != Placeholder
}

// Normalize builds a Payload from the after-snapshot. recordID is the
// feed-assigned document identifier, used when the record has no projectId.
// It never panics: a malformed field leaves its placeholder in place.
func Normalize(recordID string, after Snapshot) Payload {
	p, _ := NormalizeRecord(recordID, after)
	return p
}

// NormalizeRecord is Normalize that also reports a recovered fault as an
// error wrapping ErrMalformedRecord. The payload is usable either way.
func NormalizeRecord(recordID string, after Snapshot) (p Payload, err error) {
	p = Payload{
		ProjectID:    orPlaceholder(recordID),
		ClientName:   Placeholder,
		ClientEmail:  Placeholder,
		LanguagePair: LanguagePair(nil, nil),
		FileList:     Placeholder,
		Notes:        Placeholder,
		NewStatus:    Placeholder,
	}
	defer func() {
		// Keep whatever was filled before the fault.
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrMalformedRecord, r)
		}
		p.sanitize()
	}()

	p.ProjectID = after.String("projectId", p.ProjectID)
	p.ClientName = after.String("fullname", Placeholder)
	p.ClientEmail = after.String("email", Placeholder)
	p.LanguagePair = LanguagePair(
		after.Strings("sourceLang", "sourceLanguage"),
		after.Strings("targetLang", "targetLanguage"),
	)
	p.FileList = FileList(after.Files())
	p.Rush = after.Bool("rush")
	p.Notes = after.String("notes", Placeholder)
	p.NewStatus = after.String("status", Placeholder)
	return p, nil
}

// LanguagePair renders "<source> → <target>", joining multi-language sides
// with ", " and printing Placeholder for an empty side.
func LanguagePair(source, target []string) string {
	return orPlaceholder(strings.Join(source, ", ")) + " → " + orPlaceholder(strings.Join(target, ", "))
}

// FileList renders the display names comma-joined, or Placeholder when there
// are none.
func FileList(f FileField) string {
	return orPlaceholder(strings.Join(f.DisplayNames(), ", "))
}

func (p *Payload) sanitize() {
	_ = sanitizer.SanitizeStruct(p)
	for _, f := range []*string{&p.ProjectID, &p.ClientName, &p.ClientEmail, &p.LanguagePair, &p.FileList, &p.Notes, &p.NewStatus} {
		*f = orPlaceholder(*f)
	}
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}
