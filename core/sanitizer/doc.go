// Package sanitizer cleans free-form text before it reaches outbound
// messages.
//
// Functions can be called directly or declared on struct fields and applied
// with SanitizeStruct:
//
//	type Payload struct {
//		ProjectID string `sanitize:"no_control,single_line,max:128"`
//		Notes     string `sanitize:"no_control,lines,max:2000"`
//	}
//
//	if err := sanitizer.SanitizeStruct(&p); err != nil {
//		return err
//	}
//
// Built-in tag names: trim, trim_lower, single_line, no_spaces, no_control,
// lines, and max:N. RegisterSanitizer adds more.
package sanitizer
