package validate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// Minimum lengths enforced before any network call is made.
const (
	MinPasswordLen       = 8
	MinFullNameLen       = 2
	MinResumeTextLen     = 50
	MinJobDescriptionLen = 30
)

// emailPattern accepts a simple local@domain.tld shape. The backend performs
// its own verification; this only blocks obviously malformed input locally.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// uploadExtensions lists the only file types the extraction endpoint accepts.
var uploadExtensions = []string{".pdf", ".docx"}

// FieldError is a validation failure scoped to a single named field.
// It never reaches the network layer; submission is blocked while any exist.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors collects per-field failures for one submission attempt.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether a failure is attached to the named field.
func (e FieldErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Clear returns a copy with any failure on the named field removed.
func (e FieldErrors) Clear(field string) FieldErrors {
	out := make(FieldErrors, 0, len(e))
	for _, fe := range e {
		if fe.Field != field {
			out = append(out, fe)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Email validates the address shape.
func Email(value string) *FieldError {
	if !emailPattern.MatchString(strings.TrimSpace(value)) {
		return &FieldError{Field: "email", Message: "enter a valid email address"}
	}
	return nil
}

// Password enforces the minimum credential length.
func Password(value string) *FieldError {
	if len(value) < MinPasswordLen {
		return &FieldError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLen)}
	}
	return nil
}

// FullName enforces the minimum trimmed name length.
func FullName(value string) *FieldError {
	if len(strings.TrimSpace(value)) < MinFullNameLen {
		return &FieldError{Field: "full_name", Message: "enter your full name"}
	}
	return nil
}

// ResumeText enforces the minimum trimmed resume length.
func ResumeText(value string) *FieldError {
	if len(strings.TrimSpace(value)) < MinResumeTextLen {
		return &FieldError{Field: "resume_text", Message: fmt.Sprintf("resume text must be at least %d characters", MinResumeTextLen)}
	}
	return nil
}

// JobDescription enforces the minimum trimmed length. Required is false for
// tools where the field is optional; an empty optional field passes.
func JobDescription(value string, required bool) *FieldError {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" && !required {
		return nil
	}
	if len(trimmed) < MinJobDescriptionLen {
		return &FieldError{Field: "job_description", Message: fmt.Sprintf("job description must be at least %d characters", MinJobDescriptionLen)}
	}
	return nil
}

// UploadFilename gates extraction uploads to supported document types.
// The match is case-insensitive, so resume.DOCX is accepted.
func UploadFilename(name string) *FieldError {
	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(uploadExtensions, ext) {
		return &FieldError{Field: "file", Message: "only PDF and DOCX files are supported"}
	}
	return nil
}
