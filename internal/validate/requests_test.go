package validate

import (
	"strings"
	"testing"

	"atsbuddy/internal/types"
)

var (
	goodResume = strings.Repeat("experienced engineer ", 5)
	goodJD     = strings.Repeat("job requirements ", 3)
)

func TestRegisterRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        types.RegisterRequest
		wantFields []string
	}{
		{
			name: "all valid",
			req: types.RegisterRequest{
				FullName: "Amina Khalid",
				Email:    "amina@example.com",
				Password: "correct-horse",
			},
			wantFields: nil,
		},
		{
			name: "everything invalid collects all fields",
			req: types.RegisterRequest{
				FullName: "A",
				Email:    "not-an-email",
				Password: "short",
			},
			wantFields: []string{"full_name", "email", "password"},
		},
		{
			name: "only password invalid",
			req: types.RegisterRequest{
				FullName: "Amina Khalid",
				Email:    "amina@example.com",
				Password: "short",
			},
			wantFields: []string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := RegisterRequest(tt.req)
			assertFields(t, errs, tt.wantFields)
		})
	}
}

func TestLoginRequest(t *testing.T) {
	errs := LoginRequest(types.LoginRequest{Email: "bad", Password: "short"})
	assertFields(t, errs, []string{"email", "password"})

	errs = LoginRequest(types.LoginRequest{Email: "amina@example.com", Password: "correct-horse"})
	assertFields(t, errs, nil)
}

func TestATSCheckRequestRequiresJobDescription(t *testing.T) {
	errs := ATSCheckRequest(types.ATSCheckRequest{
		ResumeText:     goodResume,
		JobDescription: "",
	})
	assertFields(t, errs, []string{"job_description"})
}

func TestOptimizeRequestJobDescriptionOptional(t *testing.T) {
	errs := OptimizeRequest(types.OptimizeRequest{
		ResumeText:     goodResume,
		JobDescription: "",
	})
	assertFields(t, errs, nil)

	// Provided but too short still fails even though optional.
	errs = OptimizeRequest(types.OptimizeRequest{
		ResumeText:     goodResume,
		JobDescription: "too short",
	})
	assertFields(t, errs, []string{"job_description"})
}

func TestKeywordGapRequestRequiresJobDescription(t *testing.T) {
	errs := KeywordGapRequest(types.KeywordGapRequest{
		ResumeText:     goodResume,
		JobDescription: "",
	})
	assertFields(t, errs, []string{"job_description"})

	errs = KeywordGapRequest(types.KeywordGapRequest{
		ResumeText:     goodResume,
		JobDescription: goodJD,
	})
	assertFields(t, errs, nil)
}

func assertFields(t *testing.T, errs FieldErrors, want []string) {
	t.Helper()
	if len(errs) != len(want) {
		t.Fatalf("Expected %d field errors, got %d: %v", len(want), len(errs), errs)
	}
	for _, field := range want {
		if !errs.Has(field) {
			t.Errorf("Expected a failure on field '%s', got %v", field, errs)
		}
	}
}
