package validate

import "atsbuddy/internal/types"

// Composed per-request rules. Each returns every failing field so a form can
// attach them all at once.

func RegisterRequest(req types.RegisterRequest) FieldErrors {
	var errs FieldErrors
	if ferr := FullName(req.FullName); ferr != nil {
		errs = append(errs, *ferr)
	}
	if ferr := Email(req.Email); ferr != nil {
		errs = append(errs, *ferr)
	}
	if ferr := Password(req.Password); ferr != nil {
		errs = append(errs, *ferr)
	}
	return errs
}

func LoginRequest(req types.LoginRequest) FieldErrors {
	var errs FieldErrors
	if ferr := Email(req.Email); ferr != nil {
		errs = append(errs, *ferr)
	}
	if ferr := Password(req.Password); ferr != nil {
		errs = append(errs, *ferr)
	}
	return errs
}

func ATSCheckRequest(req types.ATSCheckRequest) FieldErrors {
	var errs FieldErrors
	if ferr := ResumeText(req.ResumeText); ferr != nil {
		errs = append(errs, *ferr)
	}
	if ferr := JobDescription(req.JobDescription, true); ferr != nil {
		errs = append(errs, *ferr)
	}
	return errs
}

// OptimizeRequest differs from the check only in the job description being
// optional.
func OptimizeRequest(req types.OptimizeRequest) FieldErrors {
	var errs FieldErrors
	if ferr := ResumeText(req.ResumeText); ferr != nil {
		errs = append(errs, *ferr)
	}
	if ferr := JobDescription(req.JobDescription, false); ferr != nil {
		errs = append(errs, *ferr)
	}
	return errs
}

func KeywordGapRequest(req types.KeywordGapRequest) FieldErrors {
	var errs FieldErrors
	if ferr := ResumeText(req.ResumeText); ferr != nil {
		errs = append(errs, *ferr)
	}
	if ferr := JobDescription(req.JobDescription, true); ferr != nil {
		errs = append(errs, *ferr)
	}
	return errs
}
