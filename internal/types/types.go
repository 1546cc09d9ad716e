package types

import "encoding/json"

// Envelope is the reply shape every backend endpoint uses. A reply with
// Success=false is a failure even on a 2xx transport status.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// RegisterRequest represents the input for account registration
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisteredUser represents a created or fetched account profile
type RegisteredUser struct {
	UserID          int    `json:"user_id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// LoginRequest represents the input for email/password sign-in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleAuthRequest carries a Google identity token for exchange
type GoogleAuthRequest struct {
	IDToken string `json:"id_token"`
}

// AuthResponse represents a successful credential exchange
type AuthResponse struct {
	UserID      int    `json:"user_id,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	Email       string `json:"email,omitempty"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// ATSCheckRequest represents the input for an ATS compatibility check
type ATSCheckRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
	TargetRole     string `json:"target_role,omitempty"`
	Industry       string `json:"industry,omitempty"`
}

// ScoreBreakdown represents the per-dimension ATS scores
type ScoreBreakdown struct {
	KeywordMatch        float64 `json:"keyword_match"`
	SectionCompleteness float64 `json:"section_completeness"`
	Readability         float64 `json:"readability"`
	UAEMarketFit        float64 `json:"uae_market_fit"`
}

// ATSCheckResponse represents the output of an ATS compatibility check
type ATSCheckResponse struct {
	OverallScore    float64        `json:"overall_score"`
	Breakdown       ScoreBreakdown `json:"breakdown"`
	MissingKeywords []string       `json:"missing_keywords"`
	MatchedKeywords []string       `json:"matched_keywords"`
	SectionGaps     []string       `json:"section_gaps"`
	Recommendations []string       `json:"recommendations"`
}

// OptimizeRequest represents the input for resume optimization.
// JobDescription is optional here, unlike the check and keyword-gap calls.
type OptimizeRequest struct {
	ResumeText       string `json:"resume_text"`
	JobDescription   string `json:"job_description,omitempty"`
	TargetRole       string `json:"target_role,omitempty"`
	PreferredEmirate string `json:"preferred_emirate,omitempty"`
}

// OptimizeResponse represents the output of resume optimization
type OptimizeResponse struct {
	OptimizedSummary    string   `json:"optimized_summary"`
	RewrittenBullets    []string `json:"rewritten_bullets"`
	SkillsToAdd         []string `json:"skills_to_add"`
	UAELocalizationTips []string `json:"uae_localization_tips"`
}

// KeywordGapRequest represents the input for a keyword-gap analysis
type KeywordGapRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

// KeywordGapResponse represents the output of a keyword-gap analysis
type KeywordGapResponse struct {
	MissingKeywords      []string `json:"missing_keywords"`
	HighPriorityKeywords []string `json:"high_priority_keywords"`
	CoveragePercentage   float64  `json:"coverage_percentage"`
}

// ExtractResponse represents the output of file-based text extraction
type ExtractResponse struct {
	FileName       string `json:"file_name"`
	FileType       string `json:"file_type"`
	ExtractedText  string `json:"extracted_text"`
	CharacterCount int    `json:"character_count"`
}

// HealthResponse represents the backend liveness reply
type HealthResponse struct {
	Message string `json:"message"`
}
