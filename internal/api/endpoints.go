package api

import (
	"context"
	"io"
	"net/http"

	"atsbuddy/internal/types"
)

// Backend paths, rooted at the configured base URL.
const (
	pathHealth     = "/api/v1/health"
	pathRegister   = "/api/v1/auth/register"
	pathLogin      = "/api/v1/auth/login"
	pathGoogle     = "/api/v1/auth/google"
	pathMe         = "/api/v1/auth/me"
	pathATSCheck   = "/api/v1/ats/check"
	pathOptimize   = "/api/v1/resume/optimize"
	pathKeywordGap = "/api/v1/resume/keyword-gap"
	pathExtract    = "/api/v1/resume/extract-text"
)

// Health checks backend liveness. Unauthenticated.
func (c *Client) Health(ctx context.Context) (types.HealthResponse, error) {
	return Do[types.HealthResponse](ctx, c, http.MethodGet, pathHealth, nil, false)
}

// Register creates an account. Unauthenticated; it does not log in.
func (c *Client) Register(ctx context.Context, req types.RegisterRequest) (types.RegisteredUser, error) {
	return Do[types.RegisteredUser](ctx, c, http.MethodPost, pathRegister, req, false)
}

// Login exchanges email/password credentials for an access token.
func (c *Client) Login(ctx context.Context, req types.LoginRequest) (types.AuthResponse, error) {
	return Do[types.AuthResponse](ctx, c, http.MethodPost, pathLogin, req, false)
}

// GoogleAuth exchanges a Google identity token for an access token.
func (c *Client) GoogleAuth(ctx context.Context, req types.GoogleAuthRequest) (types.AuthResponse, error) {
	return Do[types.AuthResponse](ctx, c, http.MethodPost, pathGoogle, req, false)
}

// Me fetches the profile bound to the current session.
func (c *Client) Me(ctx context.Context) (types.RegisteredUser, error) {
	return Do[types.RegisteredUser](ctx, c, http.MethodGet, pathMe, nil, true)
}

// CheckATS runs the ATS compatibility check.
func (c *Client) CheckATS(ctx context.Context, req types.ATSCheckRequest) (types.ATSCheckResponse, error) {
	return Do[types.ATSCheckResponse](ctx, c, http.MethodPost, pathATSCheck, req, true)
}

// Optimize runs resume optimization.
func (c *Client) Optimize(ctx context.Context, req types.OptimizeRequest) (types.OptimizeResponse, error) {
	return Do[types.OptimizeResponse](ctx, c, http.MethodPost, pathOptimize, req, true)
}

// KeywordGap runs the keyword-gap analysis.
func (c *Client) KeywordGap(ctx context.Context, req types.KeywordGapRequest) (types.KeywordGapResponse, error) {
	return Do[types.KeywordGapResponse](ctx, c, http.MethodPost, pathKeywordGap, req, true)
}

// ExtractText uploads a PDF or DOCX document for text extraction.
func (c *Client) ExtractText(ctx context.Context, filename string, file io.Reader) (types.ExtractResponse, error) {
	return Upload[types.ExtractResponse](ctx, c, pathExtract, filename, file)
}
