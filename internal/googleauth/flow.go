package googleauth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"atsbuddy/internal/errors"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const googleIssuer = "https://accounts.google.com"

// Flow obtains a Google identity token through a loopback OAuth2/OIDC
// exchange. The token is only relayed to the backend, which performs its own
// verification; the local verify is a sanity check against a mixed-up
// client ID.
type Flow struct {
	clientID string
	config   *oauth2.Config
	verifier *gooidc.IDTokenVerifier
	logger   *errors.Logger
}

// NewFlow builds the flow from the configured client identity. An empty
// client ID means the sign-in path is disabled, reported as a config error
// rather than an app failure.
func NewFlow(ctx context.Context, clientID, clientSecret string, logger *errors.Logger) (*Flow, error) {
	if clientID == "" {
		return nil, errors.NewConfigError(errors.ErrCodeGoogleDisabled,
			"Google sign-in is not configured (set ATSBUDDY_AUTH_GOOGLECLIENTID)", nil)
	}

	provider, err := gooidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, errors.NewNetworkError(errors.ErrCodeGoogleFlow, "cannot reach the Google identity provider", err)
	}

	return &Flow{
		clientID: clientID,
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{gooidc.ScopeOpenID, "email", "profile"},
		},
		verifier: provider.Verifier(&gooidc.Config{ClientID: clientID}),
		logger:   logger,
	}, nil
}

// Obtain runs the loopback flow: start a localhost redirect listener, send
// the user to the consent URL, exchange the returned code, and extract the
// id_token for the backend.
func (f *Flow) Obtain(ctx context.Context) (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", errors.NewInternalError(errors.ErrCodeGoogleFlow, "cannot open loopback listener", err)
	}
	defer func() {
		if cerr := listener.Close(); cerr != nil {
			f.logger.Warn("Failed to close loopback listener", "error", cerr)
		}
	}()

	cfg := *f.config
	cfg.RedirectURL = fmt.Sprintf("http://%s/callback", listener.Addr().String())

	state := uuid.NewString()
	authURL := cfg.AuthCodeURL(state)

	type callbackResult struct {
		code string
		err  error
	}
	results := make(chan callbackResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			results <- callbackResult{err: errors.NewInternalError(errors.ErrCodeGoogleFlow, "OAuth state mismatch", nil)}
			return
		}
		if errMsg := q.Get("error"); errMsg != "" {
			http.Error(w, "sign-in was denied", http.StatusBadRequest)
			results <- callbackResult{err: errors.NewInternalError(errors.ErrCodeGoogleFlow,
				fmt.Sprintf("Google sign-in denied: %s", errMsg), nil)}
			return
		}
		fmt.Fprintln(w, "Signed in. You can close this window and return to the terminal.")
		results <- callbackResult{code: q.Get("code")}
	})

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if serr := server.Serve(listener); serr != nil && serr != http.ErrServerClosed {
			f.logger.Warn("Loopback server stopped unexpectedly", "error", serr)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if serr := server.Shutdown(shutdownCtx); serr != nil {
			f.logger.Warn("Failed to shut down loopback server", "error", serr)
		}
	}()

	fmt.Printf("Open this URL in your browser to sign in with Google:\n\n  %s\n\n", authURL)

	var code string
	select {
	case <-ctx.Done():
		return "", errors.NewInternalError(errors.ErrCodeGoogleFlow, "sign-in canceled", ctx.Err())
	case res := <-results:
		if res.err != nil {
			return "", res.err
		}
		code = res.code
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return "", errors.NewNetworkError(errors.ErrCodeGoogleFlow, "cannot exchange authorization code", err)
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", errors.NewInternalError(errors.ErrCodeGoogleFlow, "Google reply carries no identity token", nil)
	}

	if _, err := f.verifier.Verify(ctx, rawIDToken); err != nil {
		return "", errors.NewInternalError(errors.ErrCodeGoogleFlow, "identity token failed verification", err)
	}

	return rawIDToken, nil
}
