package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/EscoLessgo/word-craft-arena/internal/security"
)

// OAuthProvider defines provider configuration and metadata
type OAuthProvider struct {
	Name        string
	Label       string
	Config      *oauth2.Config
	UserInfoURL string
}

type oauthUserInfo struct {
	Subject string
	Email   string
	Name    string
}

func (p OAuthProvider) configured() bool {
	return p.Config != nil && p.Config.ClientID != "" && p.Config.ClientSecret != ""
}

// StartOAuth initiates the OAuth flow for a provider
func (h *AuthHandler) StartOAuth(w http.ResponseWriter, r *http.Request) {
	providerKey := r.PathValue("provider")
	provider, ok := h.oauthProviders[providerKey]
	if !ok || !provider.configured() {
		respondWithError(w, http.StatusBadRequest, "OAuth provider not configured", "", nil)
		return
	}

	state := security.GenerateSessionID()
	h.setTempCookie(w, r, "oauth_state", state, 10*time.Minute)
	h.setTempCookie(w, r, "oauth_provider", providerKey, 10*time.Minute)

	config := *provider.Config
	config.RedirectURL = h.oauthRedirectURL(r, providerKey)

	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOnline)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// OAuthCallback handles the OAuth provider callback
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	providerKey := r.PathValue("provider")
	provider, ok := h.oauthProviders[providerKey]
	if !ok || !provider.configured() {
		respondWithError(w, http.StatusBadRequest, "OAuth provider not configured", "", nil)
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "missing authorization code", "", nil)
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		respondWithError(w, http.StatusBadRequest, "invalid OAuth state", "", nil)
		return
	}
	if providerCookie, err := r.Cookie("oauth_provider"); err == nil && providerCookie.Value != providerKey {
		respondWithError(w, http.StatusBadRequest, "OAuth provider mismatch", "", nil)
		return
	}

	config := *provider.Config
	config.RedirectURL = h.oauthRedirectURL(r, providerKey)

	token, err := config.Exchange(r.Context(), code)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "OAuth exchange failed", "Failed to exchange OAuth code", err)
		return
	}

	info, err := fetchOAuthUserInfo(r, &config, token, provider.UserInfoURL)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "could not fetch user info", "Failed to fetch OAuth user info", err)
		return
	}

	session, user, apiToken, err := h.authService.OAuthLogin(providerKey, info.Subject, info.Email, info.Name)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "OAuth sign-in failed", "Failed to sign in OAuth user", err)
		return
	}

	h.setSessionCookie(w, r, session)
	respondJSON(w, http.StatusOK, sessionResponse{
		UID:   user.UID,
		Email: user.Email,
		Name:  user.Name,
		Token: apiToken,
	})
}

func (h *AuthHandler) oauthRedirectURL(r *http.Request, providerKey string) string {
	base := h.redirectBase
	if base == "" {
		scheme := "http"
		if security.IsSecureRequest(r) {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, r.Host)
	}
	return fmt.Sprintf("%s/auth/%s/callback", base, providerKey)
}

func fetchOAuthUserInfo(r *http.Request, config *oauth2.Config, token *oauth2.Token, userInfoURL string) (*oauthUserInfo, error) {
	client := config.Client(r.Context(), token)
	resp, err := client.Get(userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		ID    string `json:"id"`
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	subject := payload.Sub
	if subject == "" {
		subject = payload.ID
	}
	return &oauthUserInfo{Subject: subject, Email: payload.Email, Name: payload.Name}, nil
}
