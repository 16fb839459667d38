package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tidwall/gjson"
)

// Session holds the signed-in user's identity and access token.
type Session struct {
	UserID      string
	AccessToken string
}

// AuthClient handles account creation and sign-in against the auth
// endpoint, and holds the current session.
type AuthClient struct {
	client *Client

	mu      sync.RWMutex
	session *Session
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAccount registers a new account and signs it in. Returns the new
// user id.
func (a *AuthClient) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("email and password are required")
	}
	body, err := json.Marshal(credentialsRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	respBody, statusCode, err := a.client.request(ctx, "POST", a.client.authURL+"/signup", body, nil)
	if err != nil {
		return "", err
	}
	if statusCode >= 400 {
		return "", parseError(respBody, statusCode)
	}
	return a.storeSession(respBody)
}

// SignIn authenticates with the password grant. Returns the user id.
func (a *AuthClient) SignIn(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("email and password are required")
	}
	body, err := json.Marshal(credentialsRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	respBody, statusCode, err := a.client.request(ctx, "POST", a.client.authURL+"/token?grant_type=password", body, nil)
	if err != nil {
		return "", err
	}
	if statusCode >= 400 {
		return "", parseError(respBody, statusCode)
	}
	return a.storeSession(respBody)
}

// CurrentUserID returns the signed-in user id, or "" when signed out.
func (a *AuthClient) CurrentUserID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return ""
	}
	return a.session.UserID
}

// SignOut drops the current session.
func (a *AuthClient) SignOut() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = nil
}

// accessToken returns the current access token, or "" when signed out.
func (a *AuthClient) accessToken() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return ""
	}
	return a.session.AccessToken
}

// storeSession extracts the user id and access token from an auth response.
// Signup responses nest the user under "user"; token responses carry it at
// the top level alongside "access_token".
func (a *AuthClient) storeSession(respBody []byte) (string, error) {
	userID := gjson.GetBytes(respBody, "user.id").String()
	if userID == "" {
		userID = gjson.GetBytes(respBody, "id").String()
	}
	if userID == "" {
		return "", fmt.Errorf("auth response missing user id")
	}
	token := gjson.GetBytes(respBody, "access_token").String()

	a.mu.Lock()
	a.session = &Session{UserID: userID, AccessToken: token}
	a.mu.Unlock()
	return userID, nil
}
