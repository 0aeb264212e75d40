package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleUser is the slice of Google's userinfo response we care about.
// Google returns more fields; we only unmarshal what the account-linking
// flow needs.
type GoogleUser struct {
	ID      string `json:"id"`    // Google's account ID — stable, never changes
	Email   string `json:"email"` // the stable external key we link accounts by
	Name    string `json:"name"`  // display name, the slug generator's input
	Picture string `json:"picture"`
}

// GoogleProvider wraps golang.org/x/oauth2 for the Google Authorization Code
// flow: redirect the user to Google, receive a short-lived code on the
// callback URL, exchange it server-to-server for an access token, then fetch
// the user's profile. The client secret and the access token never touch the
// browser.
type GoogleProvider struct {
	config *oauth2.Config
}

// NewGoogleProvider creates a GoogleProvider with the given credentials.
// callbackURL must exactly match the authorized redirect URI registered in
// the Google Cloud console.
func NewGoogleProvider(clientID, clientSecret, callbackURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthURL returns the URL to redirect the user to for authorization.
//
// The state is a random nonce stored in a cookie before redirecting; the
// callback handler verifies the returned state matches, which stops CSRF
// attacks from completing an OAuth flow the user never started.
func (p *GoogleProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange completes the OAuth flow: trades the authorization code for the
// Google user profile the account-linking flow keys on.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*GoogleUser, error) {
	oauthToken, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("auth: exchanging OAuth code: %w", err)
	}

	// config.Client returns an *http.Client that attaches the bearer token
	// to every request.
	client := p.config.Client(ctx, oauthToken)

	resp, err := client.Get(userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("auth: calling Google userinfo API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth: Google userinfo API returned status %d", resp.StatusCode)
	}

	var gUser GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&gUser); err != nil {
		return nil, fmt.Errorf("auth: decoding Google userinfo response: %w", err)
	}

	if gUser.Email == "" {
		return nil, fmt.Errorf("auth: Google returned a user without an email")
	}

	return &gUser, nil
}
