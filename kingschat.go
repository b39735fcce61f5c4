package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrGatewayUnauthorized is returned when KingsChat rejects the access
// token; the boundary translates it to a 401.
var ErrGatewayUnauthorized = errors.New("kingschat rejected the access token")

// KingsChatClient talks to the identity gateway. The contract is small:
// given a bearer access token from the third-party login flow, return
// the profile it belongs to.
type KingsChatClient struct {
	BaseURL string
	HTTP    *http.Client
}

type KCProfile struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func NewKingsChatClient(baseURL string) *KingsChatClient {
	return &KingsChatClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchProfile verifies the access token against the gateway and
// returns the owning profile.
func (kc *KingsChatClient) FetchProfile(ctx context.Context, accessToken string) (*KCProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, kc.BaseURL+"/developer/api/profile", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := kc.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kingschat profile request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrGatewayUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kingschat profile request: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Profile KCProfile `json:"profile"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("kingschat profile response: %w", err)
	}
	if body.Profile.Username == "" {
		return nil, ErrGatewayUnauthorized
	}
	return &body.Profile, nil
}
