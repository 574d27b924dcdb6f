package clubapi

import (
	"context"
	"fmt"

	"clubadmin/internal/domain/account"
)

// LoginResult is the body of a successful POST /auth/login.
type LoginResult struct {
	AccessToken string           `json:"access_token"`
	User        account.Identity `json:"user"`
}

// Login exchanges credentials for a bearer token and the user's identity.
// PRE: creds passed account.Credentials.Validate
// POST: On success AccessToken is non-empty
func (c *Client) Login(ctx context.Context, creds account.Credentials) (LoginResult, error) {
	var out LoginResult
	if err := c.post(ctx, "/auth/login", "/auth/login", creds, &out); err != nil {
		return LoginResult{}, err
	}
	if out.AccessToken == "" {
		return LoginResult{}, fmt.Errorf("%w: login response has no access_token", ErrDecode)
	}
	return out, nil
}
