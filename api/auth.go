package api

import (
	"net/url"

	"github.com/amirsalarabedini/LinguaTask/model"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. Credentials go
// form-encoded, matching the server's OAuth2 password flow.
func (c *Client) Login(username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp tokenResponse
	if err := c.postForm("/token", form, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Register creates a new account. It does not log the account in.
func (c *Client) Register(email, username, password string) error {
	return c.postJSON("/register", registerRequest{
		Email:    email,
		Username: username,
		Password: password,
	}, nil)
}

// Me fetches the profile of the user the attached token belongs to.
func (c *Client) Me() (*model.User, error) {
	var user model.User
	if err := c.get("/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
