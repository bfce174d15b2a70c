package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type credentialsRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateCredentials registers login credentials for the user. The password
// is left blank; the user sets one through the regular reset flow.
func (c *client) CreateCredentials(ctx context.Context, user User) error {
	body := credentialsRequest{
		UserID:   user.ID,
		Username: user.Username,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("createCredentials: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/authn/credentials", bytes.NewReader(b))
	if err != nil {
		return err
	}
	_, err = c.do(req, "createCredentials")
	return err
}

// DeleteCredentials removes the credentials registered for username.
func (c *client) DeleteCredentials(ctx context.Context, username string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/authn/credentials/"+url.PathEscape(username), nil)
	if err != nil {
		return err
	}
	_, err = c.do(req, "deleteCredentials")
	return err
}
