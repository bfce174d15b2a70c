package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type permissionsRequest struct {
	Username    string   `json:"username"`
	Permissions []string `json:"permissions"`
}

// AddPermissions attaches an empty permission set to the user, which the
// permission module requires before any grants can be made.
func (c *client) AddPermissions(ctx context.Context, user User) error {
	body := permissionsRequest{
		Username:    user.Username,
		Permissions: []string{},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("addPermissions: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/perms/users", bytes.NewReader(b))
	if err != nil {
		return err
	}
	_, err = c.do(req, "addPermissions")
	return err
}
