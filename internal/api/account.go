package api

import (
	"context"
	"fmt"

	"github.com/rohitkumarofficial/reactivities/internal/model"
)

// Login exchanges credentials for a user. The caller decides whether to
// store the returned token in the session.
func (c *Client) Login(
	ctx context.Context,
	req model.LoginRequest,
) (*model.User, error) {
	var user model.User
	if err := c.Post(ctx, "/account/login", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a new account and returns the signed-in user.
func (c *Client) Register(
	ctx context.Context,
	req model.RegisterRequest,
) (*model.User, error) {
	var user model.User
	if err := c.Post(ctx, "/account/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser fetches the account belonging to the session token.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.Get(ctx, "/account", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile fetches the public profile for a username.
func (c *Client) Profile(
	ctx context.Context,
	username string,
) (*model.Profile, error) {
	var profile model.Profile
	path := fmt.Sprintf("/profiles/%s", username)
	if err := c.Get(ctx, path, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
