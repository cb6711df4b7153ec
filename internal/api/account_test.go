package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitkumarofficial/reactivities/internal/model"
)

func TestLogin(t *testing.T) {
	client, requests := newRecordingServer(t, http.StatusOK,
		`{"username": "bob", "displayName": "Bob", "token": "jwt-token"}`)

	user, err := client.Login(context.Background(), model.LoginRequest{
		Email:    "bob@example.test",
		Password: "hunter2",
	})

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", user.Token)

	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/account/login", req.path)
	assert.Contains(t, req.body, `"email":"bob@example.test"`)
}

func TestRegister(t *testing.T) {
	client, requests := newRecordingServer(t, http.StatusOK,
		`{"username": "ann", "displayName": "Ann", "token": "jwt-token"}`)

	user, err := client.Register(context.Background(), model.RegisterRequest{
		Email:       "ann@example.test",
		Password:    "hunter2",
		Username:    "ann",
		DisplayName: "Ann",
	})

	require.NoError(t, err)
	assert.Equal(t, "ann", user.Username)
	assert.Equal(t, "/account/register", (*requests)[0].path)
}

func TestCurrentUser(t *testing.T) {
	client, requests := newRecordingServer(t, http.StatusOK,
		`{"username": "bob", "displayName": "Bob", "token": "jwt-token"}`)

	user, err := client.CurrentUser(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bob", user.DisplayName)

	req := (*requests)[0]
	assert.Equal(t, http.MethodGet, req.method)
	assert.Equal(t, "/account", req.path)
}

func TestProfile(t *testing.T) {
	client, requests := newRecordingServer(t, http.StatusOK,
		`{"username": "bob", "displayName": "Bob", "bio": "hello"}`)

	profile, err := client.Profile(context.Background(), "bob")

	require.NoError(t, err)
	assert.Equal(t, "Bob", profile.DisplayName)
	assert.Equal(t, "hello", profile.Bio)

	req := (*requests)[0]
	assert.Equal(t, http.MethodGet, req.method)
	assert.Equal(t, "/profiles/bob", req.path)
}
