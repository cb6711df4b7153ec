package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitkumarofficial/reactivities/internal/model"
	"github.com/rohitkumarofficial/reactivities/internal/session"
)

type recordedRequest struct {
	method string
	path   string
	body   string
}

func newRecordingServer(t *testing.T, status int, response string) (*Client, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			body:   string(body),
		})
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, session.New(), WithDelay(0))
	return client, &requests
}

func TestListActivities(t *testing.T) {
	client, requests := newRecordingServer(t, http.StatusOK, `[
		{"id": "a1", "title": "Past Lecture", "date": "2024-03-11T10:00:00", "category": "culture"},
		{"id": "a2", "title": "Concert", "date": "2024-03-12T18:00:00", "category": "music"}
	]`)

	payloads, err := client.ListActivities(context.Background())

	require.NoError(t, err)
	require.Len(t, payloads, 2)
	assert.Equal(t, "a1", payloads[0].ID)
	assert.Equal(t, "music", payloads[1].Category)

	require.Len(t, *requests, 1)
	assert.Equal(t, http.MethodGet, (*requests)[0].method)
	assert.Equal(t, "/activities", (*requests)[0].path)
}

func TestActivityDetails(t *testing.T) {
	client, requests := newRecordingServer(t, http.StatusOK,
		`{"id": "a1", "title": "Past Lecture", "date": "2024-03-11T10:00:00"}`)

	payload, err := client.ActivityDetails(context.Background(), "a1")

	require.NoError(t, err)
	assert.Equal(t, "Past Lecture", payload.Title)
	assert.Equal(t, "/activities/a1", (*requests)[0].path)
}

func TestCreateActivity(t *testing.T) {
	client, requests := newRecordingServer(t, http.StatusOK, "")

	err := client.CreateActivity(context.Background(), model.ActivityPayload{
		ID:    "a3",
		Title: "Wine Tasting",
		Date:  "2024-04-01T19:00:00",
	})

	require.NoError(t, err)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/activities", req.path)
	assert.Contains(t, req.body, `"id":"a3"`)
	assert.Contains(t, req.body, `"title":"Wine Tasting"`)
}

func TestUpdateActivityAddressesByID(t *testing.T) {
	client, requests := newRecordingServer(t, http.StatusOK, "")

	err := client.UpdateActivity(context.Background(), model.ActivityPayload{
		ID:    "a1",
		Title: "Renamed",
		Date:  "2024-03-11T10:00:00",
	})

	require.NoError(t, err)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/activities/a1", req.path)
}

func TestDeleteActivity(t *testing.T) {
	client, requests := newRecordingServer(t, http.StatusOK, "")

	require.NoError(t, client.DeleteActivity(context.Background(), "a1"))

	req := (*requests)[0]
	assert.Equal(t, http.MethodDelete, req.method)
	assert.Equal(t, "/activities/a1", req.path)
	assert.Empty(t, req.body)
}

func TestAttendPostsEmptyBody(t *testing.T) {
	client, requests := newRecordingServer(t, http.StatusOK, "")

	require.NoError(t, client.Attend(context.Background(), "a1"))

	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/activities/a1/attend", req.path)
	assert.Empty(t, req.body)
}
