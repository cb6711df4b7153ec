package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingNavigator struct {
	notFound    int
	serverError int
}

func (n *countingNavigator) NotFound()    { n.notFound++ }
func (n *countingNavigator) ServerError() { n.serverError++ }

func TestTokenDefaultsEmpty(t *testing.T) {
	s := New()
	assert.Empty(t, s.Token())
}

func TestSetToken(t *testing.T) {
	s := New()
	s.SetToken("abc")
	assert.Equal(t, "abc", s.Token())
}

func TestServerErrorPayload(t *testing.T) {
	s := New()
	assert.Empty(t, s.ServerError())

	s.SetServerError(`{"detail": "boom"}`)
	assert.Equal(t, `{"detail": "boom"}`, s.ServerError())
}

func TestNavigationForwardsToNavigator(t *testing.T) {
	s := New()
	nav := &countingNavigator{}
	s.SetNavigator(nav)

	s.NavigateNotFound()
	s.NavigateServerError()
	s.NavigateServerError()

	assert.Equal(t, 1, nav.notFound)
	assert.Equal(t, 2, nav.serverError)
}

func TestNavigationWithoutNavigatorIsDropped(t *testing.T) {
	s := New()

	// Must not panic.
	s.NavigateNotFound()
	s.NavigateServerError()
}
