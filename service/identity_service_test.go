// service/identity_service_test.go
package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gimme_errors "github.com/gimme-oss/gimme/errors"
	"github.com/gimme-oss/gimme/model"
	"github.com/gimme-oss/gimme/service"
)

func newProfileServer(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestIdentityServiceResolve(t *testing.T) {
	srv := newProfileServer(http.StatusOK, `{"hd":"example.com","email":"test@example.com","name":"Test User"}`)
	defer srv.Close()

	svc := &service.IdentityService{Endpoint: srv.URL, HTTPClient: srv.Client()}

	identity, err := svc.Resolve(context.Background(), model.SessionAuth{AccessToken: "this is not real"})
	require.NoError(t, err)
	assert.Equal(t, &model.Identity{Domain: "example.com", Account: "test@example.com"}, identity)
}

func TestIdentityServiceResolveIncompleteProfile(t *testing.T) {
	// A profile without the hosted-domain claim cannot be authorized, so
	// resolution fails closed.
	srv := newProfileServer(http.StatusOK, `{"email":"test@example.com"}`)
	defer srv.Close()

	svc := &service.IdentityService{Endpoint: srv.URL, HTTPClient: srv.Client()}

	_, err := svc.Resolve(context.Background(), model.SessionAuth{AccessToken: "this is not real"})
	assert.ErrorIs(t, err, gimme_errors.ErrProfileIncomplete)
	assert.ErrorIs(t, err, gimme_errors.ErrIdentityUnavailable)
}

func TestIdentityServiceResolveProviderError(t *testing.T) {
	srv := newProfileServer(http.StatusInternalServerError, `{"error":"boom"}`)
	defer srv.Close()

	svc := &service.IdentityService{Endpoint: srv.URL, HTTPClient: srv.Client()}

	_, err := svc.Resolve(context.Background(), model.SessionAuth{AccessToken: "this is not real"})
	assert.ErrorIs(t, err, gimme_errors.ErrIdentityUnavailable)
}

func TestIdentityServiceResolveMalformedBody(t *testing.T) {
	srv := newProfileServer(http.StatusOK, `not json`)
	defer srv.Close()

	svc := &service.IdentityService{Endpoint: srv.URL, HTTPClient: srv.Client()}

	_, err := svc.Resolve(context.Background(), model.SessionAuth{AccessToken: "this is not real"})
	assert.ErrorIs(t, err, gimme_errors.ErrIdentityUnavailable)
}
