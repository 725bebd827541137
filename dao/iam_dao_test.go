// dao/iam_dao_test.go
package dao_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/option"

	"github.com/gimme-oss/gimme/dao"
	gimme_errors "github.com/gimme-oss/gimme/errors"
	logger "github.com/gimme-oss/gimme/logging"
	"github.com/gimme-oss/gimme/model"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "gimme-test-logs")
	if err != nil {
		panic(err)
	}
	logger.InitLogger(dir)
	code := m.Run()
	logger.Sync()
	os.RemoveAll(dir)
	os.Exit(code)
}

// fakeStore stands in for the Cloud Resource Manager API.
type fakeStore struct {
	getStatus  int
	getBody    string
	setStatus  int
	setBody    string
	lastSetReq *cloudresourcemanager.SetIamPolicyRequest
	lastGetReq *cloudresourcemanager.GetIamPolicyRequest
}

func (f *fakeStore) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, ":getIamPolicy"):
			var req cloudresourcemanager.GetIamPolicyRequest
			json.NewDecoder(r.Body).Decode(&req)
			f.lastGetReq = &req
			w.WriteHeader(f.getStatus)
			w.Write([]byte(f.getBody))
		case strings.HasSuffix(r.URL.Path, ":setIamPolicy"):
			var req cloudresourcemanager.SetIamPolicyRequest
			json.NewDecoder(r.Body).Decode(&req)
			f.lastSetReq = &req
			w.WriteHeader(f.setStatus)
			w.Write([]byte(f.setBody))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"code":404,"message":"not found"}}`))
		}
	})
}

func newTestDAO(t *testing.T, store *fakeStore) (*dao.IAMPolicyDAO, func()) {
	t.Helper()
	srv := httptest.NewServer(store.handler())
	d, err := dao.NewIAMPolicyDAO(context.Background(),
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return d, srv.Close
}

func TestGetPolicy(t *testing.T) {
	store := &fakeStore{
		getStatus: http.StatusOK,
		getBody: `{
			"version": 1,
			"etag": "BwWk0Qa=",
			"bindings": [
				{"role": "roles/owner", "members": ["user:admin@example.com"]},
				{"role": "roles/viewer", "members": ["user:carol@example.com"],
				 "condition": {"expression": "request.time < timestamp(\"2018-05-04T01:00:00+00:00\")", "title": "granted by test@example.com"}}
			]
		}`,
	}
	d, done := newTestDAO(t, store)
	defer done()

	policy, err := d.GetPolicy(context.Background(), "test-project")
	require.NoError(t, err)

	assert.Equal(t, int64(1), policy.Version)
	assert.Equal(t, "BwWk0Qa=", policy.Etag)
	require.Len(t, policy.Bindings, 2)
	assert.Equal(t, "roles/owner", policy.Bindings[0].Role)
	assert.Nil(t, policy.Bindings[0].Condition)
	require.NotNil(t, policy.Bindings[1].Condition)
	assert.Equal(t, `request.time < timestamp("2018-05-04T01:00:00+00:00")`, policy.Bindings[1].Condition.Expression)

	// The read must ask for the conditional policy schema.
	require.NotNil(t, store.lastGetReq)
	require.NotNil(t, store.lastGetReq.Options)
	assert.Equal(t, int64(3), store.lastGetReq.Options.RequestedPolicyVersion)
}

func TestGetPolicyStoreError(t *testing.T) {
	store := &fakeStore{
		getStatus: http.StatusForbidden,
		getBody:   `{"error":{"code":403,"message":"The caller does not have permission"}}`,
	}
	d, done := newTestDAO(t, store)
	defer done()

	_, err := d.GetPolicy(context.Background(), "test-project")
	require.Error(t, err)
	assert.ErrorIs(t, err, gimme_errors.ErrPolicyUnavailable)
	assert.Contains(t, err.Error(), "The caller does not have permission")
}

func TestGetPolicyMalformedShape(t *testing.T) {
	store := &fakeStore{
		getStatus: http.StatusOK,
		getBody:   `{"version": 1, "bindings": [{"members": ["user:x@example.com"]}]}`,
	}
	d, done := newTestDAO(t, store)
	defer done()

	_, err := d.GetPolicy(context.Background(), "test-project")
	require.Error(t, err)
	assert.ErrorIs(t, err, gimme_errors.ErrPolicyUnavailable)
}

func TestSetPolicy(t *testing.T) {
	store := &fakeStore{
		setStatus: http.StatusOK,
		setBody:   `{"version": 3, "etag": "BwWk0Qb="}`,
	}
	d, done := newTestDAO(t, store)
	defer done()

	policy := &model.Policy{
		Version: 3,
		Etag:    "BwWk0Qa=",
		Bindings: []model.Binding{
			{Role: "roles/owner", Members: []string{"user:admin@example.com"}},
			{
				Role:    "roles/viewer",
				Members: []string{"user:alice@example.com"},
				Condition: &model.Condition{
					Expression:  `request.time < timestamp("2018-05-04T01:00:00+00:00")`,
					Title:       "granted by test@example.com",
					Description: "This is a temporary grant created by Gimme",
				},
			},
		},
	}

	require.NoError(t, d.SetPolicy(context.Background(), "test-project", policy))

	// The full document is submitted for replacement, etag included.
	require.NotNil(t, store.lastSetReq)
	require.NotNil(t, store.lastSetReq.Policy)
	assert.Equal(t, int64(3), store.lastSetReq.Policy.Version)
	assert.Equal(t, "BwWk0Qa=", store.lastSetReq.Policy.Etag)
	require.Len(t, store.lastSetReq.Policy.Bindings, 2)
	require.NotNil(t, store.lastSetReq.Policy.Bindings[1].Condition)
	assert.Equal(t, `request.time < timestamp("2018-05-04T01:00:00+00:00")`,
		store.lastSetReq.Policy.Bindings[1].Condition.Expression)
}

func TestSetPolicyConflict(t *testing.T) {
	store := &fakeStore{
		setStatus: http.StatusConflict,
		setBody:   `{"error":{"code":409,"message":"There were concurrent policy changes"}}`,
	}
	d, done := newTestDAO(t, store)
	defer done()

	err := d.SetPolicy(context.Background(), "test-project", &model.Policy{Version: 3, Etag: "stale"})
	require.Error(t, err)
	assert.ErrorIs(t, err, gimme_errors.ErrPolicyConflict)
	assert.NotErrorIs(t, err, gimme_errors.ErrPolicyWriteFailed)
}

func TestSetPolicyStoreError(t *testing.T) {
	store := &fakeStore{
		setStatus: http.StatusBadRequest,
		setBody:   `{"error":{"code":400,"message":"Invalid policy document"}}`,
	}
	d, done := newTestDAO(t, store)
	defer done()

	err := d.SetPolicy(context.Background(), "test-project", &model.Policy{Version: 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, gimme_errors.ErrPolicyWriteFailed)
	assert.Equal(t, "Invalid policy document", gimme_errors.Detail(err, gimme_errors.ErrPolicyWriteFailed))
}
