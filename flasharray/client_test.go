/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package flasharray

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestArray starts a fake array which offers the given REST versions and
// accepts any login, handing additional routes off to mux.
func newTestArray(t *testing.T, versions []string, mux *http.ServeMux) *httptest.Server {
	t.Helper()

	handler := http.NewServeMux()
	handler.HandleFunc("/api/api_version", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string][]string{"version": versions})
	})
	for _, v := range versions {
		handler.HandleFunc("/api/"+v+"/login", func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(APITokenHeader) == "" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"errors": []map[string]string{{"message": "invalid credentials"}},
				})
				return
			}
			w.Header().Set(AuthTokenHeader, "session-token")
			w.WriteHeader(http.StatusOK)
		})
	}
	if mux != nil {
		handler.Handle("/", mux)
	}

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

func TestNewClientNegotiatesHighestVersion(t *testing.T) {
	server := newTestArray(t, []string{"1.19", "2.2", "2.17", "2.36"}, nil)

	client, err := NewClient(context.Background(), ClientOpts{
		Endpoint: server.URL,
		APIToken: "token",
	})
	require.NoError(t, err)

	assert.Equal(t, "2.36", client.APIVersion.String())
	assert.True(t, client.Supports("2.17"))
	assert.True(t, client.Supports("2.36"))
	assert.False(t, client.Supports("2.40"))
}

func TestNewClientRequestedVersion(t *testing.T) {
	server := newTestArray(t, []string{"2.2", "2.17", "2.36"}, nil)

	client, err := NewClient(context.Background(), ClientOpts{
		Endpoint:         server.URL,
		APIToken:         "token",
		RequestedVersion: "2.17",
	})
	require.NoError(t, err)

	assert.Equal(t, "2.17", client.APIVersion.String())
}

func TestNewClientUnsupportedVersion(t *testing.T) {
	server := newTestArray(t, []string{"2.2", "2.17"}, nil)

	_, err := NewClient(context.Background(), ClientOpts{
		Endpoint:         server.URL,
		APIToken:         "token",
		RequestedVersion: "2.99",
	})
	require.Error(t, err)

	versionErr, ok := err.(ErrVersionNotSupported)
	require.True(t, ok, "expected ErrVersionNotSupported, got %T", err)
	assert.Equal(t, "2.99", versionErr.Requested)
}

func TestNewClientNoUsableVersions(t *testing.T) {
	server := newTestArray(t, []string{"1.17", "1.19"}, nil)

	_, err := NewClient(context.Background(), ClientOpts{
		Endpoint: server.URL,
		APIToken: "token",
	})
	require.Error(t, err)

	_, ok := err.(ErrVersionNotSupported)
	assert.True(t, ok, "expected ErrVersionNotSupported, got %T", err)
}

func TestNewClientLoginRejected(t *testing.T) {
	server := newTestArray(t, []string{"2.36"}, nil)

	_, err := NewClient(context.Background(), ClientOpts{
		Endpoint: server.URL,
		APIToken: "",
	})
	require.Error(t, err)

	_, ok := err.(ErrDefault401)
	assert.True(t, ok, "expected ErrDefault401, got %T", err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestRequestSendsSessionToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.36/arrays", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "session-token", r.Header.Get(AuthTokenHeader))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": []interface{}{}})
	})
	server := newTestArray(t, []string{"2.36"}, mux)

	client, err := NewClient(context.Background(), ClientOpts{
		Endpoint: server.URL,
		APIToken: "token",
	})
	require.NoError(t, err)

	var body struct {
		Items []interface{} `json:"items"`
	}
	resp, err := client.Get(context.Background(), client.ResourceURL("arrays"), &body, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestErrorMapping(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.36/volume-groups", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []map[string]string{{"message": "Volume group does not exist."}},
		})
	})
	server := newTestArray(t, []string{"2.36"}, mux)

	client, err := NewClient(context.Background(), ClientOpts{
		Endpoint: server.URL,
		APIToken: "token",
	})
	require.NoError(t, err)

	_, err = client.Get(context.Background(), client.ResourceURL("volume-groups"), nil, nil)
	require.Error(t, err)

	badRequest, ok := err.(ErrDefault400)
	require.True(t, ok, "expected ErrDefault400, got %T", err)
	assert.Equal(t, http.StatusBadRequest, badRequest.Actual)
	require.NotEmpty(t, badRequest.Errors)
	assert.Equal(t, "Volume group does not exist.", badRequest.Errors[0].Message)
	assert.Contains(t, err.Error(), "Volume group does not exist.")
}

func TestResourceURL(t *testing.T) {
	server := newTestArray(t, []string{"2.36"}, nil)

	client, err := NewClient(context.Background(), ClientOpts{
		Endpoint: server.URL,
		APIToken: "token",
	})
	require.NoError(t, err)

	assert.Equal(t, server.URL+"/api/2.36/volume-groups", client.ResourceURL("volume-groups"))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewResourceNotFound("vg0")))
	assert.True(t, IsNotFound(ErrDefault404{}))
	assert.False(t, IsNotFound(ErrDefault400{}))
}
