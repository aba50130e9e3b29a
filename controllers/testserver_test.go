/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/client-go/tools/record"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/pure-storage/flasharray-deployment-manager/controllers/common"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// testRESTVersion is the version advertised by the stub array.  It is recent
// enough that none of the controller version gates reject a request.
const testRESTVersion = "2.40"

// newTestArrayClient starts a stub array which answers the version and login
// handshake itself and delegates every other request to the supplied mux.
// The server is torn down when the spec finishes.
func newTestArrayClient(mux *http.ServeMux) *flasharray.Client {
	handler := http.NewServeMux()
	handler.HandleFunc("/api/api_version", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string][]string{"version": {testRESTVersion}})
	})
	handler.HandleFunc("/api/"+testRESTVersion+"/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(flasharray.AuthTokenHeader, "session-token")
	})
	handler.Handle("/", mux)

	server := httptest.NewServer(handler)
	DeferCleanup(server.Close)

	client, err := flasharray.NewClient(context.Background(), flasharray.ClientOpts{
		Endpoint: server.URL,
		APIToken: "token",
	})
	Expect(err).To(BeNil())

	return client
}

// newTestEventLogger returns an event logger backed by a fake recorder so
// that specs can assert on the events a reconciler emits.
func newTestEventLogger() (*common.EventLogger, *record.FakeRecorder) {
	recorder := record.NewFakeRecorder(8)
	return &common.EventLogger{EventRecorder: recorder, Logger: logf.Log}, recorder
}
