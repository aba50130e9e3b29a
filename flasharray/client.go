/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package flasharray

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	perrors "github.com/pkg/errors"
	"golang.org/x/time/rate"
	"k8s.io/apimachinery/pkg/util/version"
)

const (
	// AuthTokenHeader carries the session token on every authenticated
	// request.
	AuthTokenHeader = "x-auth-token"

	// APITokenHeader carries the user API token on the login request.
	APITokenHeader = "api-token"

	// DefaultUserAgent is the protocol user agent reported to the array.
	DefaultUserAgent = "flasharray-deployment-manager"
)

// defaultRequestRate bounds the request rate against a single array.  The
// REST service shares its request capacity with the array GUI so the client
// is deliberately conservative.
const defaultRequestRate = rate.Limit(10)

const defaultRequestBurst = 10

// Client is an authenticated connection to a single FlashArray REST service.
// It fills the same role for the resource subpackages as a service client
// does in other REST SDKs: it owns the endpoint, the session token and the
// negotiated API version, and provides the raw request primitives.
type Client struct {
	// Endpoint is the base URL of the array management interface, e.g.,
	// "https://array00.example.com".
	Endpoint string

	// UserAgent is sent with each request.
	UserAgent string

	// APIVersion is the REST API version negotiated at login.  All request
	// URLs are prefixed with this version.
	APIVersion *version.Version

	// HTTPClient is the underlying transport.  Exposed so that tests can
	// substitute their own.
	HTTPClient *http.Client

	authToken string
	limiter   *rate.Limiter
}

// ClientOpts carries the attributes needed to establish a new array session.
type ClientOpts struct {
	// Endpoint is the base URL of the array management interface.
	Endpoint string

	// APIToken is the per-user API token used to obtain a session.
	APIToken string

	// InsecureTLS disables server certificate verification.  Arrays are
	// commonly deployed with self-signed management certificates.
	InsecureTLS bool

	// RequestedVersion pins the negotiated REST version rather than using
	// the highest version supported by both sides.
	RequestedVersion string
}

// RequestOpts customizes an individual request issued through the client.
type RequestOpts struct {
	// OkCodes is the set of status codes treated as success.  An empty set
	// defaults to the standard codes for the method.
	OkCodes []int

	// MoreHeaders are added to the request after the standard headers.
	MoreHeaders map[string]string
}

// NewClient establishes an authenticated session against the array described
// by the supplied options.  The REST version is negotiated before the login
// exchange so that the session is created against a version both sides
// support.
func NewClient(ctx context.Context, opts ClientOpts) (*Client, error) {
	httpClient := &http.Client{}
	if opts.InsecureTLS {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	c := &Client{
		Endpoint:   strings.TrimSuffix(opts.Endpoint, "/"),
		UserAgent:  DefaultUserAgent,
		HTTPClient: httpClient,
		limiter:    rate.NewLimiter(defaultRequestRate, defaultRequestBurst),
	}

	negotiated, err := c.negotiateVersion(ctx, opts.RequestedVersion)
	if err != nil {
		return nil, err
	}
	c.APIVersion = negotiated

	if err := c.login(ctx, opts.APIToken); err != nil {
		return nil, err
	}

	return c, nil
}

// Supports reports whether the negotiated REST version is at least the given
// minimum.  Dotted versions compare numerically per element so that "2.13"
// orders after "2.4".
func (c *Client) Supports(minimum string) bool {
	if c.APIVersion == nil {
		return false
	}
	min, err := version.ParseGeneric(minimum)
	if err != nil {
		return false
	}
	return c.APIVersion.AtLeast(min)
}

// ResourceURL builds a request URL for a versioned resource path.
func (c *Client) ResourceURL(parts ...string) string {
	elements := append([]string{c.Endpoint, "api", c.APIVersion.String()}, parts...)
	return strings.Join(elements, "/")
}

// negotiateVersion retrieves the list of REST versions offered by the array
// and selects either the requested version or the highest offered.
func (c *Client) negotiateVersion(ctx context.Context, requested string) (*version.Version, error) {
	var body struct {
		Versions []string `json:"version"`
	}

	url := c.Endpoint + "/api/api_version"
	resp, err := c.doRequest(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, perrors.Wrap(err, "failed to query supported API versions")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(http.MethodGet, url, []int{http.StatusOK}, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, perrors.Wrap(err, "failed to decode API version list")
	}

	if requested != "" {
		want, err := version.ParseGeneric(requested)
		if err != nil {
			return nil, perrors.Wrapf(err, "invalid requested version %q", requested)
		}
		for _, v := range body.Versions {
			offered, err := version.ParseGeneric(v)
			if err != nil {
				continue
			}
			if offered.EqualTo(want) {
				return offered, nil
			}
		}
		return nil, ErrVersionNotSupported{
			BaseError: BaseError{message: fmt.Sprintf(
				"REST version %s is not supported by the array", requested)},
			Requested: requested,
		}
	}

	var highest *version.Version
	for _, v := range body.Versions {
		offered, err := version.ParseGeneric(v)
		if err != nil {
			// Ignore 1.x style entries that do not parse as generic
			// versions; only 2.x versions are usable by this client.
			continue
		}
		if !strings.HasPrefix(v, "2.") {
			continue
		}
		if highest == nil || offered.GreaterThan(highest) {
			highest = offered
		}
	}

	if highest == nil {
		return nil, ErrVersionNotSupported{
			BaseError: BaseError{message: "array does not offer any supported 2.x REST version"},
		}
	}

	return highest, nil
}

// login exchanges the API token for a session token.
func (c *Client) login(ctx context.Context, apiToken string) error {
	url := c.ResourceURL("login")
	resp, err := c.doRequest(ctx, http.MethodPost, url, nil, map[string]string{
		APITokenHeader: apiToken,
	})
	if err != nil {
		return perrors.Wrap(err, "login request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errorFromResponse(http.MethodPost, url, []int{http.StatusOK}, resp)
	}

	token := resp.Header.Get(AuthTokenHeader)
	if token == "" {
		return ErrAuthenticationFailed{
			BaseError: BaseError{message: "array did not return a session token"},
		}
	}

	c.authToken = token

	return nil
}

// Logout invalidates the current session token.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Request(ctx, http.MethodPost, c.ResourceURL("logout"), nil, nil, &RequestOpts{
		OkCodes: []int{200, 204},
	})
	return err
}

// Get issues an HTTP GET and decodes the response body into jsonResponse.
func (c *Client) Get(ctx context.Context, url string, jsonResponse interface{}, opts *RequestOpts) (*http.Response, error) {
	if opts == nil {
		opts = &RequestOpts{OkCodes: []int{200}}
	}
	return c.Request(ctx, http.MethodGet, url, nil, jsonResponse, opts)
}

// Post issues an HTTP POST with an optional JSON body.
func (c *Client) Post(ctx context.Context, url string, jsonBody interface{}, jsonResponse interface{}, opts *RequestOpts) (*http.Response, error) {
	if opts == nil {
		opts = &RequestOpts{OkCodes: []int{200, 201}}
	}
	return c.Request(ctx, http.MethodPost, url, jsonBody, jsonResponse, opts)
}

// Patch issues an HTTP PATCH with an optional JSON body.
func (c *Client) Patch(ctx context.Context, url string, jsonBody interface{}, jsonResponse interface{}, opts *RequestOpts) (*http.Response, error) {
	if opts == nil {
		opts = &RequestOpts{OkCodes: []int{200}}
	}
	return c.Request(ctx, http.MethodPatch, url, jsonBody, jsonResponse, opts)
}

// Delete issues an HTTP DELETE.
func (c *Client) Delete(ctx context.Context, url string, opts *RequestOpts) (*http.Response, error) {
	if opts == nil {
		opts = &RequestOpts{OkCodes: []int{200, 204}}
	}
	return c.Request(ctx, http.MethodDelete, url, nil, nil, opts)
}

// Request issues a single HTTP request against the array and enforces the
// expected status codes.  Unexpected codes are converted into the typed
// error structures defined in errors.go with the remote error message
// extracted verbatim.
func (c *Client) Request(ctx context.Context, method string, url string, jsonBody interface{}, jsonResponse interface{}, opts *RequestOpts) (*http.Response, error) {
	var body io.Reader
	headers := map[string]string{}

	if jsonBody != nil {
		encoded, err := json.Marshal(jsonBody)
		if err != nil {
			return nil, perrors.Wrap(err, "failed to encode request body")
		}
		body = bytes.NewReader(encoded)
		headers["Content-Type"] = "application/json"
	}

	if c.authToken != "" {
		headers[AuthTokenHeader] = c.authToken
	}

	if opts != nil {
		for k, v := range opts.MoreHeaders {
			headers[k] = v
		}
	}

	resp, err := c.doRequest(ctx, method, url, body, headers)
	if err != nil {
		RequestErrorsTotal.WithLabelValues(method).Inc()
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	RequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	okCodes := []int{200}
	if opts != nil && len(opts.OkCodes) > 0 {
		okCodes = opts.OkCodes
	}

	ok := false
	for _, code := range okCodes {
		if resp.StatusCode == code {
			ok = true
			break
		}
	}

	if !ok {
		return resp, errorFromResponse(method, url, okCodes, resp)
	}

	if jsonResponse != nil {
		if err := json.NewDecoder(resp.Body).Decode(jsonResponse); err != nil {
			return resp, perrors.Wrapf(err, "failed to decode %s response from %s", method, url)
		}
	}

	return resp, nil
}

func (c *Client) doRequest(ctx context.Context, method string, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.HTTPClient.Do(req)
}
