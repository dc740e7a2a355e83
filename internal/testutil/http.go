package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dimitrije/workspace-api/internal/middleware"
	"github.com/google/uuid"
)

// HTTPTestClient sends requests straight into a handler as one user.
type HTTPTestClient struct {
	t       *testing.T
	handler http.Handler
	userID  uuid.UUID
}

func NewHTTPTestClient(t *testing.T, handler http.Handler, userID uuid.UUID) *HTTPTestClient {
	return &HTTPTestClient{t: t, handler: handler, userID: userID}
}

// As returns a client acting as another user against the same handler.
func (c *HTTPTestClient) As(userID uuid.UUID) *HTTPTestClient {
	return &HTTPTestClient{t: c.t, handler: c.handler, userID: userID}
}

func (c *HTTPTestClient) Request(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != uuid.Nil {
		req.Header.Set(middleware.UserIDHeader, c.userID.String())
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func (c *HTTPTestClient) GET(path string) *httptest.ResponseRecorder {
	return c.Request(http.MethodGet, path, nil)
}

func (c *HTTPTestClient) POST(path string, body any) *httptest.ResponseRecorder {
	return c.Request(http.MethodPost, path, body)
}

func (c *HTTPTestClient) PUT(path string, body any) *httptest.ResponseRecorder {
	return c.Request(http.MethodPut, path, body)
}

func (c *HTTPTestClient) PATCH(path string, body any) *httptest.ResponseRecorder {
	return c.Request(http.MethodPatch, path, body)
}

func (c *HTTPTestClient) DELETE(path string) *httptest.ResponseRecorder {
	return c.Request(http.MethodDelete, path, nil)
}

// ParseJSON decodes the response body into v.
func ParseJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to parse response JSON: %v", err)
	}
}

// AssertStatus fails the test with the body when the status differs.
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rec.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rec.Code, rec.Body.String())
	}
}
