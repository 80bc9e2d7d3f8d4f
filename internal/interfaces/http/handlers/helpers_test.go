package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"estate-market.backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	testUserHeader = "X-Test-User"
	testRoleHeader = "X-Test-Role"
)

// newTestRouter returns an engine whose identity comes from test headers.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if raw := c.GetHeader(testUserHeader); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set(middleware.UserIDKey, id)
			}
		}
		if role := c.GetHeader(testRoleHeader); role != "" {
			c.Set(middleware.UserRoleKey, role)
		}
		c.Next()
	})
	return r
}

type testRequest struct {
	method string
	path   string
	body   interface{}
	user   uuid.UUID
	role   string
}

func serve(t *testing.T, r http.Handler, tr testRequest) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	switch b := tr.body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(tr.method, tr.path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tr.user != uuid.Nil {
		req.Header.Set(testUserHeader, tr.user.String())
	}
	if tr.role != "" {
		req.Header.Set(testRoleHeader, tr.role)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func serveUpload(t *testing.T, r http.Handler, path, filename string, content []byte, user uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(uploadField, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(testUserHeader, user.String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func newRequestWithCookie(method, path, name, value string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(&http.Cookie{Name: name, Value: value})
	return req
}

func newRequestWithHeader(method, path, name, value string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(name, value)
	return req
}

func recordRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
