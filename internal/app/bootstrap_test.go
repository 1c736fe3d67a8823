package app

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skillsift/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.JWT.AdminSecret = "test-secret"

	c, err := NewContainer(context.Background(), cfg, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return New(cfg, c)
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(":9090")
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)

	_, err = ListenAddr(" ")
	assert.Error(t, err)
}

func TestApp_Health(t *testing.T) {
	a := newTestApp(t)

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var body struct {
		Data struct {
			Status     string            `json:"status"`
			Components map[string]string `json:"components"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "up", body.Data.Status)
	assert.Equal(t, "disabled", body.Data.Components["database"])
}

func TestApp_AnalyzeWithoutStorage(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/analyze", strings.NewReader(`{
		"resume_text": "Experienced in Python and AWS",
		"job": {"description": "Python, Django and AWS", "title": "Backend Engineer"}
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Fiber.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Data struct {
			Compatibility struct {
				SkillScore int      `json:"skill_score"`
				SkillGaps  []string `json:"skill_gaps"`
			} `json:"compatibility"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 67, body.Data.Compatibility.SkillScore)
	assert.Equal(t, []string{"django"}, body.Data.Compatibility.SkillGaps)
}

func TestApp_IndustriesUnavailableWithoutDatabase(t *testing.T) {
	a := newTestApp(t)

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/v1/industries", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestApp_AdminWritesRequireToken(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/industries", strings.NewReader(`{"industry_name":"tech","skills":["go"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.Fiber.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	tok, err := a.Container.JWT.GenerateAdminToken("ops")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/industries", strings.NewReader(`{"industry_name":"tech","skills":["go"]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err = a.Fiber.Test(req)
	require.NoError(t, err)
	// authorized, but no database is configured
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestApp_Metrics(t *testing.T) {
	a := newTestApp(t)

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "go_goroutines")
}
