package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mmeshcher/nationalcode/internal/metrics"
	"github.com/mmeshcher/nationalcode/internal/model"
	"github.com/mmeshcher/nationalcode/internal/service"
)

type stubService struct {
	verdict model.Verdict
	inputs  []string
}

func (s *stubService) CheckNationalCode(ctx context.Context, input string) model.Verdict {
	s.inputs = append(s.inputs, input)
	v := s.verdict
	v.Input = input
	return v
}

func newTestHandler(t *testing.T, svc Service) *Handler {
	t.Helper()

	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	return NewHandler(svc, logger, nil)
}

func decodeVerdict(t *testing.T, body io.Reader) model.Verdict {
	t.Helper()

	var v model.Verdict
	require.NoError(t, json.NewDecoder(body).Decode(&v))
	return v
}

func TestCheckCode_JSON(t *testing.T) {
	svc := &stubService{verdict: model.Verdict{Code: "0499370899", Valid: true}}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(checkRequest{Code: "049-937089-9"})
	req := httptest.NewRequest(http.MethodPost, "/api/nationalcode/check", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()

	h.CheckCode(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	assert.Equal(t, []string{"049-937089-9"}, svc.inputs)

	v := decodeVerdict(t, res.Body)
	assert.True(t, v.Valid)
	assert.Equal(t, "0499370899", v.Code)
}

func TestCheckCode_PlainText(t *testing.T) {
	svc := &stubService{}
	h := newTestHandler(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/nationalcode/check", strings.NewReader(" 6587452158\n"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	h.CheckCode(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"6587452158"}, svc.inputs)
	assert.False(t, decodeVerdict(t, rec.Body).Valid)
}

func TestCheckCode_BadJSON(t *testing.T) {
	svc := &stubService{}
	h := newTestHandler(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/nationalcode/check", strings.NewReader("{code:"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.CheckCode(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.inputs)
}

func TestCheckCode_BodyTooLarge(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{
			name:        "plain text padded past the limit",
			contentType: "text/plain",
			body:        strings.Repeat(" ", 5000) + "0499370899",
		},
		{
			name:        "json padded past the limit",
			contentType: "application/json",
			body:        `{"code":"0499370899","note":"` + strings.Repeat("x", maxBodySize) + `"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			h := newTestHandler(t, svc)

			req := httptest.NewRequest(http.MethodPost, "/api/nationalcode/check", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()

			h.CheckCode(rec, req)

			assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
			assert.Empty(t, svc.inputs)
		})
	}
}

func TestCheckCode_PaddedBodyWithinLimit(t *testing.T) {
	svc := service.NewService(nil)
	h := newTestHandler(t, svc)

	body := strings.Repeat(" ", maxBodySize-20) + "0499370899"
	req := httptest.NewRequest(http.MethodPost, "/api/nationalcode/check", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CheckCode(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeVerdict(t, rec.Body).Valid)
}

func TestRouter_EndToEnd(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := service.NewService(metrics.New(reg))
	logger := zap.NewNop()
	h := NewHandler(svc, logger, promhttp.HandlerFor(reg, promhttp.HandlerOpts{DisableCompression: true}))

	srv := httptest.NewServer(h.SetupRouter())
	defer srv.Close()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		valid  bool
	}{
		{name: "valid path code", method: http.MethodGet, path: "/api/nationalcode/0499370899", status: http.StatusOK, valid: true},
		{name: "nine digit path code", method: http.MethodGet, path: "/api/nationalcode/123456789", status: http.StatusOK, valid: true},
		{name: "reference example", method: http.MethodGet, path: "/api/nationalcode/6587452158", status: http.StatusOK, valid: false},
		{name: "uniform digits", method: http.MethodPost, path: "/api/nationalcode/check", body: "1111111111", status: http.StatusOK, valid: false},
		{name: "too short", method: http.MethodPost, path: "/api/nationalcode/check", body: "12", status: http.StatusOK, valid: false},
		{name: "unknown route", method: http.MethodGet, path: "/api/unknown", status: http.StatusNotFound},
		{name: "wrong method", method: http.MethodDelete, path: "/api/nationalcode/check", status: http.StatusMethodNotAllowed},
		{name: "get on check route", method: http.MethodGet, path: "/api/nationalcode/check", status: http.StatusMethodNotAllowed},
		{name: "path without digits", method: http.MethodGet, path: "/api/nationalcode/abc", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)

			res, err := srv.Client().Do(req)
			require.NoError(t, err)
			defer res.Body.Close()

			assert.Equal(t, tt.status, res.StatusCode)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.valid, decodeVerdict(t, res.Body).Valid)
			}
		})
	}

	res, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `nationalcode_checks_total{result="valid"} 2`)
	assert.Contains(t, string(body), `nationalcode_checks_total{result="invalid"} 3`)
}

func TestPing(t *testing.T) {
	h := newTestHandler(t, &stubService{})

	srv := httptest.NewServer(h.SetupRouter())
	defer srv.Close()

	res, err := srv.Client().Get(srv.URL + "/ping")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
}
