package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/hktools/hk-grid-service/internal/adapter/http"
	"github.com/hktools/hk-grid-service/internal/convert"
	"github.com/hktools/hk-grid-service/internal/domain"
)

// mockConverter returns scripted results without touching the network.
type mockConverter struct {
	singleErr error
	locateErr error
}

func (m *mockConverter) Single(_ context.Context, _ convert.Direction, input string) (convert.SingleResult, error) {
	if m.singleErr != nil {
		return convert.SingleResult{}, m.singleErr
	}
	return convert.SingleResult{Output: "50Q 836677824790"}, nil
}

func (m *mockConverter) Bulk(_ context.Context, dir convert.Direction, text string) convert.BulkResult {
	rows := []convert.Row{}
	for i, line := range strings.Split(strings.TrimSpace(text), "\n") {
		rows = append(rows, convert.Row{Index: i + 1, Input: line, Output: "50Q 836677824790", Status: convert.StatusOK})
	}
	return convert.BulkResult{Rows: rows, Filename: "wgs84_to_hkgrid_results.txt"}
}

func (m *mockConverter) Locate(_ context.Context, _ string) (convert.LocateResult, error) {
	if m.locateErr != nil {
		return convert.LocateResult{}, m.locateErr
	}
	return convert.LocateResult{
		Point:   domain.GeoPoint{Lat: 22.302711, Lon: 114.177216},
		GridRef: "KK369077",
	}, nil
}

func newTestServer(conv httpadapter.Converter) *httpadapter.Server {
	return httpadapter.NewServer(":0", conv, slog.Default())
}

func postJSON(t *testing.T, srv *httpadapter.Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.ServeHTTP(rec, req)
	return rec
}

func TestIndexServesEmbeddedPage(t *testing.T) {
	srv := newTestServer(&mockConverter{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "HK Coordinate Converter")
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockConverter{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200(t *testing.T) {
	srv := newTestServer(&mockConverter{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockConverter{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestConvertReturnsResult(t *testing.T) {
	srv := newTestServer(&mockConverter{})
	rec := postJSON(t, srv, "/api/convert", `{"direction":"wgs84-to-grid","input":"22.30, 114.17"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body convert.SingleResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "50Q 836677824790", body.Output)
}

func TestConvertRejectsMalformedJSON(t *testing.T) {
	srv := newTestServer(&mockConverter{})
	rec := postJSON(t, srv, "/api/convert", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConvertRejectsUnknownDirection(t *testing.T) {
	srv := newTestServer(&mockConverter{})
	rec := postJSON(t, srv, "/api/convert", `{"direction":"sideways","input":"22.30, 114.17"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "sideways")
}

func TestConvertMapsParseErrorsTo422(t *testing.T) {
	srv := newTestServer(&mockConverter{
		singleErr: fmt.Errorf("parse: %w", domain.ErrInvalidFormat),
	})
	rec := postJSON(t, srv, "/api/convert", `{"direction":"wgs84-to-grid","input":"garbage"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid format", body["error"])
}

func TestConvertMapsGatewayErrorsTo502(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"network", fmt.Errorf("dial: %w", domain.ErrNetwork)},
		{"invalid response", fmt.Errorf("decode: %w", domain.ErrInvalidResponse)},
		{"remote error", &domain.RemoteError{Code: "-10", Message: "Query is out of range"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&mockConverter{singleErr: tt.err})
			rec := postJSON(t, srv, "/api/convert", `{"direction":"wgs84-to-grid","input":"22.30, 114.17"}`)
			assert.Equal(t, http.StatusBadGateway, rec.Code)
		})
	}
}

func TestBulkConvertReturnsRows(t *testing.T) {
	srv := newTestServer(&mockConverter{})
	rec := postJSON(t, srv, "/api/convert/bulk", `{"direction":"wgs84-to-grid","input":"a\nb"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body convert.BulkResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Rows, 2)
	assert.Equal(t, "wgs84_to_hkgrid_results.txt", body.Filename)
}

func TestLocateReturnsBothRepresentations(t *testing.T) {
	srv := newTestServer(&mockConverter{})
	rec := postJSON(t, srv, "/api/locate", `{"input":"KK369077"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body convert.LocateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "KK369077", body.GridRef)
	assert.InDelta(t, 22.302711, body.Point.Lat, 1e-9)
}

func TestLocateMapsErrors(t *testing.T) {
	srv := newTestServer(&mockConverter{
		locateErr: fmt.Errorf("parse: %w", domain.ErrOutOfRange),
	})
	rec := postJSON(t, srv, "/api/locate", `{"input":"95, 200"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAPIRejectsGet(t *testing.T) {
	srv := newTestServer(&mockConverter{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/convert", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
