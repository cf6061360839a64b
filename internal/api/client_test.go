package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrio-app/patrio/internal/common"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL: server.URL,
		Token:   "test-token",
	})
	require.NoError(t, err)
	return client, server
}

func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name:    "missing base URL",
			cfg:     Config{},
			wantErr: common.ErrMissingConfig,
		},
		{
			name:    "non-http scheme",
			cfg:     Config{BaseURL: "ftp://example.com"},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "unknown backend",
			cfg:     Config{BaseURL: "https://api.example.com", Backend: "staging"},
			wantErr: common.ErrInvalidBackend,
		},
		{
			name: "valid",
			cfg:  Config{BaseURL: "https://api.example.com", Backend: BackendSandbox},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClientSendsAuthAndBackendHeaders(t *testing.T) {
	var gotAuth, gotDB, gotReqID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotDB = r.Header.Get("X-Patrio-Database")
		gotReqID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.ListIncomes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "main", gotDB)
	assert.NotEmpty(t, gotReqID)
}

func TestBackendSwitchAppliesToSubsequentRequests(t *testing.T) {
	var gotDB atomic.Value
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDB.Store(r.Header.Get("X-Patrio-Database"))
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.ListIncomes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "main", gotDB.Load())

	require.NoError(t, client.SetActiveBackend(BackendSandbox))

	_, err = client.ListIncomes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sandbox", gotDB.Load())

	assert.ErrorIs(t, client.SetActiveBackend("nope"), common.ErrInvalidBackend)
}

func TestTokenSwitchAppliesToSubsequentRequests(t *testing.T) {
	var gotAuth atomic.Value
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))

	client.SetAuthToken("fresh-token")

	_, err := client.ListIncomes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer fresh-token", gotAuth.Load())
}

func TestAPIErrorCarriesRequestContext(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"token expired"}`))
	}))

	_, err := client.ListGestionables(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, http.MethodGet, apiErr.Method)
	assert.Contains(t, apiErr.URL, server.URL)
	assert.Contains(t, apiErr.Body, "token expired")

	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestListGestionablesNormalizesDefaults(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gestionables", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":"g1","nombre":"  Alquiler  ","importe":950,"fecha":"2026-08-01","pagado":true,"activo":true},
			{"id":"g2","nombre":"Luz","categoria":"utilities","importe":80,"categoriaProveedorId":2,"proveedor":"Iberdrola","activo":true}
		]`))
	}))

	expenses, err := client.ListGestionables(context.Background())
	require.NoError(t, err)
	require.Len(t, expenses, 2)

	first := expenses[0]
	assert.Equal(t, "Alquiler", first.Name)
	assert.Equal(t, "EUR", first.Currency)
	assert.Equal(t, "uncategorized", first.Category)
	assert.True(t, first.Date.Valid)

	second := expenses[1]
	assert.Equal(t, "utilities", second.Category)
	assert.False(t, second.Date.Valid, "missing fecha stays invalid rather than zero time")
}

func TestSlowClientRetriesOnceOnTimeout(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			time.Sleep(500 * time.Millisecond)
		}
		_, _ = w.Write([]byte(`{"periodoCerrado":"2026-08","periodoSiguiente":"2026-09","resumen":{"periodo":"2026-08"}}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewSlowClient(Config{BaseURL: server.URL, Timeout: 100 * time.Millisecond})
	require.NoError(t, err)
	client.retryDelay = 10 * time.Millisecond

	result, err := client.ExecuteClose(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-08", result.ClosedPeriod)
	assert.Equal(t, int64(2), calls.Load())
}

func TestSlowClientDoesNotRetryNonTimeoutErrors(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client, err := NewSlowClient(Config{BaseURL: server.URL, Timeout: time.Second})
	require.NoError(t, err)
	client.retryDelay = 10 * time.Millisecond

	_, err = client.ExecuteClose(context.Background())
	require.Error(t, err)
	assert.Equal(t, int64(1), calls.Load())
}

func TestNormalClientNeverRetries(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			time.Sleep(300 * time.Millisecond)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.ListIncomes(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrRequestTimeout)
	assert.Equal(t, int64(1), calls.Load())
}

func TestExecuteCloseMapsConflictStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "already closed", status: http.StatusConflict, wantErr: common.ErrPeriodAlreadyClosed},
		{name: "not ready", status: http.StatusPreconditionFailed, wantErr: common.ErrPeriodNotReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := client.ExecuteClose(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}
