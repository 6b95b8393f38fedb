package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-hrm/atlas-reports/internal/report"
)

func newUpstream(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchDecodesTypedPayload(t *testing.T) {
	var gotAuth, gotPath string
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"summary":{"totalExpenses":"1200.50","approvalRate":90}}`))
	})

	client, err := NewClient(srv.URL, "secret-token", nil)
	require.NoError(t, err)

	v, err := client.Fetch(context.Background(), report.TypeExpense)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "/pdf-reports/expense", gotPath)

	payload, ok := v.(*report.ExpenseAnalytics)
	require.True(t, ok, "expected *report.ExpenseAnalytics, got %T", v)
	assert.Equal(t, 1200.50, payload.Summary.TotalExpenses.Float())
	assert.Equal(t, 90.0, payload.Summary.ApprovalRate.Float())
}

func TestFetchOmitsAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})

	client, err := NewClient(srv.URL, "", nil)
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), report.TypeTask)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestFetchUpstreamErrorStatus(t *testing.T) {
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "analytics exploded", http.StatusInternalServerError)
	})

	client, err := NewClient(srv.URL, "token", nil)
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), report.TypeLeave)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamStatus)
	assert.Contains(t, err.Error(), "analytics exploded")
}

func TestFetchRejectsUnknownType(t *testing.T) {
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upstream must not be reached for unknown types")
	})

	client, err := NewClient(srv.URL, "token", nil)
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), report.Type("payroll"))
	require.Error(t, err)
	assert.ErrorIs(t, err, report.ErrUnsupportedType)
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient("  ", "token", nil)
	require.Error(t, err)
}

func TestFetchServesSecondCallFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	var calls atomic.Int32
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"summary":{"totalRequests":4,"approved":3}}`))
	})

	client, err := NewClient(srv.URL, "token", NewCache(rdb, 0))
	require.NoError(t, err)

	first, err := client.Fetch(context.Background(), report.TypeLeave)
	require.NoError(t, err)
	second, err := client.Fetch(context.Background(), report.TypeLeave)
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load(), "second fetch must be served from cache")

	p1 := first.(*report.LeaveAnalytics)
	p2 := second.(*report.LeaveAnalytics)
	assert.Equal(t, p1.Summary.TotalRequests.Int(), p2.Summary.TotalRequests.Int())
	assert.Equal(t, 4, p2.Summary.TotalRequests.Int())
}
