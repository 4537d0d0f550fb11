package internal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iksnae/bizspark-chat/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientQuery(t *testing.T) {
	svc := testutil.NewFakeService(t)
	c := NewClient(svc.URL+"/", time.Second)
	assert.Equal(t, svc.URL, c.BaseURL())

	result, err := c.Query(context.Background(), QueryRequest{Query: "desks", SessionID: "s-1"})
	require.NoError(t, err)
	assert.Equal(t, "You asked: desks", result.Response)
	assert.Equal(t, []string{"Tell me more"}, result.Suggestions)

	queries := svc.Queries()
	require.Len(t, queries, 1)
	assert.Equal(t, map[string]string{"query": "desks", "session_id": "s-1"}, queries[0])
}

func TestClientQueryErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   interface{}
		check  func(t *testing.T, err error)
	}{
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   map[string]string{"detail": "boom"},
			check: func(t *testing.T, err error) {
				var te *TransportError
				require.True(t, errors.As(err, &te))
				assert.Equal(t, http.StatusInternalServerError, te.Status)
				assert.Equal(t, "query", te.Op)
			},
		},
		{
			name:   "validation error",
			status: http.StatusUnprocessableEntity,
			body:   map[string]string{"detail": "query required"},
			check: func(t *testing.T, err error) {
				var te *TransportError
				require.True(t, errors.As(err, &te))
				assert.Equal(t, http.StatusUnprocessableEntity, te.Status)
			},
		},
		{
			name:   "undecodable body",
			status: http.StatusOK,
			body:   "<html>oops</html>",
			check: func(t *testing.T, err error) {
				var de *DecodeError
				assert.True(t, errors.As(err, &de))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService(t)
			svc.Respond(func(string) (int, interface{}) { return tt.status, tt.body })

			result, err := NewClient(svc.URL, time.Second).Query(context.Background(), QueryRequest{Query: "x"})
			require.Error(t, err)
			assert.Nil(t, result)
			tt.check(t, err)
		})
	}
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Query(context.Background(), QueryRequest{Query: "x"})
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 0, te.Status)
}

func TestClientRespectsContext(t *testing.T) {
	svc := testutil.NewFakeService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(svc.URL, time.Second).Items(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClientItems(t *testing.T) {
	svc := testutil.NewFakeService(t)
	c := NewClient(svc.URL, time.Second)

	items, err := c.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, len(testutil.SampleItems))
	assert.Equal(t, "L-001", items[0]["item_id"])

	svc.FailItems()
	_, err = c.Items(context.Background())
	var te *TransportError
	assert.True(t, errors.As(err, &te))
}

func TestClientSearchItems(t *testing.T) {
	svc := testutil.NewFakeService(t)
	items, err := NewClient(svc.URL, time.Second).SearchItems(context.Background(), ItemQuery{SearchQuery: "pen"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Pen", items[0]["name"])
}

func TestClientItem(t *testing.T) {
	svc := testutil.NewFakeService(t)
	c := NewClient(svc.URL, time.Second)

	item, err := c.Item(context.Background(), "L-001")
	require.NoError(t, err)
	assert.Equal(t, "Budget Laptop", item["item_name"])

	_, err = c.Item(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrItemNotFound), "pair-shaped error body: %v", err)
}

func TestClientItemNotFoundStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Item(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrItemNotFound))
}

func TestClientHealthAndHistory(t *testing.T) {
	svc := testutil.NewFakeService(t)
	c := NewClient(svc.URL, time.Second)

	status, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", status.Status)

	hist, err := c.History(context.Background(), "s-9")
	require.NoError(t, err)
	assert.Equal(t, "s-9", hist.SessionID)
	assert.Len(t, hist.History, 1)
}
