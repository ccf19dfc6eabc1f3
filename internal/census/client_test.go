package census

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientOptions{BaseURL: srv.URL}), srv
}

func TestClientTableData(t *testing.T) {
	t.Run("decodes rows and builds the table", func(t *testing.T) {
		var gotPath string
		var gotQuery url.Values
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query()
			_, _ = w.Write([]byte(`[["NAME","S0101_C02_001E"],["Alabama","21.9"],["Alaska",null]]`))
		})

		tbl, err := client.TableData(context.Background(), "acs1/subject", 2023, "S0101", "state:*")
		require.NoError(t, err)

		assert.Equal(t, "/data/2023/acs/acs1/subject", gotPath)
		assert.Equal(t, "group(S0101)", gotQuery.Get("get"))
		assert.Equal(t, "state:*", gotQuery.Get("for"))
		assert.False(t, gotQuery.Has("key"))

		assert.Equal(t, 2, tbl.Len())
		// null cells normalize to empty strings.
		assert.Equal(t, []string{"Alaska", ""}, tbl.Rows()[1])
	})

	t.Run("sends the API key when configured", func(t *testing.T) {
		var gotKey string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.URL.Query().Get("key")
			_, _ = w.Write([]byte(`[["NAME"],["Alabama"]]`))
		}))
		t.Cleanup(srv.Close)
		client := NewClient(ClientOptions{BaseURL: srv.URL, APIKey: "secret"})

		_, err := client.TableData(context.Background(), "acs1", 2023, "B08303", "state:*")
		require.NoError(t, err)
		assert.Equal(t, "secret", gotKey)
	})

	t.Run("404 is ErrNotFound", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := client.TableData(context.Background(), "acs1", 2023, "B08303", "state:*")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("other statuses surface as StatusError", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, err := client.TableData(context.Background(), "acs1", 2023, "B08303", "state:*")
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	})

	t.Run("header-only response is ErrEmptyResult", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[["NAME","S0101_C02_001E"]]`))
		})
		_, err := client.TableData(context.Background(), "acs1/subject", 2023, "S0101", "state:*")
		assert.ErrorIs(t, err, ErrEmptyResult)
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"unexpected":"shape"}`))
		})
		_, err := client.TableData(context.Background(), "acs1/subject", 2023, "S0101", "state:*")
		assert.ErrorContains(t, err, "decode table")
	})
}

func TestClientVariables(t *testing.T) {
	t.Run("decodes the variables mapping", func(t *testing.T) {
		var gotPath string
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(`{"variables":{
				"S0101_C02_002E":{"label":"Estimate!!Percent!!Total population!!AGE!!Under 5 years"},
				"S0101_C02_002M":{"label":"Margin of Error!!Percent!!Total population!!AGE!!Under 5 years"}
			}}`))
		})

		vars, err := client.Variables(context.Background(), "S0101", 2023, "acs1/subject")
		require.NoError(t, err)

		assert.Equal(t, "/data/2023/acs/acs1/subject/groups/S0101.json", gotPath)
		assert.Equal(t, 2, vars.Len())
		assert.Contains(t, vars.Label("S0101_C02_002E"), "Under 5 years")
	})

	t.Run("propagates errors for the caller to degrade", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		_, err := client.Variables(context.Background(), "S0101", 2023, "acs1/subject")
		assert.Error(t, err)
	})
}

func TestRedactKey(t *testing.T) {
	redacted := redactKey("https://api.census.gov/data/2023/acs/acs1?get=group%28B08303%29&key=topsecret")
	assert.NotContains(t, redacted, "topsecret")
	assert.Contains(t, redacted, "key=REDACTED")
}
