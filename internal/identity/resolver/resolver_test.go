package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "rankbridge/pkg/domain"
	dErrors "rankbridge/pkg/domain-errors"
)

const profileXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<profile>
	<steamID64>76561198000000000</steamID64>
	<steamID><![CDATA[player]]></steamID>
	<onlineState>online</onlineState>
</profile>`

func serve(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "text/xml")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &gotQuery
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the global id from the document", func(t *testing.T) {
		srv, query := serve(t, http.StatusOK, profileXML)

		gid, found, err := New().Resolve(ctx, srv.URL+"/id/player")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, id.GlobalID(76561198000000000), gid)
		assert.Equal(t, "xml=1", *query)
	})

	t.Run("keeps an explicit xml parameter", func(t *testing.T) {
		srv, query := serve(t, http.StatusOK, profileXML)

		_, _, err := New().Resolve(ctx, srv.URL+"/id/player?xml=1&l=english")
		require.NoError(t, err)
		assert.Equal(t, "xml=1&l=english", *query)
	})

	t.Run("absent field is not found", func(t *testing.T) {
		srv, _ := serve(t, http.StatusOK, `<response><error>The specified profile could not be found.</error></response>`)

		gid, found, err := New().Resolve(ctx, srv.URL+"/id/missing")
		require.NoError(t, err)
		assert.False(t, found)
		assert.True(t, gid.IsNil())
	})

	t.Run("empty field is not found", func(t *testing.T) {
		srv, _ := serve(t, http.StatusOK, `<profile><steamID64> </steamID64></profile>`)

		_, found, err := New().Resolve(ctx, srv.URL)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestResolveErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("non-2xx is a fetch error", func(t *testing.T) {
		srv, _ := serve(t, http.StatusServiceUnavailable, "busy")

		_, _, err := New().Resolve(ctx, srv.URL)
		assert.ErrorIs(t, err, ErrFetch)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	t.Run("transport failure is a fetch error", func(t *testing.T) {
		srv, _ := serve(t, http.StatusOK, profileXML)
		srv.Close()

		_, _, err := New().Resolve(ctx, srv.URL)
		assert.ErrorIs(t, err, ErrFetch)
	})

	t.Run("timeout is a fetch error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		defer srv.Close()

		_, _, err := New(WithTimeout(20*time.Millisecond)).Resolve(ctx, srv.URL)
		assert.ErrorIs(t, err, ErrFetch)
	})

	t.Run("malformed xml is a parse error", func(t *testing.T) {
		srv, _ := serve(t, http.StatusOK, "<profile><steamID64>7656")

		_, _, err := New().Resolve(ctx, srv.URL)
		assert.ErrorIs(t, err, ErrParse)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadData))
	})

	t.Run("non-numeric id is a parse error", func(t *testing.T) {
		srv, _ := serve(t, http.StatusOK, "<profile><steamID64>player</steamID64></profile>")

		_, _, err := New().Resolve(ctx, srv.URL)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("oversized body is cut off and fails to parse", func(t *testing.T) {
		srv, _ := serve(t, http.StatusOK, "<profile><pad>"+strings.Repeat("x", maxBodyBytes)+"</pad><steamID64>1</steamID64></profile>")

		_, _, err := New().Resolve(ctx, srv.URL)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("invalid url is rejected before fetching", func(t *testing.T) {
		for _, raw := range []string{"", "ftp://example.com/id/x", "https://", "::"} {
			_, _, err := New().Resolve(ctx, raw)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "url %q", raw)
		}
	})
}
