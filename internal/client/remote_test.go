package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fadeInJSON = `{
  "name": "fade-in",
  "type": "component",
  "framework": "react",
  "description": "Fade",
  "files": [{"name": "fade-in.tsx", "content": "export {}\n"}],
  "dependencies": ["react"],
  "devDependencies": [],
  "registryDependencies": ["utils"],
  "meta": {"source": "ui/fade-in.tsx"}
}`

const indexJSON = `{
  "version": "1.0.0",
  "frameworks": ["react"],
  "stats": {"totalComponents": 1, "totalUtilities": 0, "totalFrameworks": 1},
  "lastUpdated": "2026-01-01T00:00:00Z",
  "animations": [{"id": "fade-in", "name": "fade-in", "framework": "react", "description": "Fade",
    "libraries": [], "sources": ["ui/fade-in.tsx"], "difficulty": "beginner", "tags": []}]
}`

func newRegistryServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/r/react/fade-in.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "animkit", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write([]byte(fadeInJSON))
	})
	mux.HandleFunc("/r/vue/fade-in.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		_, _ = w.Write([]byte(fadeInJSON))
	})
	mux.HandleFunc("/r/react/boom.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/r/react/garbled.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{"))
	})
	mux.HandleFunc("/r/index.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(indexJSON))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteFetchItem(t *testing.T) {
	srv := newRegistryServer(t)
	c := NewRemote(srv.URL+"/r/", WithHTTPClient(srv.Client()))

	item, err := c.FetchItem(context.Background(), "fade-in", "react")
	require.NoError(t, err)
	assert.Equal(t, "fade-in", item.Name)
	assert.Equal(t, []string{"utils"}, item.RegistryDependencies)
	assert.Equal(t, srv.URL+"/r", c.BaseURL())
}

func TestRemoteNotFoundVsTransient(t *testing.T) {
	srv := newRegistryServer(t)
	c := NewRemote(srv.URL+"/r", WithHTTPClient(srv.Client()))
	ctx := context.Background()

	_, err := c.FetchItem(ctx, "nope", "react")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nope", nf.Name)
	assert.Equal(t, "react", nf.Framework)
	assert.True(t, IsNotFound(err))

	_, err = c.FetchItem(ctx, "boom", "react")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
	assert.False(t, IsNotFound(err))

	_, err = c.FetchItem(ctx, "garbled", "react")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestRemoteTransportFailure(t *testing.T) {
	srv := newRegistryServer(t)
	url := srv.URL
	srv.Close()

	c := NewRemote(url)
	_, err := c.FetchItem(context.Background(), "fade-in", "react")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, fe.StatusCode)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestRemoteExists(t *testing.T) {
	srv := newRegistryServer(t)
	c := NewRemote(srv.URL+"/r", WithHTTPClient(srv.Client()))
	ctx := context.Background()

	ok, err := c.Exists(ctx, "fade-in", "react")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Exists(ctx, "fade-in", "vue")
	require.NoError(t, err)
	assert.True(t, ok, "HEAD not allowed should fall back to GET")

	ok, err = c.Exists(ctx, "fade-in", "angular")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.Exists(ctx, "../etc", "react")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemoteFetchIndex(t *testing.T) {
	srv := newRegistryServer(t)
	c := NewRemote(srv.URL+"/r", WithHTTPClient(srv.Client()))

	idx, err := c.FetchIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Stats.TotalFrameworks)
	require.Len(t, idx.Animations, 1)
	assert.Equal(t, "fade-in", idx.Animations[0].ID)
}

func TestAvailability(t *testing.T) {
	srv := newRegistryServer(t)
	c := NewRemote(srv.URL+"/r", WithHTTPClient(srv.Client()))

	got := Availability(context.Background(), c, "fade-in", "nextjs")
	assert.Equal(t, []string{"react", "vue"}, got)

	got = Availability(context.Background(), c, "fade-in", "react")
	assert.Equal(t, []string{"vue"}, got)
}

func TestNewSelectsMode(t *testing.T) {
	_, isLocal := New(Config{Local: true, LocalRoot: "public/r"}).(*LocalClient)
	assert.True(t, isLocal)
	_, isRemote := New(Config{BaseURL: "https://example.com/r"}).(*RemoteClient)
	assert.True(t, isRemote)
}
