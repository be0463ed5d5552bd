package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newMemory(time.Minute, func() time.Time { return now })
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "/en-us/", Entry{Status: 200, Body: []byte("home")}))
	e, ok, err := m.Get(ctx, "/en-us/")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "home", string(e.Body))

	now = now.Add(time.Minute)
	_, ok, err = m.Get(ctx, "/en-us/")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryZeroTTLDisables(t *testing.T) {
	m := NewMemory(0)
	defer m.Close()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k", Entry{Status: 200}))
	_, ok, _ := m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestValkeyStore(t *testing.T) {
	s := miniredis.RunT(t)
	store, err := New(s.Addr(), "greece-web:pages", 5*time.Minute)
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "/ar/")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "/ar/", Entry{Status: 200, ContentType: "text/html", Body: []byte("<p>مرحبا</p>")}))
	assert.True(t, s.Exists("{greece-web:pages}:/ar/"))
	assert.Equal(t, 5*time.Minute, s.TTL("{greece-web:pages}:/ar/"))

	e, ok, err := store.Get(ctx, "/ar/")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "<p>مرحبا</p>", string(e.Body))
	assert.Equal(t, "text/html", e.ContentType)

	s.FastForward(5 * time.Minute)
	_, ok, err = store.Get(ctx, "/ar/")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "/fr/", Entry{Status: 200}))
	require.NoError(t, store.Delete(ctx, "/fr/"))
	assert.False(t, s.Exists("{greece-web:pages}:/fr/"))
}

func TestPagesMiddleware(t *testing.T) {
	calls := 0
	store := NewMemory(time.Minute)
	defer store.Close()
	h := Pages(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/cookie":
			http.SetCookie(w, &http.Cookie{Name: "hl", Value: "fr"})
			_, _ = w.Write([]byte("with cookie"))
		default:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("page " + r.Header.Get("HX-Request")))
		}
	}))

	get := func(path string, hx bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if hx {
			req.Header.Set("HX-Request", "true")
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	first := get("/en-us/", false)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	second := get("/en-us/", false)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, "page ", second.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", second.Header().Get("Content-Type"))
	assert.Equal(t, 1, calls)

	frag := get("/en-us/", true)
	assert.Equal(t, "page true", frag.Body.String())
	assert.Equal(t, 2, calls)

	get("/missing", false)
	get("/missing", false)
	assert.Equal(t, 4, calls)

	get("/cookie", false)
	get("/cookie", false)
	assert.Equal(t, 6, calls)
}

func TestKey(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/en-us/sections/1/articles?sort_by=updated_at", nil)
	assert.Equal(t, "/en-us/sections/1/articles?sort_by=updated_at", Key(r))

	r.Header.Set("HX-Request", "true")
	assert.Equal(t, "/en-us/sections/1/articles?sort_by=updated_at#hx", Key(r))

	r.Header.Set("HX-Boosted", "true")
	assert.Equal(t, "/en-us/sections/1/articles?sort_by=updated_at", Key(r))
}

func TestMemoryReapsDistinctQueries(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	m := newMemory(time.Minute, clock)
	defer m.Close()

	h := Pages(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("home"))
	}))
	for i := 0; i < 500; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/en-us/?utm="+strconv.Itoa(i), nil))
	}
	require.Equal(t, 500, m.Len())

	mu.Lock()
	now = now.Add(time.Hour)
	mu.Unlock()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/en-us/", nil))

	assert.Equal(t, 1, m.reap())
	assert.Equal(t, 1, m.Len())
}

func TestMemoryBoundsEntries(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newMemory(time.Minute, func() time.Time { return now })
	defer m.Close()
	ctx := context.Background()

	for i := 0; i < maxMemoryEntries; i++ {
		require.NoError(t, m.Set(ctx, "/en-us/?q="+strconv.Itoa(i), Entry{Status: 200, StoredAt: now}))
	}
	require.NoError(t, m.Set(ctx, "/fr/", Entry{Status: 200, StoredAt: now}))
	_, ok, _ := m.Get(ctx, "/fr/")
	assert.False(t, ok, "full store drops new keys")
	assert.Equal(t, maxMemoryEntries, m.Len())

	now = now.Add(2 * time.Minute)
	require.NoError(t, m.Set(ctx, "/fr/", Entry{Status: 200}))
	_, ok, _ = m.Get(ctx, "/fr/")
	assert.True(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestMemoryCloseStopsReaper(t *testing.T) {
	m := NewMemory(time.Millisecond)
	m.Close()
	m.Close()
	select {
	case <-m.stop:
	default:
		t.Fatal("stop channel not closed")
	}
}
