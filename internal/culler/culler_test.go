package culler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/ansetechnoapp/syncmark-helper/internal/model"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/no-head", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ok", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testSet(base string) model.Set {
	return model.Set{
		model.NewBookmark(model.NewBookmarkParams{URL: base + "/ok"}),
		model.MustParseBookmark(`{"title":"no url"}`),
		model.NewBookmark(model.NewBookmarkParams{URL: base + "/missing"}),
		model.NewBookmark(model.NewBookmarkParams{URL: base + "/gone"}),
		model.NewBookmark(model.NewBookmarkParams{URL: base + "/broken"}),
		model.NewBookmark(model.NewBookmarkParams{URL: base + "/no-head"}),
		model.NewBookmark(model.NewBookmarkParams{URL: base + "/redirect"}),
		model.NewBookmark(model.NewBookmarkParams{URL: "chrome://settings"}),
	}
}

func TestCheckURLs(t *testing.T) {
	srv := newServer(t)
	set := testSet(srv.URL)

	opts := DefaultOptions()
	opts.Concurrency = 3
	results := CheckURLs(context.Background(), set, opts)

	assert.Equal(t, len(results), 7)

	want := []struct {
		index  int
		status Status
		code   int
	}{
		{0, Healthy, 200},
		{2, Dead, 404},
		{3, Dead, 410},
		{4, Unreachable, 500},
		{5, Healthy, 200},
		{6, Healthy, 200},
		{7, Skipped, 0},
	}
	for i, w := range want {
		assert.Check(t, is.Equal(results[i].Index, w.index), "result %d", i)
		assert.Check(t, is.Equal(results[i].Status, w.status), "result %d (%s)", i, results[i].URL)
		assert.Check(t, is.Equal(results[i].StatusCode, w.code), "result %d (%s)", i, results[i].URL)
	}
	assert.Check(t, is.Equal(results[3].Error, "Internal Server Error"))
}

func TestCheckURLs_ExcludedDomain(t *testing.T) {
	srv := newServer(t)
	u, err := url.Parse(srv.URL)
	assert.NilError(t, err)

	opts := DefaultOptions()
	opts.ExcludeDomains = []string{u.Hostname()}
	set := model.Set{model.NewBookmark(model.NewBookmarkParams{URL: srv.URL + "/missing"})}

	results := CheckURLs(context.Background(), set, opts)

	assert.Equal(t, len(results), 1)
	assert.Equal(t, results[0].Status, Unreachable)
	assert.Equal(t, results[0].Error, "Possibly private (auth required)")
}

func TestCheckURLs_Progress(t *testing.T) {
	srv := newServer(t)
	set := testSet(srv.URL)

	var calls atomic.Int32
	var lastTotal atomic.Int32
	opts := DefaultOptions()
	opts.OnProgress = func(completed, total int) {
		calls.Add(1)
		lastTotal.Store(int32(total))
	}

	CheckURLs(context.Background(), set, opts)

	assert.Equal(t, calls.Load(), int32(7))
	assert.Equal(t, lastTotal.Load(), int32(7))
}

func TestCheckURLs_Cancelled(t *testing.T) {
	srv := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := CheckURLs(ctx, model.Set{model.NewBookmark(model.NewBookmarkParams{URL: srv.URL + "/ok"})}, DefaultOptions())

	assert.Equal(t, len(results), 1)
	assert.Equal(t, results[0].Status, Unreachable)
	assert.Equal(t, results[0].Error, "Cancelled")
}

func TestCheckURLs_NothingToCheck(t *testing.T) {
	results := CheckURLs(context.Background(), model.MustParseSet(`[{"title":"x"}]`), DefaultOptions())
	assert.Check(t, is.Len(results, 0))
}

func TestPrune(t *testing.T) {
	srv := newServer(t)
	set := testSet(srv.URL)
	results := CheckURLs(context.Background(), set, DefaultOptions())

	kept, removed := Prune(set, results)

	assert.Equal(t, removed, 2)
	assert.Equal(t, len(kept), len(set)-2)
	assert.Check(t, !kept.HasURL(srv.URL+"/missing"))
	assert.Check(t, !kept.HasURL(srv.URL+"/gone"))
	assert.Check(t, kept[1].Equal(set[1]), "records without a url are kept")
}

func TestSummary(t *testing.T) {
	counts := Summary([]Result{{Status: Healthy}, {Status: Dead}, {Status: Healthy}})
	assert.Equal(t, counts[Healthy], 2)
	assert.Equal(t, counts[Dead], 1)
	assert.Equal(t, counts[Unreachable], 0)
}

func TestIsExcludedDomain(t *testing.T) {
	exclude := map[string]bool{"github.com": true}
	assert.Check(t, isExcludedDomain("github.com", exclude))
	assert.Check(t, isExcludedDomain("API.GitHub.com", exclude))
	assert.Check(t, !isExcludedDomain("notgithub.com", exclude))
}

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"dial tcp: lookup nowhere.invalid: no such host", "DNS failure"},
		{"Get \"x\": context deadline exceeded", "Timeout"},
		{"dial tcp 127.0.0.1:1: connect: connection refused", "Connection refused"},
		{"x509: certificate signed by unknown authority", "TLS/certificate error"},
		{"something else", "something else"},
	}
	for _, tt := range tests {
		assert.Check(t, is.Equal(normalizeError(tt.in), tt.want), tt.in)
	}
}
