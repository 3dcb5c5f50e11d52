package culler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ansetechnoapp/syncmark-helper/internal/model"
)

// Status represents the health status of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
	Skipped                   // not an http(s) url
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	case Unreachable:
		return "unreachable"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result holds the check result for a single record.
type Result struct {
	Index      int // position in the checked set
	URL        string
	Status     Status
	StatusCode int    // HTTP status code (0 if connection failed)
	Error      string // Error message for unreachable URLs
}

// ProgressFunc is called after each URL is checked.
// completed is the number of URLs checked so far, total is the total count.
type ProgressFunc func(completed, total int)

// Options configures a check run.
type Options struct {
	Concurrency int
	Timeout     time.Duration
	// ExcludeDomains lists domains where 404s are treated as "possibly
	// private" instead of dead.
	ExcludeDomains []string
	OnProgress     ProgressFunc
	Client         *http.Client
}

// DefaultOptions returns the options used by the check command.
func DefaultOptions() Options {
	return Options{
		Concurrency:    10,
		Timeout:        10 * time.Second,
		ExcludeDomains: []string{"github.com", "gitlab.com"},
	}
}

// CheckURLs checks every url in the set concurrently and returns one result
// per record that has a url, in set order. Records without a url are not
// checked. Cancelling ctx stops new requests; unchecked records are reported
// as unreachable.
func CheckURLs(ctx context.Context, set model.Set, opts Options) []Result {
	type job struct {
		index int
		url   string
	}

	var jobs []job
	for i, b := range set {
		if u, ok := b.URL(); ok {
			jobs = append(jobs, job{index: i, url: u})
		}
	}
	if len(jobs) == 0 {
		return nil
	}

	excludeMap := make(map[string]bool)
	for _, domain := range opts.ExcludeDomains {
		excludeMap[strings.ToLower(domain)] = true
	}

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Follow redirects but limit to 10
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}

	results := make([]Result, len(jobs))
	queue := make(chan int, len(jobs))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range queue {
				results[n] = checkURL(ctx, client, jobs[n].url, excludeMap)
				results[n].Index = jobs[n].index

				if opts.OnProgress != nil {
					progressMu.Lock()
					completed++
					opts.OnProgress(completed, len(jobs))
					progressMu.Unlock()
				}
			}
		}()
	}

	for n := range jobs {
		queue <- n
	}
	close(queue)

	wg.Wait()
	return results
}

// checkURL checks a single URL and returns the result.
func checkURL(ctx context.Context, client *http.Client, rawURL string, excludeMap map[string]bool) Result {
	result := Result{URL: rawURL}

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		result.Status = Skipped
		return result
	}

	if err := ctx.Err(); err != nil {
		result.Status = Unreachable
		result.Error = "Cancelled"
		return result
	}

	// Try HEAD first (faster, less bandwidth)
	resp, err := do(ctx, client, http.MethodHead, rawURL)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if resp != nil {
			resp.Body.Close()
		}
		// Some servers don't support HEAD
		resp, err = do(ctx, client, http.MethodGet, rawURL)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == 404 || resp.StatusCode == 410:
		if isExcludedDomain(parsed.Hostname(), excludeMap) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// 500, 403 and the like may be temporary or need auth
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

func do(ctx context.Context, client *http.Client, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}

// isExcludedDomain checks if the host or one of its parents is excluded,
// so "api.github.com" matches "github.com".
func isExcludedDomain(host string, excludeMap map[string]bool) bool {
	host = strings.ToLower(host)
	if excludeMap[host] {
		return true
	}
	for domain := range excludeMap {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context canceled"):
		return "Cancelled"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}

// Prune returns the set without the records reported dead.
func Prune(set model.Set, results []Result) (model.Set, int) {
	dead := make(map[int]bool)
	for _, r := range results {
		if r.Status == Dead {
			dead[r.Index] = true
		}
	}

	kept := make(model.Set, 0, len(set))
	for i, b := range set {
		if !dead[i] {
			kept = append(kept, b)
		}
	}
	return kept, len(dead)
}

// Summary counts results by status.
func Summary(results []Result) map[Status]int {
	counts := make(map[Status]int)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}
