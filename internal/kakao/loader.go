// Package kakao initialises the Kakao messaging SDK on first use and sends
// feed messages through it.
package kakao

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultSDKURL is the published JavaScript SDK bundle. Fetching it proves
// the SDK endpoint is reachable before the first send.
const DefaultSDKURL = "https://developers.kakao.com/sdk/js/kakao.min.js"

// DefaultAPIBase is the REST API host.
const DefaultAPIBase = "https://kapi.kakao.com"

// DefaultFetchTimeout bounds the shared SDK fetch.
const DefaultFetchTimeout = 10 * time.Second

// Configuration errors returned by Load before anything is fetched.
var (
	ErrNoAppKey      = errors.New("kakao: app key not configured")
	ErrNoAccessToken = errors.New("kakao: user access token not configured")
)

// LoaderOptions configures a Loader. AccessToken is a user token with the
// talk_message scope; the memo API rejects app keys.
type LoaderOptions struct {
	AppKey       string
	AccessToken  string
	SDKURL       string
	APIBase      string
	HTTPClient   *http.Client
	FetchTimeout time.Duration
}

// Loader lazily initialises a Client. Concurrent Load calls share a single
// SDK fetch; a successful client is cached and a failure is not.
type Loader struct {
	opts  LoaderOptions
	group singleflight.Group

	mu     sync.Mutex
	client *Client
}

// NewLoader returns a Loader. Nothing is fetched until Load.
func NewLoader(opts LoaderOptions) *Loader {
	opts.AppKey = strings.TrimSpace(opts.AppKey)
	opts.AccessToken = strings.TrimSpace(opts.AccessToken)
	if opts.SDKURL == "" {
		opts.SDKURL = DefaultSDKURL
	}
	if opts.APIBase == "" {
		opts.APIBase = DefaultAPIBase
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: DefaultFetchTimeout}
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	return &Loader{opts: opts}
}

// Load returns the initialised client. The shared fetch outlives a
// cancelled caller so collapsed waiters are not failed with it.
func (l *Loader) Load(ctx context.Context) (*Client, error) {
	if l.opts.AppKey == "" {
		return nil, ErrNoAppKey
	}
	if l.opts.AccessToken == "" {
		return nil, ErrNoAccessToken
	}
	if c := l.cached(); c != nil {
		return c, nil
	}

	v, err, _ := l.group.Do("sdk", func() (interface{}, error) {
		if c := l.cached(); c != nil {
			return c, nil
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.opts.FetchTimeout)
		defer cancel()
		if err := l.fetchSDK(fetchCtx); err != nil {
			return nil, err
		}
		c := &Client{
			accessToken: l.opts.AccessToken,
			apiBase:     strings.TrimRight(l.opts.APIBase, "/"),
			http:        l.opts.HTTPClient,
		}
		l.mu.Lock()
		l.client = c
		l.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Client), nil
}

// Initialized reports whether a client is cached.
func (l *Loader) Initialized() bool {
	return l.cached() != nil
}

// Reset drops the cached client.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.client = nil
	l.mu.Unlock()
}

func (l *Loader) cached() *Client {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.client
}

func (l *Loader) fetchSDK(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.opts.SDKURL, nil)
	if err != nil {
		return fmt.Errorf("kakao sdk request: %w", err)
	}
	resp, err := l.opts.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("kakao sdk fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("kakao sdk fetch: status %d", resp.StatusCode)
	}
	// Drain so the connection can be reused.
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("kakao sdk read: %w", err)
	}
	return nil
}
