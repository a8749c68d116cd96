package kakao

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func sdkServer(t *testing.T, status int, hits *atomic.Int32, gate <-chan struct{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if gate != nil {
			<-gate
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte("window.Kakao={};"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadWithoutKeyDoesNotFetch(t *testing.T) {
	var hits atomic.Int32
	srv := sdkServer(t, http.StatusOK, &hits, nil)

	l := NewLoader(LoaderOptions{SDKURL: srv.URL, HTTPClient: srv.Client()})
	if _, err := l.Load(context.Background()); !errors.Is(err, ErrNoAppKey) {
		t.Fatalf("Load error = %v, want ErrNoAppKey", err)
	}
	if hits.Load() != 0 {
		t.Errorf("SDK fetched %d times, want 0", hits.Load())
	}
}

func TestLoadWithoutAccessTokenDoesNotFetch(t *testing.T) {
	var hits atomic.Int32
	srv := sdkServer(t, http.StatusOK, &hits, nil)

	l := NewLoader(LoaderOptions{AppKey: "key", SDKURL: srv.URL, HTTPClient: srv.Client()})
	if _, err := l.Load(context.Background()); !errors.Is(err, ErrNoAccessToken) {
		t.Fatalf("Load error = %v, want ErrNoAccessToken", err)
	}
	if hits.Load() != 0 {
		t.Errorf("SDK fetched %d times, want 0", hits.Load())
	}
}

func TestCancelledCallerDoesNotFailSharedFetch(t *testing.T) {
	var hits atomic.Int32
	gate := make(chan struct{})
	srv := sdkServer(t, http.StatusOK, &hits, gate)

	l := NewLoader(LoaderOptions{AppKey: "key", AccessToken: "tok", SDKURL: srv.URL, HTTPClient: srv.Client()})

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := l.Load(ctx)
		first <- err
	}()
	for hits.Load() == 0 {
		runtime.Gosched()
	}

	second := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background())
		second <- err
	}()

	cancel()
	close(gate)

	if err := <-first; err != nil {
		t.Errorf("first Load: %v", err)
	}
	if err := <-second; err != nil {
		t.Errorf("second Load: %v", err)
	}
	if !l.Initialized() {
		t.Error("fetch should complete after the first caller is cancelled")
	}
	if hits.Load() != 1 {
		t.Errorf("SDK fetched %d times, want 1", hits.Load())
	}
}

func TestConcurrentLoadsFetchOnce(t *testing.T) {
	var hits atomic.Int32
	gate := make(chan struct{})
	srv := sdkServer(t, http.StatusOK, &hits, gate)

	l := NewLoader(LoaderOptions{AppKey: "key", AccessToken: "tok", SDKURL: srv.URL, HTTPClient: srv.Client()})

	const callers = 8
	var wg sync.WaitGroup
	clients := make([]*Client, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clients[i], errs[i] = l.Load(context.Background())
		}(i)
	}
	// Hold the first fetch until the handler has been reached.
	for hits.Load() == 0 {
		runtime.Gosched()
	}
	close(gate)
	wg.Wait()

	if hits.Load() != 1 {
		t.Errorf("SDK fetched %d times, want 1", hits.Load())
	}
	for i := range clients {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if clients[i] != clients[0] {
			t.Errorf("caller %d got a different client", i)
		}
	}

	// Cached: no further fetch.
	if _, err := l.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 1 {
		t.Errorf("cached Load fetched again")
	}
}

func TestFailedLoadIsRetried(t *testing.T) {
	var hits atomic.Int32
	srv := sdkServer(t, http.StatusServiceUnavailable, &hits, nil)

	l := NewLoader(LoaderOptions{AppKey: "key", AccessToken: "tok", SDKURL: srv.URL, HTTPClient: srv.Client()})
	for i := 0; i < 2; i++ {
		if _, err := l.Load(context.Background()); err == nil {
			t.Fatalf("Load #%d succeeded against a 503", i+1)
		}
	}
	if hits.Load() != 2 {
		t.Errorf("fetches = %d, want 2", hits.Load())
	}
	if l.Initialized() {
		t.Error("failed Load must not cache a client")
	}
}

func TestSendDefaultRequestShape(t *testing.T) {
	var (
		gotAuth string
		gotTpl  FeedTemplate
		gotPath string
	)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		if err := json.Unmarshal([]byte(r.PostForm.Get("template_object")), &gotTpl); err != nil {
			t.Errorf("template_object: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer api.Close()
	var hits atomic.Int32
	sdk := sdkServer(t, http.StatusOK, &hits, nil)

	l := NewLoader(LoaderOptions{AppKey: "abc", AccessToken: "user-token", SDKURL: sdk.URL, APIBase: api.URL + "/", HTTPClient: api.Client()})
	c, err := l.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	tpl := NewFeed("내 휴식 스타일: 바다", "파도 소리 · 점수 3/12", "https://cdn.example.com/type-2.png", "https://example.com/")
	if err := c.SendDefault(context.Background(), tpl); err != nil {
		t.Fatalf("SendDefault: %v", err)
	}

	if gotPath != "/v2/api/talk/memo/default/send" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer user-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotTpl.ObjectType != "feed" || gotTpl.Content.Title != tpl.Content.Title {
		t.Errorf("template = %+v", gotTpl)
	}
	if len(gotTpl.Buttons) != 1 || gotTpl.Buttons[0].Title != "결과 보기" {
		t.Errorf("buttons = %+v", gotTpl.Buttons)
	}
	if gotTpl.Content.Link.MobileWebURL != "https://example.com/" {
		t.Errorf("link = %+v", gotTpl.Content.Link)
	}
}

func TestSendDefaultStatusError(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"msg":"invalid token"}`, http.StatusUnauthorized)
	}))
	defer api.Close()

	c := &Client{accessToken: "k", apiBase: api.URL, http: api.Client()}
	if err := c.SendDefault(context.Background(), NewFeed("t", "d", "https://x/y.png", "https://x/")); err == nil {
		t.Fatal("expected error for 401")
	}
}
