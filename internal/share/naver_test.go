package share

import (
	"errors"
	"os/exec"
	"testing"
)

func TestEncodeURIComponent(t *testing.T) {
	cases := map[string]string{
		"https://example.com/?a=1&b=2": "https%3A%2F%2Fexample.com%2F%3Fa%3D1%26b%3D2",
		"a b":                          "a%20b",
		"!'()*-_.~":                    "!'()*-_.~",
		"휴식":                           "%ED%9C%B4%EC%8B%9D",
		"a+b":                          "a%2Bb",
	}
	for in, want := range cases {
		if got := encodeURIComponent(in); got != want {
			t.Errorf("encodeURIComponent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNaverURL(t *testing.T) {
	got := NaverURL("https://example.com/", "내 휴식 스타일: A B")
	want := "https://share.naver.com/web/shareView.nhn?url=https%3A%2F%2Fexample.com%2F&title=%EB%82%B4%20%ED%9C%B4%EC%8B%9D%20%EC%8A%A4%ED%83%80%EC%9D%BC%3A%20A%20B"
	if got != want {
		t.Errorf("NaverURL =\n %s\nwant\n %s", got, want)
	}
}

func TestSystemBrowserCommand(t *testing.T) {
	var started *exec.Cmd
	b := &SystemBrowser{
		goos:     "linux",
		lookPath: func(name string) (string, error) { return "/usr/bin/" + name, nil },
		start:    func(c *exec.Cmd) error { started = c; return nil },
	}
	if err := b.Open("https://example.com/"); err != nil {
		t.Fatal(err)
	}
	if started == nil || started.Path != "/usr/bin/xdg-open" || started.Args[1] != "https://example.com/" {
		t.Errorf("started = %+v", started)
	}

	b.lookPath = func(string) (string, error) { return "", errors.New("missing") }
	if err := b.Open("https://example.com/"); err == nil {
		t.Error("expected error without an opener")
	}
	if err := b.Open("  "); err == nil {
		t.Error("expected error for empty URL")
	}
}
