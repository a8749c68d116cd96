package share

import (
	"errors"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

const naverShareBase = "https://share.naver.com/web/shareView.nhn"

// NaverURL returns the Naver share deep link for a page and title.
func NaverURL(pageURL, title string) string {
	return naverShareBase + "?url=" + encodeURIComponent(pageURL) + "&title=" + encodeURIComponent(title)
}

// encodeURIComponent escapes s like the browser function of the same name:
// everything except A-Z a-z 0-9 and - _ . ! ~ * ' ( ) is percent-encoded.
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	r := strings.NewReplacer("%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*", "%7E", "~")
	return r.Replace(escaped)
}

// Opener opens a URL outside the process.
type Opener interface {
	Open(url string) error
}

// SystemBrowser hands URLs to the platform opener and does not wait for it.
type SystemBrowser struct {
	goos     string
	lookPath func(string) (string, error)
	start    func(*exec.Cmd) error
}

// NewSystemBrowser returns an opener for the running platform.
func NewSystemBrowser() *SystemBrowser {
	return &SystemBrowser{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// Open launches the browser for rawURL.
func (b *SystemBrowser) Open(rawURL string) error {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return errors.New("empty URL")
	}
	cmd, err := b.command(u)
	if err != nil {
		return err
	}
	return b.start(cmd)
}

func (b *SystemBrowser) command(u string) (*exec.Cmd, error) {
	switch b.goos {
	case "windows":
		return exec.Command("cmd", "/c", "start", "", u), nil
	case "darwin":
		return exec.Command("open", u), nil
	}
	for _, name := range []string{"xdg-open", "open"} {
		if path, err := b.lookPath(name); err == nil {
			return exec.Command(path, u), nil
		}
	}
	return nil, errors.New("no opener command found (`xdg-open`/`open`)")
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
