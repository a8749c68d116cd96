package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/mindvr/reststyle/internal/share"
)

func parse(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func metaContent(doc *goquery.Document, selector string) (string, int) {
	sel := doc.Find(selector)
	v, _ := sel.Attr("content")
	return v, sel.Length()
}

var sample = Meta{
	Title:       "내 휴식 스타일: 테스트",
	Description: "한 줄 요약 · 점수 7/12",
	Image:       "https://cdn.example.com/rest-types/type-4.png",
	URL:         "https://example.com/",
}

func TestRenderCreatesMissingTags(t *testing.T) {
	out, err := Render("<html><head><title>x</title></head><body></body></html>", sample)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := parse(t, out)

	checks := map[string]string{
		`meta[property="og:title"]`:        sample.Title,
		`meta[property="og:description"]`:  sample.Description,
		`meta[property="og:image"]`:        sample.Image,
		`meta[property="og:url"]`:          sample.URL,
		`meta[name="twitter:card"]`:        "summary_large_image",
		`meta[name="twitter:title"]`:       sample.Title,
		`meta[name="twitter:description"]`: sample.Description,
		`meta[name="twitter:image"]`:       sample.Image,
	}
	for sel, want := range checks {
		got, n := metaContent(doc, sel)
		if n != 1 {
			t.Errorf("%s: %d elements, want 1", sel, n)
		}
		if got != want {
			t.Errorf("%s content = %q, want %q", sel, got, want)
		}
	}
}

func TestRenderUpdatesInPlace(t *testing.T) {
	page := `<html><head><meta property="og:title" content="old"><meta name="twitter:card" content="summary"></head></html>`
	out, err := Render(page, sample)
	if err != nil {
		t.Fatal(err)
	}
	// Render twice; tags must not duplicate.
	out, err = Render(out, sample)
	if err != nil {
		t.Fatal(err)
	}
	doc := parse(t, out)
	if got, n := metaContent(doc, `meta[property="og:title"]`); n != 1 || got != sample.Title {
		t.Errorf("og:title = %q (%d elements)", got, n)
	}
	if got, n := metaContent(doc, `meta[name="twitter:card"]`); n != 1 || got != "summary_large_image" {
		t.Errorf("twitter:card = %q (%d elements)", got, n)
	}
}

func TestImageURL(t *testing.T) {
	if got := ImageURL("", "/og-default.png", 3); got != "/og-default.png" {
		t.Errorf("no base: %q", got)
	}
	if got := ImageURL("https://cdn.site.com/rest-types/", "/og-default.png", 3); got != "https://cdn.site.com/rest-types/type-3.png" {
		t.Errorf("with base: %q", got)
	}
}

func TestWriteFromEmbeddedShell(t *testing.T) {
	dir := t.TempDir()
	p := share.BuildPayload(12, 12, "https://example.com/")
	path, err := Write(dir, MetaFor(p, ImageURL("", "/og-default.png", p.Index)))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if path != filepath.Join(dir, FileName) {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc := parse(t, string(data))
	if got, _ := metaContent(doc, `meta[property="og:type"]`); got != "website" {
		t.Errorf("shell tag lost: og:type = %q", got)
	}
	if got, _ := metaContent(doc, `meta[property="og:title"]`); got != p.Title {
		t.Errorf("og:title = %q, want %q", got, p.Title)
	}
	if got, _ := metaContent(doc, `meta[property="og:description"]`); !strings.HasSuffix(got, "점수 12/12") {
		t.Errorf("og:description = %q", got)
	}
}
