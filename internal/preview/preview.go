// Package preview rewrites the social preview tags of the result page.
package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mindvr/reststyle/content"
	"github.com/mindvr/reststyle/internal/share"
)

// FileName is the result page written into the app directory.
const FileName = "result.html"

// Meta is the set of values written into the page head.
type Meta struct {
	Title       string
	Description string
	Image       string
	URL         string
}

// ImageURL returns {base}type-{idx}.png when base is set, else def.
func ImageURL(base, def string, idx int) string {
	if strings.TrimSpace(base) == "" {
		return def
	}
	return base + "type-" + strconv.Itoa(idx) + ".png"
}

// MetaFor builds the tag values for a share payload.
func MetaFor(p share.Payload, image string) Meta {
	return Meta{
		Title:       p.Title,
		Description: p.Description,
		Image:       image,
		URL:         p.URL,
	}
}

type tag struct {
	attr  string // "property" or "name"
	key   string
	value func(Meta) string
}

var tags = []tag{
	{"property", "og:title", func(m Meta) string { return m.Title }},
	{"property", "og:description", func(m Meta) string { return m.Description }},
	{"property", "og:image", func(m Meta) string { return m.Image }},
	{"property", "og:url", func(m Meta) string { return m.URL }},
	{"name", "twitter:card", func(Meta) string { return "summary_large_image" }},
	{"name", "twitter:title", func(m Meta) string { return m.Title }},
	{"name", "twitter:description", func(m Meta) string { return m.Description }},
	{"name", "twitter:image", func(m Meta) string { return m.Image }},
}

// Render applies m to an HTML document. Existing tags are updated in place
// and missing ones are appended to the head.
func Render(page string, m Meta) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}
	head := doc.Find("head").First()
	for _, t := range tags {
		setOrCreate(head, t.attr, t.key, t.value(m))
	}
	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return out, nil
}

func setOrCreate(head *goquery.Selection, attr, key, value string) {
	selector := fmt.Sprintf(`meta[%s=%q]`, attr, key)
	el := head.Find(selector)
	if el.Length() == 0 {
		head.AppendHtml(fmt.Sprintf(`<meta %s=%q>`, attr, key))
		el = head.Find(selector)
	}
	el.SetAttr("content", value)
}

// Write renders the embedded result page into dir and returns its path.
// An existing page is used as the base so repeated writes update in place.
func Write(dir string, m Meta) (string, error) {
	path := filepath.Join(dir, FileName)
	return path, WriteFile(path, m)
}

// WriteFile renders the page into path.
func WriteFile(path string, m Meta) error {
	base := content.ResultPage
	if existing, err := os.ReadFile(path); err == nil && len(existing) > 0 {
		base = string(existing)
	}
	out, err := Render(base, m)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating page directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}
	return nil
}
