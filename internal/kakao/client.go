package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Link is a pair of web and mobile web targets.
type Link struct {
	WebURL       string `json:"web_url"`
	MobileWebURL string `json:"mobile_web_url"`
}

// Content is the body of a feed message.
type Content struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Link        Link   `json:"link"`
}

// Button is a call-to-action under the feed.
type Button struct {
	Title string `json:"title"`
	Link  Link   `json:"link"`
}

// FeedTemplate is the default feed message template.
type FeedTemplate struct {
	ObjectType string   `json:"object_type"`
	Content    Content  `json:"content"`
	Buttons    []Button `json:"buttons,omitempty"`
}

// NewFeed builds a feed pointing at pageURL with a single "결과 보기" button.
func NewFeed(title, description, imageURL, pageURL string) FeedTemplate {
	link := Link{WebURL: pageURL, MobileWebURL: pageURL}
	return FeedTemplate{
		ObjectType: "feed",
		Content: Content{
			Title:       title,
			Description: description,
			ImageURL:    imageURL,
			Link:        link,
		},
		Buttons: []Button{{Title: "결과 보기", Link: link}},
	}
}

const sendPath = "/v2/api/talk/memo/default/send"

// Client sends messages on behalf of the token's user.
type Client struct {
	accessToken string
	apiBase     string
	http        *http.Client
}

// SendDefault posts the template as a default "send to me" message.
func (c *Client) SendDefault(ctx context.Context, tpl FeedTemplate) error {
	obj, err := json.Marshal(tpl)
	if err != nil {
		return fmt.Errorf("kakao template: %w", err)
	}
	form := url.Values{"template_object": {string(obj)}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+sendPath, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("kakao send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("kakao send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("kakao send: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
