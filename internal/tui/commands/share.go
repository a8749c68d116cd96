package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindvr/reststyle/internal/preview"
	"github.com/mindvr/reststyle/internal/share"
	"github.com/mindvr/reststyle/internal/tui"
)

const (
	shareTimeout = 2 * time.Minute
	kakaoTimeout = 15 * time.Second
)

// ShareCmd runs the share chain in the background.
func ShareCmd(r *share.Resolver, p share.Payload) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shareTimeout)
		defer cancel()
		res, err := r.Share(ctx, p)
		return tui.ShareDoneMsg{Result: res, Err: err}
	}
}

// NaverCmd opens the Naver deep link for the payload.
func NaverCmd(o share.Opener, p share.Payload) tea.Cmd {
	return func() tea.Msg {
		u := share.NaverURL(p.URL, p.Title)
		return tui.NaverOpenedMsg{URL: u, Err: o.Open(u)}
	}
}

// KakaoCmd sends the payload through Kakao.
func KakaoCmd(k *share.KakaoSharer, p share.Payload) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), kakaoTimeout)
		defer cancel()
		return tui.KakaoSentMsg{Err: k.Share(ctx, p)}
	}
}

// CopyPanelCmd retries the copy mechanisms for the panel text.
func CopyPanelCmd(r *share.Resolver, text string) tea.Cmd {
	return func() tea.Msg {
		return tui.PanelCopiedMsg{Toast: r.CopyFromPanel(text)}
	}
}

// WritePreviewCmd rewrites the result page in dir.
func WritePreviewCmd(dir string, m preview.Meta) tea.Cmd {
	return func() tea.Msg {
		path, err := preview.Write(dir, m)
		return tui.PreviewWrittenMsg{Path: path, Err: err}
	}
}
