package tui

import "github.com/mindvr/reststyle/internal/share"

// TimerFiredMsg carries a scheduled callback onto the event loop.
type TimerFiredMsg struct {
	Fn func()
}

// TimersClosedMsg signals that the dispatcher stopped delivering callbacks.
type TimersClosedMsg struct{}

// ShareDoneMsg reports the end of a share chain run.
type ShareDoneMsg struct {
	Result share.Result
	Err    error
}

// PanelCopiedMsg reports a copy from the fallback panel. Toast is empty
// when every copy mechanism failed.
type PanelCopiedMsg struct {
	Toast string
}

// NaverOpenedMsg reports the Naver deep link hand-off.
type NaverOpenedMsg struct {
	URL string
	Err error
}

// KakaoSentMsg reports the Kakao send outcome. Err is a *share.UserError.
type KakaoSentMsg struct {
	Err error
}

// PreviewWrittenMsg reports the result page rewrite.
type PreviewWrittenMsg struct {
	Path string
	Err  error
}

// CtrlCResetMsg clears the pending Ctrl+C confirmation.
type CtrlCResetMsg struct{}
