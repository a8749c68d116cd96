package share

import (
	"context"
	"errors"
	"sync/atomic"
)

// ToastCopied is shown after a successful clipboard or terminal copy.
const ToastCopied = "링크가 클립보드에 복사되었습니다!"

// ErrShareInProgress is returned when a share is started while another one
// has not finished.
var ErrShareInProgress = errors.New("share already in progress")

// NativeSharer hands the payload to a platform share facility.
type NativeSharer interface {
	Available() bool
	Share(ctx context.Context, p Payload) error
}

// Clipboard writes plain text to the system clipboard.
type Clipboard interface {
	Available() bool
	WriteText(text string) error
}

// LegacyCopier is the last copy mechanism tried before the panel.
type LegacyCopier interface {
	Copy(text string) error
}

// Outcome names the channel that completed a share.
type Outcome int

const (
	OutcomeNative Outcome = iota
	OutcomeClipboard
	OutcomeLegacy
	OutcomePanel
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNative:
		return "native"
	case OutcomeClipboard:
		return "clipboard"
	case OutcomeLegacy:
		return "legacy"
	case OutcomePanel:
		return "panel"
	default:
		return "unknown"
	}
}

// Result reports how a share ended. Toast is empty unless a copy
// succeeded; Text is the composed text, which the panel displays.
type Result struct {
	Outcome Outcome
	Toast   string
	Text    string
	// Errors collects the failures that fell through, for logging only.
	Errors []error
}

// Resolver runs the share chain. Nil ports count as unavailable.
type Resolver struct {
	Native    NativeSharer
	Clipboard Clipboard
	Legacy    LegacyCopier

	busy atomic.Bool
}

// Share tries native share, then the clipboard, then the legacy copier, and
// ends on the panel when all of them fail. Only ErrShareInProgress is ever
// returned.
func (r *Resolver) Share(ctx context.Context, p Payload) (Result, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return Result{}, ErrShareInProgress
	}
	defer r.busy.Store(false)

	res := Result{Text: p.Text}

	if r.Native != nil && r.Native.Available() {
		err := r.Native.Share(ctx, p)
		if err == nil {
			res.Outcome = OutcomeNative
			return res, nil
		}
		res.Errors = append(res.Errors, err)
	}

	outcome, errs := r.copy(p.Text)
	res.Errors = append(res.Errors, errs...)
	res.Outcome = outcome
	if outcome != OutcomePanel {
		res.Toast = ToastCopied
	}
	return res, nil
}

// CopyFromPanel retries the copy mechanisms for text shown in the panel.
// It returns the toast to show, or "" when nothing worked.
func (r *Resolver) CopyFromPanel(text string) string {
	if outcome, _ := r.copy(text); outcome != OutcomePanel {
		return ToastCopied
	}
	return ""
}

// Busy reports whether a share is running.
func (r *Resolver) Busy() bool {
	return r.busy.Load()
}

func (r *Resolver) copy(text string) (Outcome, []error) {
	var errs []error
	if r.Clipboard != nil && r.Clipboard.Available() {
		err := r.Clipboard.WriteText(text)
		if err == nil {
			return OutcomeClipboard, nil
		}
		errs = append(errs, err)
	}
	if r.Legacy != nil {
		err := r.Legacy.Copy(text)
		if err == nil {
			return OutcomeLegacy, errs
		}
		errs = append(errs, err)
	}
	return OutcomePanel, errs
}
