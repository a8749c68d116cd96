package share

import (
	"context"
	"net/url"

	"github.com/mindvr/reststyle/internal/kakao"
)

// User-facing Kakao messages.
const (
	MsgKakaoSetup = "카카오 공유를 사용하려면 Kakao 앱 키, 사용자 액세스 토큰(talk_message), 퍼블릭 OG 이미지가 필요합니다. kakao_app_key / kakao_access_token / type_og_base_url을 설정하세요."
	MsgKakaoSend  = "카카오 공유 중 오류가 발생했습니다. 링크 복사로 진행해 주세요."
)

// UserError carries a message meant for the person at the terminal.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Err }

// KakaoSharer sends the result as a Kakao feed message.
type KakaoSharer struct {
	Loader *kakao.Loader
	// ImageFor returns the preview image URL for a persona index.
	ImageFor func(idx int) string
}

// Share loads the SDK if needed and sends the feed. Every failure is a
// *UserError.
func (k *KakaoSharer) Share(ctx context.Context, p Payload) error {
	image := ""
	if k.ImageFor != nil {
		image = k.ImageFor(p.Index)
	}
	if k.Loader == nil || !isPublicURL(image) {
		return &UserError{Message: MsgKakaoSetup}
	}
	client, err := k.Loader.Load(ctx)
	if err != nil {
		return &UserError{Message: MsgKakaoSetup, Err: err}
	}
	tpl := kakao.NewFeed(p.Title, p.Description, image, p.URL)
	if err := client.SendDefault(ctx, tpl); err != nil {
		return &UserError{Message: MsgKakaoSend, Err: err}
	}
	return nil
}

func isPublicURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
