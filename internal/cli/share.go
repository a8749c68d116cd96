// share.go implements the "reststyle share" command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindvr/reststyle/internal/log"
	"github.com/mindvr/reststyle/internal/share"
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Share your result",
	Long: `Share the result card.

--via chain (default) tries the native share command, then the clipboard,
then an OSC 52 terminal copy, and finally prints the text to copy by hand.
--via naver opens the Naver share page in the browser.
--via kakao sends a Kakao feed message (needs kakao_app_key,
kakao_access_token and a public type_og_base_url in config.yaml).`,
	RunE: runShare,
}

var viaFlag string

func init() {
	shareCmd.Flags().StringVar(&viaFlag, "via", "chain", "Share channel: chain, naver or kakao")
}

func runShare(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	st, err := e.resultState()
	if err != nil {
		return err
	}
	p := e.payload(st)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	switch viaFlag {
	case "chain", "":
		return shareChain(ctx, cmd, e, e.resolver(), p)
	case "naver":
		return shareNaver(cmd, e, e.opener(), p)
	case "kakao":
		return shareKakao(ctx, cmd, e, e.kakaoSharer(), p)
	default:
		return fmt.Errorf("unknown share channel %q (want chain, naver or kakao)", viaFlag)
	}
}

func shareChain(ctx context.Context, cmd *cobra.Command, e *env, r *share.Resolver, p share.Payload) error {
	out := cmd.OutOrStdout()
	res, err := r.Share(ctx, p)
	if err != nil {
		return err
	}
	for _, ferr := range res.Errors {
		debugf("fell through: %v", ferr)
	}

	switch res.Outcome {
	case share.OutcomeNative:
		e.logShare(log.EventShareNative, res.Outcome.String(), nil)
		fmt.Fprintln(out, "공유했습니다.")
	case share.OutcomeClipboard, share.OutcomeLegacy:
		e.logShare(log.EventShareCopied, res.Outcome.String(), nil)
		fmt.Fprintln(out, res.Toast)
	default:
		e.logShare(log.EventSharePanel, res.Outcome.String(), errors.Join(res.Errors...))
		fmt.Fprintf(out, "공유 내용 복사\n\n%s\n", res.Text)
	}
	return nil
}

func shareNaver(cmd *cobra.Command, e *env, o share.Opener, p share.Payload) error {
	out := cmd.OutOrStdout()
	u := share.NaverURL(p.URL, p.Title)
	err := o.Open(u)
	e.logShare(log.EventShareNaver, "naver", err)
	if err != nil {
		debugf("browser not opened: %v", err)
		fmt.Fprintf(out, "Open this link to share on Naver:\n%s\n", u)
		return nil
	}
	fmt.Fprintln(out, u)
	return nil
}

func shareKakao(ctx context.Context, cmd *cobra.Command, e *env, k *share.KakaoSharer, p share.Payload) error {
	if err := k.Share(ctx, p); err != nil {
		e.logShare(log.EventShareKakaoFailed, "kakao", err)
		var ue *share.UserError
		if errors.As(err, &ue) && ue.Err != nil {
			debugf("kakao: %v", ue.Err)
		}
		return err
	}
	e.logShare(log.EventShareKakao, "kakao", nil)
	fmt.Fprintln(cmd.OutOrStdout(), "카카오톡으로 공유했습니다.")
	return nil
}
