package auth

import (
	"context"
	"log/slog"

	"github.com/oyaguma3/mfa-radius-gateway/internal/config"
	"github.com/oyaguma3/mfa-radius-gateway/internal/logging"
	"github.com/oyaguma3/mfa-radius-gateway/internal/session"
	"layeh.com/radius"
)

// passwordExpiredMessage は期限切れ検出時にNASへ返すユーザー向けメッセージ
const passwordExpiredMessage = "Password expired. Please change your password and try again."

// RejectingPasswordChanger はパスワード変更フローを提供しない構成向けの
// PasswordChanger実装。変更セッションを保持せず、期限切れ検出時は
// Reply-Messageで変更を促してRejectする。
type RejectingPasswordChanger struct {
	maskUserName bool
}

// NewRejectingPasswordChanger は新しいRejectingPasswordChangerを生成する
func NewRejectingPasswordChanger(cfg *config.Config) *RejectingPasswordChanger {
	return &RejectingPasswordChanger{maskUserName: cfg.LogMaskUserName}
}

// HandleRequest は変更フロー対象外であればAcceptを返して処理を続行させ、
// 期限切れ検出済みのリクエストにはRejectを確定する。
func (p *RejectingPasswordChanger) HandleRequest(_ context.Context, req *session.PendingRequest, _ *config.ClientConfig) radius.Code {
	if !req.MustChangePassword {
		return radius.CodeAccessAccept
	}
	slog.Info("パスワード期限切れを検出",
		"event_id", "PWD_EXPIRED",
		"trace_id", req.TraceID,
		"user_name", logging.MaskUserName(req.UserName, p.maskUserName),
	)
	req.ReplyMessage = passwordExpiredMessage
	return radius.CodeAccessReject
}
