// Package auth はAccess-Requestの認証パイプライン（第一要素・第二要素・
// チャレンジ継続）を実装する。
package auth

import (
	"context"

	"github.com/oyaguma3/mfa-radius-gateway/internal/config"
	"github.com/oyaguma3/mfa-radius-gateway/internal/session"
	"layeh.com/radius"
)

// FirstFactorProvider は第一要素認証の方式ごとの実装を定義する
type FirstFactorProvider interface {
	// Authenticate は第一要素認証を実行し、応答コードを返す。
	// Accept時はリクエストにユーザープロファイルを設定する。
	Authenticate(ctx context.Context, req *session.PendingRequest, cc *config.ClientConfig) radius.Code
}

// SecondFactor は二要素認証の要求とチャレンジ検証を定義する
type SecondFactor interface {
	// RequestSecondFactor は二要素認証を開始し、応答コードを確定する。
	// Access-Challengeを返す場合はリクエストにStateトークンを設定する。
	RequestSecondFactor(ctx context.Context, req *session.PendingRequest, cc *config.ClientConfig) radius.Code

	// VerifyChallenge は未解決チャレンジへの応答を検証する
	VerifyChallenge(ctx context.Context, req *session.PendingRequest, cc *config.ClientConfig, answer string) radius.Code
}

// PasswordChanger はパスワード変更フローへの委譲を定義する
type PasswordChanger interface {
	// HandleRequest は変更フローの継続・開始を判定し、応答コードを返す。
	// AccessAcceptは変更フローの対象外であり処理を続行することを意味する。
	// それ以外のコードは最終応答として確定する。
	HandleRequest(ctx context.Context, req *session.PendingRequest, cc *config.ClientConfig) radius.Code
}
