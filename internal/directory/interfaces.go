// Package directory は第一要素認証のユーザーディレクトリ連携を提供する。
package directory

import "context"

// CredentialVerifier はユーザー資格情報の検証とグループ所属確認を定義する
type CredentialVerifier interface {
	// VerifyCredential はユーザー名とパスワードを検証し、
	// 成功時にユーザープロファイルを返す。
	// 失敗時はErrInvalidCredentials等のセンチネルエラーを返す。
	VerifyCredential(ctx context.Context, userName, password string) (*Profile, error)

	// VerifyMembership はユーザーが指定グループに所属しているかを返す。
	VerifyMembership(ctx context.Context, userName, group string) (bool, error)
}
