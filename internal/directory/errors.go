package directory

import "errors"

// ディレクトリ連携のセンチネルエラー
var (
	// ErrInvalidCredentials はユーザー名またはパスワードの不一致を表す
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound はユーザーが存在しないことを表す
	ErrUserNotFound = errors.New("user not found")

	// ErrPasswordExpired はパスワード期限切れまたは変更要求を表す
	ErrPasswordExpired = errors.New("password expired")

	// ErrAccountLocked はアカウントのロックアウトを表す
	ErrAccountLocked = errors.New("account locked")

	// ErrAccountDisabled はアカウントの無効化を表す
	ErrAccountDisabled = errors.New("account disabled")

	// ErrDirectoryUnavailable はディレクトリサーバーへの接続失敗を表す
	ErrDirectoryUnavailable = errors.New("directory unavailable")
)
