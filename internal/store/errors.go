package store

import "errors"

// インフラ関連エラー
var (
	// ErrValkeyUnavailable はValkeyコマンドが実行できない場合のエラー
	ErrValkeyUnavailable = errors.New("valkey unavailable")
)

// データ関連エラー
var (
	// ErrUserNotFound は内蔵ディレクトリにユーザーが存在しない場合のエラー
	ErrUserNotFound = errors.New("user not found")
)
