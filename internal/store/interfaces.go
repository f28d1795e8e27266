package store

import (
	"context"

	"github.com/oyaguma3/mfa-radius-gateway/internal/config"
)

// ClientStore はRADIUSクライアント（NAS）単位の設定解決を定義する
type ClientStore interface {
	// GetClientSecret は指定された送信元IPのShared Secretを取得する。
	// 未登録の場合は空文字列とnilを返す。
	GetClientSecret(ctx context.Context, ip string) (string, error)

	// Resolve は送信元IPに対応するクライアント設定を返す。
	// Valkeyに登録がない場合は既定値（環境変数由来）を返す。
	Resolve(ctx context.Context, ip string) (*config.ClientConfig, error)
}

// UserStore は内蔵ディレクトリのユーザーレコード取得を定義する
type UserStore interface {
	GetUser(ctx context.Context, userName string) (*UserRecord, error)
}

// UserRecord は内蔵ディレクトリの1ユーザーを表す
type UserRecord struct {
	UserName     string
	PasswordHash string // bcryptハッシュ
	DisplayName  string
	Email        string
	Phone        string
	Upn          string
	Groups       []string
}
