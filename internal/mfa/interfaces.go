// Package mfa は二要素認証APIとの連携を提供する。
package mfa

import (
	"context"

	"github.com/oyaguma3/mfa-radius-gateway/internal/config"
)

// ApiTransport は二要素認証APIへのHTTP送信を定義する
type ApiTransport interface {
	// Post はペイロードを指定パスへ送信し、判定結果を返す。
	// API資格情報はクライアント（テナント）設定から取る。
	Post(ctx context.Context, path string, payload any, cc *config.ClientConfig) (*AccessResult, error)
}
