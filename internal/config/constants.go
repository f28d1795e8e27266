package config

import "time"

// Valkey接続設定
const (
	ValkeyConnectTimeout = 3 * time.Second
	ValkeyCommandTimeout = 2 * time.Second
	ValkeyPoolSize       = 10
)

// 二要素認証API接続設定
const (
	APIRequestTimeout = 30 * time.Second
)

// Circuit Breaker設定
const (
	CBName             = "mfa-api"
	CBMaxRequests      = 3
	CBInterval         = 10 * time.Second
	CBTimeout          = 30 * time.Second
	CBFailureThreshold = 5
)

// リモートRADIUSプロキシ設定
const (
	RadiusProxyTimeout = 5 * time.Second
)

// ディレクトリ接続設定
const (
	LdapOperationTimeout = 10 * time.Second
)

// サーバーシャットダウン設定
const (
	ShutdownTimeout = 5 * time.Second
)
