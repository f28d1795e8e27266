// Package proxy はリモートRADIUSサーバーへの第一要素委譲を提供する。
package proxy

import (
	"context"

	"layeh.com/radius"
)

// Client はリモートRADIUSサーバーとのパケット交換を定義する
type Client interface {
	// Exchange はAccess-Requestを転送先へ送信し、応答パケットを返す。
	// タイムアウトを含む失敗時はエラーを返し、リトライは行わない。
	Exchange(ctx context.Context, request *radius.Packet, target string) (*radius.Packet, error)
}
