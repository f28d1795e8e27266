package proxy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oyaguma3/mfa-radius-gateway/internal/config"
	"layeh.com/radius"
)

// radiusProxyClient はClientのlayeh.com/radius実装
type radiusProxyClient struct {
	exchanger *radius.Client
	timeout   time.Duration
}

// NewClient は新しいプロキシクライアントを生成する
func NewClient() Client {
	return &radiusProxyClient{
		exchanger: &radius.Client{},
		timeout:   config.RadiusProxyTimeout,
	}
}

// Exchange は受信パケットの複製を転送先へ送信する。
// Shared Secretと認証子を受信時のまま維持するため、
// User-Password等の暗号化属性は再暗号化せずに転送できる。
func (c *radiusProxyClient) Exchange(ctx context.Context, request *radius.Packet, target string) (*radius.Packet, error) {
	forwarded := &radius.Packet{
		Code:          request.Code,
		Identifier:    request.Identifier,
		Authenticator: request.Authenticator,
		Secret:        request.Secret,
		Attributes:    make(radius.Attributes, len(request.Attributes)),
	}
	copy(forwarded.Attributes, request.Attributes)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	response, err := c.exchanger.Exchange(ctx, forwarded, target)
	if err != nil {
		return nil, fmt.Errorf("radius proxy exchange failed: %w", err)
	}

	slog.Debug("リモートRADIUS応答受信",
		"event_id", "PROXY_RESP",
		"target", target,
		"code", response.Code.String(),
		"elapsed_ms", time.Since(started).Milliseconds(),
	)
	return response, nil
}
