package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/oyaguma3/mfa-radius-gateway/internal/config"
	"github.com/redis/go-redis/v9"
)

// clientStore はClientStoreのValkey実装。
// NAS単位のハッシュ（client:<ip>）から設定を読み取り、
// 既定値（環境変数由来）の上に部分上書きする。
type clientStore struct {
	vc       *ValkeyClient
	defaults *config.ClientConfig
}

// NewClientStore はClientStoreの新しいインスタンスを生成する。
func NewClientStore(vc *ValkeyClient, defaults *config.ClientConfig) ClientStore {
	return &clientStore{vc: vc, defaults: defaults}
}

// GetClientSecret は指定された送信元IPのShared Secretを取得する。
func (s *clientStore) GetClientSecret(ctx context.Context, ip string) (string, error) {
	key := KeyPrefixClient + ip
	secret, err := s.vc.Client().HGet(ctx, key, "secret").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
	}
	return secret, nil
}

// Resolve は送信元IPに対応するクライアント設定を返す。
func (s *clientStore) Resolve(ctx context.Context, ip string) (*config.ClientConfig, error) {
	key := KeyPrefixClient + ip
	m, err := s.vc.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
	}

	cc := *s.defaults
	if len(m) == 0 {
		return &cc, nil
	}

	cc.Name = ip
	s.applyOverrides(&cc, m, ip)
	return &cc, nil
}

// applyOverrides はValkey登録値でフィールドを上書きする。
// 解析できない値は無視し、既定値を維持する。
func (s *clientStore) applyOverrides(cc *config.ClientConfig, m map[string]string, ip string) {
	if v, ok := m["name"]; ok && v != "" {
		cc.Name = v
	}
	if v, ok := m["secret"]; ok && v != "" {
		cc.Secret = v
	}
	if v, ok := m["first_factor_source"]; ok && v != "" {
		source, err := config.ParseAuthSource(v)
		if err != nil {
			slog.Warn("クライアント設定の第一要素ソースが不正",
				"event_id", "CLIENT_CFG_INVALID",
				"src_ip", ip,
				"field", "first_factor_source",
				"value", v,
			)
		} else {
			cc.FirstFactorSource = source
		}
	}
	if v, ok := m["radius_proxy_target"]; ok && v != "" {
		cc.RadiusProxyTarget = v
	}
	if v, ok := m["directory_group"]; ok && v != "" {
		cc.DirectoryGroup = v
	}
	if v, ok := m["second_factor_bypass_group"]; ok && v != "" {
		cc.SecondFactorBypassGroup = v
	}
	if v, ok := m["check_membership"]; ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cc.CheckMembership = b
		}
	}
	if v, ok := m["use_upn_as_identity"]; ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cc.UseUpnAsIdentity = b
		}
	}
	if v, ok := m["privacy_mode"]; ok && v != "" {
		privacy, err := config.ParsePrivacyMode(v)
		if err != nil {
			slog.Warn("クライアント設定の秘匿方式が不正",
				"event_id", "CLIENT_CFG_INVALID",
				"src_ip", ip,
				"field", "privacy_mode",
				"value", v,
			)
		} else {
			cc.Privacy = privacy
		}
	}
	if v, ok := m["api_key"]; ok && v != "" {
		cc.APIKey = v
	}
	if v, ok := m["api_secret"]; ok && v != "" {
		cc.APISecret = v
	}
	if v, ok := m["bypass_period_minutes"]; ok && v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes >= 0 {
			cc.BypassPeriod = time.Duration(minutes) * time.Minute
		}
	}
	if v, ok := m["bypass_when_unreachable"]; ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cc.BypassWhenUnreachable = b
		}
	}
	if v, ok := m["signup_groups"]; ok && v != "" {
		cc.SignUpGroups = v
	}
}
