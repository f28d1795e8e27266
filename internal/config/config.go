package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AuthSource は第一要素認証の方式を表す
type AuthSource string

// 第一要素認証ソース
const (
	SourceDirectory AuthSource = "directory" // ディレクトリバインド認証
	SourceEmbedded  AuthSource = "embedded"  // 内蔵ディレクトリ認証
	SourceRadius    AuthSource = "radius"    // リモートRADIUSプロキシ認証
	SourceNone      AuthSource = "none"      // 第一要素なし
)

// ParseAuthSource は文字列をAuthSourceに変換する
func ParseAuthSource(s string) (AuthSource, error) {
	switch AuthSource(strings.ToLower(strings.TrimSpace(s))) {
	case SourceDirectory:
		return SourceDirectory, nil
	case SourceEmbedded:
		return SourceEmbedded, nil
	case SourceRadius:
		return SourceRadius, nil
	case SourceNone:
		return SourceNone, nil
	}
	return "", fmt.Errorf("unknown first factor source: %q", s)
}

// Config はアプリケーション設定を保持する
type Config struct {
	// Valkey接続設定
	RedisHost string `envconfig:"REDIS_HOST" required:"true"`
	RedisPort string `envconfig:"REDIS_PORT" required:"true"`
	RedisPass string `envconfig:"REDIS_PASS" required:"true"`

	// 二要素認証API設定
	APIURL    string `envconfig:"MFA_API_URL" required:"true"`
	APIKey    string `envconfig:"MFA_API_KEY" required:"true"`
	APISecret string `envconfig:"MFA_API_SECRET" required:"true"`
	APIProxy  string `envconfig:"MFA_API_PROXY"`

	// RADIUS設定
	RadiusSecret string `envconfig:"RADIUS_SECRET"`
	ListenAddr   string `envconfig:"LISTEN_ADDR" default:":1812"`

	// 第一要素認証設定
	FirstFactorSource string `envconfig:"FIRST_FACTOR_SOURCE" default:"none"`
	RadiusProxyTarget string `envconfig:"RADIUS_PROXY_TARGET"`

	// ディレクトリ設定
	LdapURL          string `envconfig:"LDAP_URL"`
	LdapBaseDN       string `envconfig:"LDAP_BASE_DN"`
	LdapBindDN       string `envconfig:"LDAP_BIND_DN"`
	LdapBindPassword string `envconfig:"LDAP_BIND_PASSWORD"`

	// 認可ポリシー設定
	DirectoryGroup          string `envconfig:"DIRECTORY_GROUP"`
	SecondFactorBypassGroup string `envconfig:"SECOND_FACTOR_BYPASS_GROUP"`
	CheckMembership         bool   `envconfig:"CHECK_MEMBERSHIP" default:"false"`

	// 二要素認証ポリシー設定
	UseUpnAsIdentity      bool   `envconfig:"USE_UPN_AS_IDENTITY" default:"false"`
	PrivacyModeSetting    string `envconfig:"PRIVACY_MODE" default:"none"`
	BypassPeriodMinutes   int    `envconfig:"BYPASS_PERIOD_MINUTES" default:"0"`
	BypassWhenUnreachable bool   `envconfig:"BYPASS_WHEN_API_UNREACHABLE" default:"false"`
	SignUpGroups          string `envconfig:"SIGNUP_GROUPS"`

	// ログ設定
	LogMaskUserName bool `envconfig:"LOG_MASK_USERNAME" default:"true"`
}

// Load は環境変数から設定を読み込む
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// ValkeyAddr はValkey接続アドレスを "host:port" 形式で返す
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// validate は設定値のバリデーションを行う
func (c *Config) validate() error {
	source, err := ParseAuthSource(c.FirstFactorSource)
	if err != nil {
		return err
	}
	if source == SourceDirectory && c.LdapURL == "" {
		return fmt.Errorf("LDAP_URL is required when FIRST_FACTOR_SOURCE is %q", SourceDirectory)
	}
	if source == SourceRadius && c.RadiusProxyTarget == "" {
		return fmt.Errorf("RADIUS_PROXY_TARGET is required when FIRST_FACTOR_SOURCE is %q", SourceRadius)
	}
	if c.CheckMembership && c.DirectoryGroup == "" {
		return fmt.Errorf("DIRECTORY_GROUP is required when CHECK_MEMBERSHIP is enabled")
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("MFA_API_URL must start with http:// or https://")
	}
	if _, err := ParsePrivacyMode(c.PrivacyModeSetting); err != nil {
		return err
	}
	if c.BypassPeriodMinutes < 0 {
		return fmt.Errorf("BYPASS_PERIOD_MINUTES must not be negative")
	}
	return nil
}

// DefaultClient は環境変数の既定値からクライアント（テナント）設定を構築する。
// Valkeyに送信元NAS個別の設定が登録されている場合はClientStoreが上書きする。
func (c *Config) DefaultClient() *ClientConfig {
	source, _ := ParseAuthSource(c.FirstFactorSource)
	privacy, _ := ParsePrivacyMode(c.PrivacyModeSetting)
	return &ClientConfig{
		Name:                    "default",
		Secret:                  c.RadiusSecret,
		FirstFactorSource:       source,
		RadiusProxyTarget:       c.RadiusProxyTarget,
		DirectoryGroup:          c.DirectoryGroup,
		SecondFactorBypassGroup: c.SecondFactorBypassGroup,
		CheckMembership:         c.CheckMembership,
		UseUpnAsIdentity:        c.UseUpnAsIdentity,
		Privacy:                 privacy,
		APIKey:                  c.APIKey,
		APISecret:               c.APISecret,
		BypassPeriod:            time.Duration(c.BypassPeriodMinutes) * time.Minute,
		BypassWhenUnreachable:   c.BypassWhenUnreachable,
		SignUpGroups:            c.SignUpGroups,
	}
}
