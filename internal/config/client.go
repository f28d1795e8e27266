package config

import (
	"fmt"
	"strings"
	"time"
)

// PrivacyKind は二要素認証APIへ送信する個人情報の秘匿方式を表す
type PrivacyKind int

// 秘匿方式
const (
	PrivacyNone    PrivacyKind = iota // 全フィールド送信
	PrivacyPartial                    // 指定フィールドのみ送信
	PrivacyFull                       // 識別子以外すべて秘匿
)

// 部分秘匿で指定可能なフィールド名
const (
	PrivacyFieldName       = "Name"
	PrivacyFieldEmail      = "Email"
	PrivacyFieldPhone      = "Phone"
	PrivacyFieldRemoteHost = "RemoteHost"
)

// PrivacyMode は秘匿方式と部分秘匿時の許可フィールドを保持する
type PrivacyMode struct {
	Kind   PrivacyKind
	fields map[string]struct{}
}

// ParsePrivacyMode は "none" / "full" / "partial:Name,Email" 形式の設定値を解析する
func ParsePrivacyMode(s string) (PrivacyMode, error) {
	value := strings.TrimSpace(s)
	mode, fieldList, _ := strings.Cut(value, ":")

	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "none":
		return PrivacyMode{Kind: PrivacyNone}, nil
	case "full":
		return PrivacyMode{Kind: PrivacyFull}, nil
	case "partial":
		fields := make(map[string]struct{})
		for _, f := range strings.Split(fieldList, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			fields[strings.ToLower(f)] = struct{}{}
		}
		return PrivacyMode{Kind: PrivacyPartial, fields: fields}, nil
	}
	return PrivacyMode{}, fmt.Errorf("unknown privacy mode: %q", s)
}

// HasField は部分秘匿時に指定フィールドの送信が許可されているかを返す
func (m PrivacyMode) HasField(name string) bool {
	_, ok := m.fields[strings.ToLower(name)]
	return ok
}

// ClientConfig はRADIUSクライアント（テナント）単位の設定を保持する。
// 環境変数の既定値をベースに、Valkey登録値がNAS単位で上書きする。
type ClientConfig struct {
	Name   string
	Secret string

	FirstFactorSource AuthSource
	RadiusProxyTarget string

	DirectoryGroup          string
	SecondFactorBypassGroup string
	CheckMembership         bool

	UseUpnAsIdentity bool
	Privacy          PrivacyMode

	APIKey    string
	APISecret string

	BypassPeriod          time.Duration
	BypassWhenUnreachable bool
	SignUpGroups          string
}
