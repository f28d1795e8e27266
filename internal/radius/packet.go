// Package radius はRADIUSパケットの属性操作と応答生成を提供する。
package radius

import (
	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
	"layeh.com/radius/vendors/microsoft"
)

// AuthType はAccess-Requestの認証方式を表す
type AuthType int

// 認証方式
const (
	AuthTypeUnknown AuthType = iota
	AuthTypePAP              // User-Password属性
	AuthTypeMSCHAP2          // MS-CHAP2-Response属性
)

// mschap2OTPOffset / mschap2OTPLength はMS-CHAP2-Response内のOTP位置。
// 一部のVPNクライアントはOTPをMS-CHAP2-ResponseのPeer-Challenge先頭6バイトに
// ASCIIで格納して送信する（非標準の相互運用措置）。
const (
	mschap2OTPOffset = 2
	mschap2OTPLength = 6
)

// GetUserName はUser-Name属性を取得する。
// 属性が存在しない場合は("", false)を返す。
func GetUserName(p *radius.Packet) (string, bool) {
	val := rfc2865.UserName_GetString(p)
	if val == "" {
		return "", false
	}
	return val, true
}

// GetUserPassword はUser-Password属性を復号して取得する。
// 属性が存在しない・復号できない場合は("", false)を返す。
func GetUserPassword(p *radius.Packet) (string, bool) {
	val, err := rfc2865.UserPassword_LookupString(p)
	if err != nil || val == "" {
		return "", false
	}
	return val, true
}

// GetState はState属性を文字列として取得する。
// 属性が存在しない場合は("", false)を返す。
func GetState(p *radius.Packet) (string, bool) {
	state := rfc2865.State_Get(p)
	if len(state) == 0 {
		return "", false
	}
	return string(state), true
}

// SetState はState属性を設定する。
func SetState(p *radius.Packet, state string) {
	_ = rfc2865.State_SetString(p, state)
}

// TypeStaticChallenge は事前共有のチャレンジ値を運ぶ実装固有属性。
// RFC 3575が実装固有用途に予約する224-240の範囲から採番している。
const TypeStaticChallenge radius.Type = 224

// GetStaticChallenge は実装固有属性に添付されたチャレンジ値を取得する。
// 属性が存在しない場合は空文字列を返す。
func GetStaticChallenge(p *radius.Packet) string {
	attr, ok := p.Attributes.Lookup(TypeStaticChallenge)
	if !ok {
		return ""
	}
	return string(attr)
}

// SetStaticChallenge は実装固有属性にチャレンジ値を設定する。
func SetStaticChallenge(p *radius.Packet, challenge string) {
	p.Attributes.Set(TypeStaticChallenge, radius.Attribute(challenge))
}

// GetCallingStationID はCalling-Station-Id属性を取得する。
func GetCallingStationID(p *radius.Packet) string {
	return rfc2865.CallingStationID_GetString(p)
}

// GetCalledStationID はCalled-Station-Id属性を取得する。
func GetCalledStationID(p *radius.Packet) string {
	return rfc2865.CalledStationID_GetString(p)
}

// DetectAuthType はAccess-Requestの認証方式を判定する。
func DetectAuthType(p *radius.Packet) AuthType {
	if _, err := microsoft.MSCHAP2Response_Lookup(p); err == nil {
		return AuthTypeMSCHAP2
	}
	if rfc2865.UserPassword_Get(p) != nil {
		return AuthTypePAP
	}
	return AuthTypeUnknown
}

// GetMSCHAP2OTP はMS-CHAP2-Response属性からOTP文字列を抽出する。
// 固定オフセットの6バイトをASCIIとして解釈する。
// 属性が存在しない・長さが不足する場合は("", false)を返す。
func GetMSCHAP2OTP(p *radius.Packet) (string, bool) {
	resp, err := microsoft.MSCHAP2Response_Lookup(p)
	if err != nil {
		return "", false
	}
	if len(resp) < mschap2OTPOffset+mschap2OTPLength {
		return "", false
	}
	return string(resp[mschap2OTPOffset : mschap2OTPOffset+mschap2OTPLength]), true
}
