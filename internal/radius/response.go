package radius

import (
	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
	"layeh.com/radius/rfc2869"
)

// AcceptParams はAccess-Accept生成に必要なパラメータ
type AcceptParams struct {
	// ReplyMessage はユーザー向けメッセージ（空文字なら設定しない）
	ReplyMessage string
	// Authorization はプロキシ先サーバーの応答パケット（nilなら属性コピーなし）。
	// Framed-IP-Address等の認可属性を最終応答へ引き継ぐ。
	Authorization *radius.Packet
	// ProxyStates はリクエストから抽出されたProxy-State属性
	ProxyStates *ProxyStates
}

// ChallengeParams はAccess-Challenge生成に必要なパラメータ
type ChallengeParams struct {
	// State は継続リクエストを紐付ける相関トークン
	State string
	// ReplyMessage はユーザーへの入力要求メッセージ
	ReplyMessage string
	// ProxyStates はリクエストから抽出されたProxy-State属性
	ProxyStates *ProxyStates
}

// RejectParams はAccess-Reject生成に必要なパラメータ
type RejectParams struct {
	// ReplyMessage は拒否理由メッセージ（空文字なら設定しない）
	ReplyMessage string
	// ProxyStates はリクエストから抽出されたProxy-State属性
	ProxyStates *ProxyStates
}

// BuildAccessAccept はAccess-Acceptパケットを構築する。
func BuildAccessAccept(request *radius.Packet, secret []byte, params *AcceptParams) *radius.Packet {
	resp := request.Response(radius.CodeAccessAccept)

	if params.Authorization != nil {
		copyAuthorizationAttributes(params.Authorization, resp)
	}

	if params.ReplyMessage != "" {
		_ = rfc2865.ReplyMessage_SetString(resp, params.ReplyMessage)
	}

	// Proxy-State
	params.ProxyStates.Apply(resp)

	// Message-Authenticator
	SetMessageAuthenticator(resp, secret, request.Authenticator)

	return resp
}

// BuildAccessChallenge はAccess-Challengeパケットを構築する。
// State属性が継続リクエストのトークンとしてそのまま折り返される。
func BuildAccessChallenge(request *radius.Packet, secret []byte, params *ChallengeParams) *radius.Packet {
	resp := request.Response(radius.CodeAccessChallenge)

	if params.State != "" {
		SetState(resp, params.State)
	}

	if params.ReplyMessage != "" {
		_ = rfc2865.ReplyMessage_SetString(resp, params.ReplyMessage)
	}

	// Proxy-State
	params.ProxyStates.Apply(resp)

	// Message-Authenticator
	SetMessageAuthenticator(resp, secret, request.Authenticator)

	return resp
}

// BuildAccessReject はAccess-Rejectパケットを構築する。
func BuildAccessReject(request *radius.Packet, secret []byte, params *RejectParams) *radius.Packet {
	resp := request.Response(radius.CodeAccessReject)

	if params.ReplyMessage != "" {
		_ = rfc2865.ReplyMessage_SetString(resp, params.ReplyMessage)
	}

	// Proxy-State
	params.ProxyStates.Apply(resp)

	// Message-Authenticator
	SetMessageAuthenticator(resp, secret, request.Authenticator)

	return resp
}

// copyAuthorizationAttributes はプロキシ先応答の認可属性をdstへコピーする。
// ゲートウェイ自身が設定する属性（Proxy-State / Message-Authenticator /
// Reply-Message / State）は対象外。
func copyAuthorizationAttributes(src, dst *radius.Packet) {
	for _, avp := range src.Attributes {
		switch avp.Type {
		case rfc2865.ProxyState_Type,
			rfc2865.ReplyMessage_Type,
			rfc2865.State_Type,
			rfc2869.MessageAuthenticator_Type:
			continue
		}
		dst.Add(avp.Type, avp.Attribute)
	}
}
