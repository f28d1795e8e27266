// Package session は処理中リクエストのモデルと、チャレンジ継続・
// 二要素バイパスのための共有キャッシュを提供する。
package session

import (
	"net"

	"layeh.com/radius"
)

// PendingRequest は処理中の1つのRADIUS交換を表す。
// リクエスト到着時に生成され、1回のルーター呼び出し内で同期的に消費される。
// チャレンジフローでは、Stateトークンを介して2回目の呼び出しへ
// スナップショットが引き継がれる。
type PendingRequest struct {
	// Packet は受信したAccess-Requestパケット（不変）
	Packet *radius.Packet
	// RemoteAddr は送信元NASのアドレス
	RemoteAddr net.Addr
	// TraceID はリクエスト単位の相関ID
	TraceID string

	// ResponseCode / ResponsePacket はルーターが確定する応答。
	// ResponsePacketはプロキシ認証時のみ設定され、認可属性の引き継ぎ元となる。
	ResponseCode   radius.Code
	ResponsePacket *radius.Packet

	// 第一要素処理で解決されるユーザー属性
	UserName    string
	DisplayName string
	Email       string
	Phone       string
	Upn         string
	UserGroups  []string

	// MustChangePassword は第一要素処理がパスワード変更要求を検出した場合に立つ
	MustChangePassword bool
	// Bypass2FA は第一要素処理が二要素免除ポリシーに合致した場合に立つ
	Bypass2FA bool

	// State はAccess-Challenge発行時に割り当てられる相関トークン
	State string
	// ReplyMessage は応答パケットに付与するユーザー向けメッセージ
	ReplyMessage string
}

// RemoteHost は送信元アドレスのホスト部を返す
func (r *PendingRequest) RemoteHost() string {
	if r.RemoteAddr == nil {
		return ""
	}
	if udpAddr, ok := r.RemoteAddr.(*net.UDPAddr); ok {
		return udpAddr.IP.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr.String())
	if err != nil {
		return r.RemoteAddr.String()
	}
	return host
}
