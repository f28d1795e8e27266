package radius

import (
	"fmt"
	"log/slog"
	"time"

	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
)

// HandleStatusServer はStatus-Server(Code=12)を処理し、Access-Accept応答を返す。
// RFC 5997準拠のヘルスチェック応答。稼働時間をReply-Messageに格納する。
// Message-Authenticator検証失敗時はnilを返す（応答なし）。
func HandleStatusServer(request *radius.Packet, secret []byte, startedAt time.Time, srcIP, traceID string) *radius.Packet {
	// 1. Message-Authenticator検証（RFC 5997ではMessage-Authenticator必須）
	if !VerifyMessageAuthenticator(request, secret) {
		slog.Warn("Status-Server: Message-Authenticator検証失敗",
			"event_id", "RADIUS_STATUS_AUTH_FAIL",
			"trace_id", traceID,
			"src_ip", srcIP,
		)
		return nil
	}

	// 2. Access-Accept応答を作成（稼働時間つき）
	resp := request.Response(radius.CodeAccessAccept)
	_ = rfc2865.ReplyMessage_SetString(resp, UptimeMessage(startedAt))

	// 3. Proxy-Stateコピー
	ExtractProxyStates(request).Apply(resp)

	// 4. Message-Authenticator生成
	SetMessageAuthenticator(resp, secret, request.Authenticator)

	slog.Info("Status-Server: 応答送信",
		"event_id", "RADIUS_STATUS_OK",
		"trace_id", traceID,
		"src_ip", srcIP,
	)

	return resp
}

// UptimeMessage は起動時刻からの稼働時間を "Server up N days hh:mm:ss" 形式で返す
func UptimeMessage(startedAt time.Time) string {
	uptime := time.Since(startedAt)
	days := int(uptime.Hours()) / 24
	rem := uptime - time.Duration(days)*24*time.Hour
	hours := int(rem.Hours())
	minutes := int(rem.Minutes()) % 60
	seconds := int(rem.Seconds()) % 60
	return fmt.Sprintf("Server up %d days %02d:%02d:%02d", days, hours, minutes, seconds)
}
