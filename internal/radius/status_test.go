package radius

import (
	"crypto/hmac"
	"crypto/md5"
	"strings"
	"testing"
	"time"

	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
	"layeh.com/radius/rfc2869"
)

// setValidMessageAuthenticator はリクエストパケットに正しいMessage-Authenticatorを設定する
func setValidMessageAuthenticator(p *radius.Packet, secret []byte) {
	zeroMA := make([]byte, 16)
	_ = rfc2869.MessageAuthenticator_Set(p, zeroMA)
	data, _ := p.MarshalBinary()
	mac := hmac.New(md5.New, secret)
	mac.Write(data)
	_ = rfc2869.MessageAuthenticator_Set(p, mac.Sum(nil))
}

func TestHandleStatusServer_Success(t *testing.T) {
	secret := []byte("status-secret")
	req := radius.New(radius.CodeStatusServer, secret)
	setValidMessageAuthenticator(req, secret)

	startedAt := time.Now().Add(-25 * time.Hour)
	resp := HandleStatusServer(req, secret, startedAt, "192.168.1.1", "trace-001")

	if resp == nil {
		t.Fatal("HandleStatusServer returned nil for valid request")
	}
	if resp.Code != radius.CodeAccessAccept {
		t.Errorf("Code = %d, want %d", resp.Code, radius.CodeAccessAccept)
	}

	msg := rfc2865.ReplyMessage_GetString(resp)
	if !strings.HasPrefix(msg, "Server up 1 days") {
		t.Errorf("Reply-Message = %q, want prefix %q", msg, "Server up 1 days")
	}

	// Message-Authenticator存在確認
	if _, err := rfc2869.MessageAuthenticator_Lookup(resp); err != nil {
		t.Error("Message-Authenticator not found in response")
	}
}

func TestHandleStatusServer_InvalidAuth(t *testing.T) {
	secret := []byte("status-secret")
	req := radius.New(radius.CodeStatusServer, secret)

	// 不正なMessage-Authenticatorを設定
	invalidMA := make([]byte, 16)
	invalidMA[0] = 0xFF
	_ = rfc2869.MessageAuthenticator_Set(req, invalidMA)

	resp := HandleStatusServer(req, secret, time.Now(), "192.168.1.1", "trace-002")
	if resp != nil {
		t.Error("HandleStatusServer should return nil for invalid Message-Authenticator")
	}
}

func TestUptimeMessage(t *testing.T) {
	startedAt := time.Now().Add(-(48*time.Hour + 3*time.Hour + 25*time.Minute + 10*time.Second))
	msg := UptimeMessage(startedAt)
	if !strings.HasPrefix(msg, "Server up 2 days 03:25:") {
		t.Errorf("UptimeMessage = %q, want prefix %q", msg, "Server up 2 days 03:25:")
	}
}
