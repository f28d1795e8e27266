package auth

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/oyaguma3/mfa-radius-gateway/internal/config"
	"github.com/oyaguma3/mfa-radius-gateway/internal/directory"
	"github.com/oyaguma3/mfa-radius-gateway/internal/mocks"
	"github.com/oyaguma3/mfa-radius-gateway/internal/session"
	"go.uber.org/mock/gomock"
	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
)

func newPapRequest(t *testing.T, userName, password string) *session.PendingRequest {
	t.Helper()
	packet := radius.New(radius.CodeAccessRequest, []byte("secret"))
	if userName != "" {
		rfc2865.UserName_SetString(packet, userName)
	}
	if password != "" {
		rfc2865.UserPassword_SetString(packet, password)
	}
	return &session.PendingRequest{
		Packet:     packet,
		RemoteAddr: &net.UDPAddr{IP: net.IPv4(192, 0, 2, 10), Port: 1812},
		TraceID:    "trace-ff",
		UserName:   userName,
	}
}

func testConfig() *config.Config {
	return &config.Config{LogMaskUserName: true}
}

func TestDirectoryProvider_認証成功(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verifier := mocks.NewMockCredentialVerifier(ctrl)
	verifier.EXPECT().VerifyCredential(gomock.Any(), "j.smith", "password1").
		Return(&directory.Profile{
			DisplayName: "John Smith",
			Email:       "j.smith@example.com",
			Upn:         "j.smith@corp.example.com",
			Groups:      []string{"VPN Users"},
		}, nil)

	p := NewDirectoryProvider(verifier, testConfig())
	req := newPapRequest(t, "j.smith", "password1")

	code := p.Authenticate(context.Background(), req, &config.ClientConfig{})
	if code != radius.CodeAccessAccept {
		t.Fatalf("code: got %v, want Access-Accept", code)
	}
	if req.DisplayName != "John Smith" || req.Upn != "j.smith@corp.example.com" {
		t.Errorf("プロファイルが未設定: %+v", req)
	}
	if len(req.UserGroups) != 1 {
		t.Errorf("UserGroups: got %v", req.UserGroups)
	}
}

func TestDirectoryProvider_資格情報欠落はバックエンドを呼ばない(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// EXPECTなし: 呼ばれたらctrl.Finishで失敗する
	verifier := mocks.NewMockCredentialVerifier(ctrl)
	p := NewDirectoryProvider(verifier, testConfig())

	tests := []struct {
		name     string
		userName string
		password string
	}{
		{"ユーザー名なし", "", "password1"},
		{"パスワードなし", "j.smith", ""},
		{"両方なし", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newPapRequest(t, tt.userName, tt.password)
			if code := p.Authenticate(context.Background(), req, &config.ClientConfig{}); code != radius.CodeAccessReject {
				t.Errorf("code: got %v, want Access-Reject", code)
			}
		})
	}
}

func TestDirectoryProvider_認証失敗(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verifier := mocks.NewMockCredentialVerifier(ctrl)
	verifier.EXPECT().VerifyCredential(gomock.Any(), "j.smith", "wrong").
		Return(nil, directory.ErrInvalidCredentials)

	p := NewDirectoryProvider(verifier, testConfig())
	req := newPapRequest(t, "j.smith", "wrong")

	if code := p.Authenticate(context.Background(), req, &config.ClientConfig{}); code != radius.CodeAccessReject {
		t.Errorf("code: got %v, want Access-Reject", code)
	}
	if req.MustChangePassword {
		t.Error("MustChangePasswordが不正に設定されている")
	}
}

func TestDirectoryProvider_パスワード期限切れ(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verifier := mocks.NewMockCredentialVerifier(ctrl)
	verifier.EXPECT().VerifyCredential(gomock.Any(), "j.smith", "expired").
		Return(nil, directory.ErrPasswordExpired)

	p := NewDirectoryProvider(verifier, testConfig())
	req := newPapRequest(t, "j.smith", "expired")

	if code := p.Authenticate(context.Background(), req, &config.ClientConfig{}); code != radius.CodeAccessReject {
		t.Errorf("code: got %v, want Access-Reject", code)
	}
	if !req.MustChangePassword {
		t.Error("MustChangePasswordが設定されていない")
	}
}

func TestDirectoryProvider_グループ所属確認(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verifier := mocks.NewMockCredentialVerifier(ctrl)
	verifier.EXPECT().VerifyCredential(gomock.Any(), "j.smith", "password1").
		Return(&directory.Profile{Groups: []string{"Staff"}}, nil)

	p := NewDirectoryProvider(verifier, testConfig())
	req := newPapRequest(t, "j.smith", "password1")
	cc := &config.ClientConfig{CheckMembership: true, DirectoryGroup: "VPN Users"}

	if code := p.Authenticate(context.Background(), req, cc); code != radius.CodeAccessReject {
		t.Errorf("code: got %v, want Access-Reject (group denied)", code)
	}
}

func TestDirectoryProvider_二要素免除グループ(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verifier := mocks.NewMockCredentialVerifier(ctrl)
	verifier.EXPECT().VerifyCredential(gomock.Any(), "j.smith", "password1").
		Return(&directory.Profile{Groups: []string{"MFA Exempt"}}, nil)

	p := NewDirectoryProvider(verifier, testConfig())
	req := newPapRequest(t, "j.smith", "password1")
	cc := &config.ClientConfig{SecondFactorBypassGroup: "MFA Exempt"}

	if code := p.Authenticate(context.Background(), req, cc); code != radius.CodeAccessAccept {
		t.Fatalf("code: got %v, want Access-Accept", code)
	}
	if !req.Bypass2FA {
		t.Error("Bypass2FAが設定されていない")
	}
}

func TestProxyProvider_Accept引き継ぎ(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := newPapRequest(t, "j.smith", "password1")
	upstream := req.Packet.Response(radius.CodeAccessAccept)

	client := mocks.NewMockProxyClient(ctrl)
	client.EXPECT().Exchange(gomock.Any(), req.Packet, "10.0.0.5:1812").
		Return(upstream, nil)

	p := NewProxyProvider(client, nil, testConfig())
	cc := &config.ClientConfig{RadiusProxyTarget: "10.0.0.5:1812"}

	if code := p.Authenticate(context.Background(), req, cc); code != radius.CodeAccessAccept {
		t.Fatalf("code: got %v, want Access-Accept", code)
	}
	if req.ResponsePacket != upstream {
		t.Error("ResponsePacketに上流応答が保持されていない")
	}
}

func TestProxyProvider_非Acceptはそのまま返す(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := newPapRequest(t, "j.smith", "wrong")
	upstream := req.Packet.Response(radius.CodeAccessReject)

	client := mocks.NewMockProxyClient(ctrl)
	client.EXPECT().Exchange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(upstream, nil)

	p := NewProxyProvider(client, nil, testConfig())
	cc := &config.ClientConfig{RadiusProxyTarget: "10.0.0.5:1812"}

	if code := p.Authenticate(context.Background(), req, cc); code != radius.CodeAccessReject {
		t.Errorf("code: got %v, want Access-Reject", code)
	}
	if req.ResponsePacket != nil {
		t.Error("非Accept応答はResponsePacketに保持しない")
	}
}

func TestProxyProvider_転送失敗はフェイルクローズ(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockProxyClient(ctrl)
	client.EXPECT().Exchange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("timeout"))

	p := NewProxyProvider(client, nil, testConfig())
	req := newPapRequest(t, "j.smith", "password1")
	cc := &config.ClientConfig{RadiusProxyTarget: "10.0.0.5:1812"}

	if code := p.Authenticate(context.Background(), req, cc); code != radius.CodeAccessReject {
		t.Errorf("code: got %v, want Access-Reject", code)
	}
}

func TestProxyProvider_Accept後のグループ所属確認(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := newPapRequest(t, "j.smith", "password1")
	upstream := req.Packet.Response(radius.CodeAccessAccept)

	client := mocks.NewMockProxyClient(ctrl)
	client.EXPECT().Exchange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(upstream, nil)

	verifier := mocks.NewMockCredentialVerifier(ctrl)
	verifier.EXPECT().VerifyMembership(gomock.Any(), "j.smith", "VPN Users").
		Return(false, nil)

	p := NewProxyProvider(client, verifier, testConfig())
	cc := &config.ClientConfig{
		RadiusProxyTarget: "10.0.0.5:1812",
		CheckMembership:   true,
		DirectoryGroup:    "VPN Users",
	}

	if code := p.Authenticate(context.Background(), req, cc); code != radius.CodeAccessReject {
		t.Errorf("code: got %v, want Access-Reject (group denied)", code)
	}
}

func TestNoneProvider_無条件通過(t *testing.T) {
	p := NewNoneProvider(nil, testConfig())
	req := newPapRequest(t, "j.smith", "123456")

	if code := p.Authenticate(context.Background(), req, &config.ClientConfig{}); code != radius.CodeAccessAccept {
		t.Errorf("code: got %v, want Access-Accept", code)
	}
}

func TestNoneProvider_グループ所属確認と免除照会(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verifier := mocks.NewMockCredentialVerifier(ctrl)
	verifier.EXPECT().VerifyMembership(gomock.Any(), "j.smith", "VPN Users").
		Return(true, nil)
	verifier.EXPECT().VerifyMembership(gomock.Any(), "j.smith", "MFA Exempt").
		Return(true, nil)

	p := NewNoneProvider(verifier, testConfig())
	req := newPapRequest(t, "j.smith", "123456")
	cc := &config.ClientConfig{
		CheckMembership:         true,
		DirectoryGroup:          "VPN Users",
		SecondFactorBypassGroup: "MFA Exempt",
	}

	if code := p.Authenticate(context.Background(), req, cc); code != radius.CodeAccessAccept {
		t.Fatalf("code: got %v, want Access-Accept", code)
	}
	if !req.Bypass2FA {
		t.Error("Bypass2FAが設定されていない")
	}
}

func TestNoneProvider_ディレクトリ未設定で所属確認(t *testing.T) {
	p := NewNoneProvider(nil, testConfig())
	req := newPapRequest(t, "j.smith", "123456")
	cc := &config.ClientConfig{CheckMembership: true, DirectoryGroup: "VPN Users"}

	if code := p.Authenticate(context.Background(), req, cc); code != radius.CodeAccessReject {
		t.Errorf("code: got %v, want Access-Reject", code)
	}
}
