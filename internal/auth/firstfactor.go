package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oyaguma3/mfa-radius-gateway/internal/config"
	"github.com/oyaguma3/mfa-radius-gateway/internal/directory"
	"github.com/oyaguma3/mfa-radius-gateway/internal/logging"
	"github.com/oyaguma3/mfa-radius-gateway/internal/proxy"
	radiusutil "github.com/oyaguma3/mfa-radius-gateway/internal/radius"
	"github.com/oyaguma3/mfa-radius-gateway/internal/session"
	"layeh.com/radius"
)

// DirectoryProvider はディレクトリバインドによる第一要素認証を行う。
// 内蔵ディレクトリ構成でも検証器の差し替えのみで同じ流れを使う。
type DirectoryProvider struct {
	verifier     directory.CredentialVerifier
	maskUserName bool
}

// NewDirectoryProvider は新しいDirectoryProviderを生成する
func NewDirectoryProvider(verifier directory.CredentialVerifier, cfg *config.Config) *DirectoryProvider {
	return &DirectoryProvider{verifier: verifier, maskUserName: cfg.LogMaskUserName}
}

// Authenticate は資格情報を検証し、プロファイルと認可ポリシーを適用する。
// ユーザー名またはパスワードが欠落している場合はバックエンドを呼ばずにRejectする。
func (p *DirectoryProvider) Authenticate(ctx context.Context, req *session.PendingRequest, cc *config.ClientConfig) radius.Code {
	password, _ := radiusutil.GetUserPassword(req.Packet)
	if req.UserName == "" || password == "" {
		slog.Warn("資格情報が欠落",
			"event_id", "FF_CRED_MISSING",
			"trace_id", req.TraceID,
			"user_name", logging.MaskUserName(req.UserName, p.maskUserName),
		)
		return radius.CodeAccessReject
	}

	profile, err := p.verifier.VerifyCredential(ctx, req.UserName, password)
	if err != nil {
		return p.failureCode(req, err)
	}

	req.DisplayName = profile.DisplayName
	req.Email = profile.Email
	req.Phone = profile.Phone
	req.Upn = profile.Upn
	req.UserGroups = profile.Groups

	if cc.CheckMembership && !profile.HasGroup(cc.DirectoryGroup) {
		slog.Info("アクセスグループ非所属のため拒否",
			"event_id", "FF_GROUP_DENIED",
			"trace_id", req.TraceID,
			"user_name", logging.MaskUserName(req.UserName, p.maskUserName),
			"group", cc.DirectoryGroup,
		)
		return radius.CodeAccessReject
	}

	if cc.SecondFactorBypassGroup != "" && profile.HasGroup(cc.SecondFactorBypassGroup) {
		req.Bypass2FA = true
	}

	slog.Info("第一要素認証成功",
		"event_id", "FF_OK",
		"trace_id", req.TraceID,
		"user_name", logging.MaskUserName(req.UserName, p.maskUserName),
	)
	return radius.CodeAccessAccept
}

// failureCode は資格情報検証エラーを応答コードへ対応付ける
func (p *DirectoryProvider) failureCode(req *session.PendingRequest, err error) radius.Code {
	switch {
	case errors.Is(err, directory.ErrPasswordExpired):
		req.MustChangePassword = true
		return radius.CodeAccessReject

	case errors.Is(err, directory.ErrInvalidCredentials),
		errors.Is(err, directory.ErrUserNotFound),
		errors.Is(err, directory.ErrAccountLocked),
		errors.Is(err, directory.ErrAccountDisabled):
		slog.Info("第一要素認証失敗",
			"event_id", "FF_NG",
			"trace_id", req.TraceID,
			"user_name", logging.MaskUserName(req.UserName, p.maskUserName),
			"reason", err.Error(),
		)
		return radius.CodeAccessReject
	}

	slog.Error("ディレクトリ連携エラー",
		"event_id", "FF_DIR_ERR",
		"trace_id", req.TraceID,
		"user_name", logging.MaskUserName(req.UserName, p.maskUserName),
		"error", err.Error(),
	)
	return radius.CodeAccessReject
}

// ProxyProvider はリモートRADIUSサーバーへの委譲による第一要素認証を行う
type ProxyProvider struct {
	client       proxy.Client
	verifier     directory.CredentialVerifier
	maskUserName bool
}

// NewProxyProvider は新しいProxyProviderを生成する。
// verifierはCheckMembership有効時のグループ照会に使う（nil可）。
func NewProxyProvider(client proxy.Client, verifier directory.CredentialVerifier, cfg *config.Config) *ProxyProvider {
	return &ProxyProvider{client: client, verifier: verifier, maskUserName: cfg.LogMaskUserName}
}

// Authenticate はパケットを転送先へ委譲し、応答コードをそのまま採用する。
// 転送失敗時はフェイルクローズ（Reject）とする。
func (p *ProxyProvider) Authenticate(ctx context.Context, req *session.PendingRequest, cc *config.ClientConfig) radius.Code {
	response, err := p.client.Exchange(ctx, req.Packet, cc.RadiusProxyTarget)
	if err != nil {
		slog.Error("リモートRADIUS転送失敗",
			"event_id", "FF_PROXY_FAIL",
			"trace_id", req.TraceID,
			"target", cc.RadiusProxyTarget,
			"error", err.Error(),
		)
		return radius.CodeAccessReject
	}

	if response.Code != radius.CodeAccessAccept {
		slog.Info("リモートRADIUSが非Accept応答",
			"event_id", "FF_PROXY_NG",
			"trace_id", req.TraceID,
			"code", response.Code,
		)
		return response.Code
	}

	// Accept時は認可属性の引き継ぎ元として応答パケットを保持する
	req.ResponsePacket = response

	if cc.CheckMembership {
		return checkMembership(ctx, req, cc, p.verifier, p.maskUserName)
	}
	return radius.CodeAccessAccept
}

// NoneProvider は第一要素認証を行わない構成向けの実装。
// CheckMembership有効時のみディレクトリのグループ照会を行う。
type NoneProvider struct {
	verifier     directory.CredentialVerifier
	maskUserName bool
}

// NewNoneProvider は新しいNoneProviderを生成する
func NewNoneProvider(verifier directory.CredentialVerifier, cfg *config.Config) *NoneProvider {
	return &NoneProvider{verifier: verifier, maskUserName: cfg.LogMaskUserName}
}

// Authenticate は資格情報を検証せずに通過させる
func (p *NoneProvider) Authenticate(ctx context.Context, req *session.PendingRequest, cc *config.ClientConfig) radius.Code {
	if cc.CheckMembership {
		return checkMembership(ctx, req, cc, p.verifier, p.maskUserName)
	}
	return radius.CodeAccessAccept
}

// checkMembership はディレクトリ照会によるグループ所属確認を行う。
// バイパスグループの所属もあわせて照会する。
func checkMembership(ctx context.Context, req *session.PendingRequest, cc *config.ClientConfig, verifier directory.CredentialVerifier, mask bool) radius.Code {
	if req.UserName == "" {
		slog.Warn("グループ所属確認にユーザー名が必要",
			"event_id", "FF_GROUP_NO_USER",
			"trace_id", req.TraceID,
		)
		return radius.CodeAccessReject
	}
	if verifier == nil {
		slog.Error("グループ所属確認用のディレクトリが未設定",
			"event_id", "FF_GROUP_NO_DIR",
			"trace_id", req.TraceID,
		)
		return radius.CodeAccessReject
	}

	ok, err := verifier.VerifyMembership(ctx, req.UserName, cc.DirectoryGroup)
	if err != nil {
		slog.Error("グループ所属確認エラー",
			"event_id", "FF_GROUP_ERR",
			"trace_id", req.TraceID,
			"user_name", logging.MaskUserName(req.UserName, mask),
			"error", err.Error(),
		)
		return radius.CodeAccessReject
	}
	if !ok {
		slog.Info("アクセスグループ非所属のため拒否",
			"event_id", "FF_GROUP_DENIED",
			"trace_id", req.TraceID,
			"user_name", logging.MaskUserName(req.UserName, mask),
			"group", cc.DirectoryGroup,
		)
		return radius.CodeAccessReject
	}

	if cc.SecondFactorBypassGroup != "" {
		bypass, err := verifier.VerifyMembership(ctx, req.UserName, cc.SecondFactorBypassGroup)
		if err == nil && bypass {
			req.Bypass2FA = true
		}
	}
	return radius.CodeAccessAccept
}
