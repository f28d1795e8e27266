package mfa

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/oyaguma3/mfa-radius-gateway/internal/config"
	"github.com/oyaguma3/mfa-radius-gateway/internal/logging"
	radiusutil "github.com/oyaguma3/mfa-radius-gateway/internal/radius"
	"github.com/oyaguma3/mfa-radius-gateway/internal/session"
	"layeh.com/radius"
)

// passcodePattern はパスワード欄に埋め込まれたワンタイムコードの形式。
// 6桁以下の数字のみを許容する。
var passcodePattern = regexp.MustCompile(`^[0-9]{1,6}$`)

// 認証方式の指定文字（telegram / mobile app / sms / call）
var methodSelectors = map[string]struct{}{
	"t": {}, "m": {}, "s": {}, "c": {},
}

// Client は二要素認証の要求とチャレンジ検証を行う
type Client struct {
	transport    ApiTransport
	bypass       session.BypassCache
	maskUserName bool
}

// NewClient は新しい二要素認証クライアントを生成する。
func NewClient(transport ApiTransport, bypass session.BypassCache, cfg *config.Config) *Client {
	return &Client{
		transport:    transport,
		bypass:       bypass,
		maskUserName: cfg.LogMaskUserName,
	}
}

// RequestSecondFactor は第一要素通過後の二要素認証を要求し、応答コードを確定する。
// バイパスキャッシュに有効なエントリがあればAPIを呼ばずにAcceptを返す。
func (c *Client) RequestSecondFactor(ctx context.Context, req *session.PendingRequest, cc *config.ClientConfig) radius.Code {
	identity, err := c.identity(req, cc)
	if err != nil {
		slog.Error("二要素認証の識別子を決定できない",
			"event_id", "MFA_ID_MISSING",
			"trace_id", req.TraceID,
			"user_name", logging.MaskUserName(req.UserName, c.maskUserName),
		)
		return radius.CodeAccessReject
	}

	if c.bypass.TryHit(req.RemoteHost(), identity, cc.BypassPeriod) {
		slog.Info("二要素バイパスキャッシュに一致",
			"event_id", "MFA_BYPASS_HIT",
			"trace_id", req.TraceID,
			"user_name", logging.MaskUserName(identity, c.maskUserName),
			"remote_host", req.RemoteHost(),
		)
		return radius.CodeAccessAccept
	}

	payload := c.buildPayload(req, cc, identity)
	result, err := c.transport.Post(ctx, PathAccessRequest, payload, cc)
	if err != nil {
		return c.unreachableCode(req, cc, identity, err)
	}
	return c.applyResult(req, cc, identity, result)
}

// VerifyChallenge は未解決チャレンジへの応答（OTP等）を検証する。
func (c *Client) VerifyChallenge(ctx context.Context, req *session.PendingRequest, cc *config.ClientConfig, answer string) radius.Code {
	identity, err := c.identity(req, cc)
	if err != nil {
		slog.Error("二要素認証の識別子を決定できない",
			"event_id", "MFA_ID_MISSING",
			"trace_id", req.TraceID,
			"user_name", logging.MaskUserName(req.UserName, c.maskUserName),
		)
		return radius.CodeAccessReject
	}

	payload := &ChallengePayload{
		Identity:  identity,
		Challenge: answer,
		RequestID: req.State,
	}
	result, err := c.transport.Post(ctx, PathChallenge, payload, cc)
	if err != nil {
		return c.unreachableCode(req, cc, identity, err)
	}
	return c.applyResult(req, cc, identity, result)
}

// identity は二要素認証APIへ渡すユーザー識別子を決定する。
// UseUpnAsIdentity有効時はUPNが必須となる。識別子を空のまま
// APIへ送ることはできないため、決定できない場合はエラーを返す。
func (c *Client) identity(req *session.PendingRequest, cc *config.ClientConfig) (string, error) {
	if cc.UseUpnAsIdentity {
		if req.Upn == "" {
			return "", ErrIdentityMissing
		}
		return req.Upn, nil
	}
	if req.UserName == "" {
		return "", ErrIdentityMissing
	}
	return req.UserName, nil
}

// buildPayload は秘匿方式を適用した認証要求ペイロードを構築する。
func (c *Client) buildPayload(req *session.PendingRequest, cc *config.ClientConfig, identity string) *AccessRequestPayload {
	payload := &AccessRequestPayload{
		Identity:          identity,
		PassCode:          ExtractPasscode(req, cc),
		Capabilities:      Capabilities{InlineEnroll: true},
		GroupPolicyPreset: GroupPolicyPreset{SignUpGroups: cc.SignUpGroups},
	}

	callingStationID := radiusutil.GetCallingStationID(req.Packet)
	if callingStationID == "" {
		callingStationID = req.RemoteHost()
	}

	switch cc.Privacy.Kind {
	case config.PrivacyFull:
		// 識別子以外の個人情報を送信しない
	case config.PrivacyPartial:
		if cc.Privacy.HasField(config.PrivacyFieldName) {
			payload.Name = req.DisplayName
		}
		if cc.Privacy.HasField(config.PrivacyFieldEmail) {
			payload.Email = req.Email
		}
		if cc.Privacy.HasField(config.PrivacyFieldPhone) {
			payload.Phone = req.Phone
		}
		if cc.Privacy.HasField(config.PrivacyFieldRemoteHost) {
			payload.CallingStationID = callingStationID
			payload.CalledStationID = radiusutil.GetCalledStationID(req.Packet)
		}
	default:
		payload.Name = req.DisplayName
		payload.Email = req.Email
		payload.Phone = req.Phone
		payload.CallingStationID = callingStationID
		payload.CalledStationID = radiusutil.GetCalledStationID(req.Packet)
	}
	return payload
}

// applyResult はAPI判定結果を応答コードへ対応付ける。
func (c *Client) applyResult(req *session.PendingRequest, cc *config.ClientConfig, identity string, result *AccessResult) radius.Code {
	req.ReplyMessage = result.ReplyMessage

	switch result.Status {
	case StatusGranted:
		if !result.Bypassed && cc.BypassPeriod > 0 {
			c.bypass.Set(req.RemoteHost(), identity)
		}
		slog.Info("二要素認証成功",
			"event_id", "MFA_GRANTED",
			"trace_id", req.TraceID,
			"user_name", logging.MaskUserName(identity, c.maskUserName),
			"bypassed", result.Bypassed,
			"authenticator", result.Authenticator,
			"account", result.Account,
			"country", result.CountryCode,
			"region", result.Region,
			"city", result.City,
		)
		return radius.CodeAccessAccept

	case StatusDenied:
		slog.Info("二要素認証拒否",
			"event_id", "MFA_DENIED",
			"trace_id", req.TraceID,
			"user_name", logging.MaskUserName(identity, c.maskUserName),
		)
		return radius.CodeAccessReject

	case StatusAwaitingAuthentication:
		req.State = result.ID
		slog.Info("二要素認証チャレンジ発行",
			"event_id", "MFA_CHALLENGE",
			"trace_id", req.TraceID,
			"user_name", logging.MaskUserName(identity, c.maskUserName),
		)
		return radius.CodeAccessChallenge
	}

	slog.Warn("二要素認証APIが未知のステータスを返却",
		"event_id", "MFA_STATUS_UNKNOWN",
		"trace_id", req.TraceID,
		"status", result.Status,
	)
	return radius.CodeAccessReject
}

// unreachableCode はAPI呼び出し失敗時の応答コードを決定する。
// 到達不能エラーかつBypassWhenUnreachable有効時のみフェイルオープンする。
func (c *Client) unreachableCode(req *session.PendingRequest, cc *config.ClientConfig, identity string, err error) radius.Code {
	if IsUnreachable(err) && cc.BypassWhenUnreachable {
		slog.Warn("二要素認証API到達不能のためバイパス",
			"event_id", "MFA_FAIL_OPEN",
			"trace_id", req.TraceID,
			"user_name", logging.MaskUserName(identity, c.maskUserName),
			"error", err.Error(),
		)
		return radius.CodeAccessAccept
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
		slog.Error("二要素認証APIの資格情報が拒否された",
			"event_id", "MFA_API_KEY_ERR",
			"trace_id", req.TraceID,
			"error", err.Error(),
		)
		return radius.CodeAccessReject
	}
	slog.Error("二要素認証API呼び出し失敗",
		"event_id", "MFA_API_FAIL",
		"trace_id", req.TraceID,
		"user_name", logging.MaskUserName(identity, c.maskUserName),
		"error", err.Error(),
	)
	return radius.CodeAccessReject
}

// ExtractPasscode はリクエストに添付されたワンタイムコードを取り出す。
// 専用属性のチャレンジ値を最優先し、なければ第一要素認証を使わない構成に
// 限りパスワード欄を検査する。パスワード全体が6桁以下の数字、または
// 認証方式の指定文字である場合のみコードとして扱う。
func ExtractPasscode(req *session.PendingRequest, cc *config.ClientConfig) string {
	if challenge := radiusutil.GetStaticChallenge(req.Packet); challenge != "" {
		return challenge
	}
	if cc.FirstFactorSource != config.SourceNone {
		return ""
	}
	password, ok := radiusutil.GetUserPassword(req.Packet)
	if !ok {
		return ""
	}
	trimmed := strings.TrimSpace(password)
	if passcodePattern.MatchString(trimmed) {
		return trimmed
	}
	lower := strings.ToLower(trimmed)
	if _, ok := methodSelectors[lower]; ok {
		return lower
	}
	return ""
}
