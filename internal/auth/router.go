package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oyaguma3/mfa-radius-gateway/internal/config"
	"github.com/oyaguma3/mfa-radius-gateway/internal/logging"
	radiusutil "github.com/oyaguma3/mfa-radius-gateway/internal/radius"
	"github.com/oyaguma3/mfa-radius-gateway/internal/session"
	"layeh.com/radius"
)

// ProcessedFunc は応答確定済みリクエストを受け取るコールバック
type ProcessedFunc func(req *session.PendingRequest)

// Router は第一要素・二要素・チャレンジ継続の認証パイプラインを制御する
type Router struct {
	firstFactor  map[config.AuthSource]FirstFactorProvider
	secondFactor SecondFactor
	pwdChange    PasswordChanger
	states       session.StateStore
	maskUserName bool
}

// NewRouter は新しいRouterを生成する
func NewRouter(
	firstFactor map[config.AuthSource]FirstFactorProvider,
	secondFactor SecondFactor,
	pwdChange PasswordChanger,
	states session.StateStore,
	cfg *config.Config,
) *Router {
	return &Router{
		firstFactor:  firstFactor,
		secondFactor: secondFactor,
		pwdChange:    pwdChange,
		states:       states,
		maskUserName: cfg.LogMaskUserName,
	}
}

// Handle はリクエストを処理し、応答確定後にprocessedを1回だけ呼び出す。
// パイプライン内でpanicが発生した場合もRejectとして必ず通知する。
// パケット種別が対象外の場合のみ通知せずに破棄する。
func (r *Router) Handle(ctx context.Context, req *session.PendingRequest, cc *config.ClientConfig, processed ProcessedFunc) {
	emitted := false
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("認証パイプラインでpanicが発生",
				"event_id", "ROUTER_PANIC",
				"trace_id", req.TraceID,
				"panic", fmt.Sprint(rec),
			)
			if !emitted {
				req.ResponseCode = radius.CodeAccessReject
				processed(req)
			}
		}
	}()

	if r.route(ctx, req, cc) {
		return // 応答なし
	}
	emitted = true
	processed(req)
}

// route はパイプライン本体。dropがtrueの場合は応答を返さない。
func (r *Router) route(ctx context.Context, req *session.PendingRequest, cc *config.ClientConfig) (drop bool) {
	if req.Packet.Code != radius.CodeAccessRequest {
		slog.Warn("対象外のパケット種別",
			"event_id", "PKT_IGNORED",
			"trace_id", req.TraceID,
			"code", req.Packet.Code,
		)
		return true
	}

	if userName, ok := radiusutil.GetUserName(req.Packet); ok {
		req.UserName = userName
	}

	// パスワード変更フローへの委譲。Accept以外は最終応答として確定する。
	if code := r.pwdChange.HandleRequest(ctx, req, cc); code != radius.CodeAccessAccept {
		req.ResponseCode = code
		return false
	}

	// Stateトークンがあればチャレンジ継続
	if state, ok := radiusutil.GetState(req.Packet); ok && state != "" {
		r.continueChallenge(ctx, req, cc, state)
		return false
	}

	provider, ok := r.firstFactor[cc.FirstFactorSource]
	if !ok {
		slog.Error("第一要素プロバイダ未登録",
			"event_id", "FF_NO_PROVIDER",
			"trace_id", req.TraceID,
			"source", cc.FirstFactorSource,
		)
		req.ResponseCode = radius.CodeAccessReject
		return false
	}

	code := provider.Authenticate(ctx, req, cc)
	if code != radius.CodeAccessAccept {
		if req.MustChangePassword {
			req.ResponseCode = r.pwdChange.HandleRequest(ctx, req, cc)
			return false
		}
		req.ResponseCode = code
		return false
	}

	if req.Bypass2FA {
		slog.Info("二要素免除グループ所属のため通過",
			"event_id", "MFA_GROUP_BYPASS",
			"trace_id", req.TraceID,
			"user_name", logging.MaskUserName(req.UserName, r.maskUserName),
		)
		req.ResponseCode = radius.CodeAccessAccept
		return false
	}

	req.ResponseCode = r.secondFactor.RequestSecondFactor(ctx, req, cc)
	if req.ResponseCode == radius.CodeAccessChallenge {
		r.registerChallenge(req)
	}
	return false
}

// continueChallenge はStateトークン付きリクエスト（チャレンジ応答）を処理する
func (r *Router) continueChallenge(ctx context.Context, req *session.PendingRequest, cc *config.ClientConfig, state string) {
	if !r.states.Has(state) {
		slog.Error("不明なStateトークン",
			"event_id", "STATE_STALE",
			"trace_id", req.TraceID,
			"user_name", logging.MaskUserName(req.UserName, r.maskUserName),
		)
		req.ResponseCode = radius.CodeAccessReject
		return
	}

	var answer string
	switch radiusutil.DetectAuthType(req.Packet) {
	case radiusutil.AuthTypePAP:
		answer, _ = radiusutil.GetUserPassword(req.Packet)

	case radiusutil.AuthTypeMSCHAP2:
		otp, ok := radiusutil.GetMSCHAP2OTP(req.Packet)
		if !ok {
			slog.Warn("MS-CHAP2応答からワンタイムコードを取得できない",
				"event_id", "CHAL_MSCHAP_ERR",
				"trace_id", req.TraceID,
			)
			r.states.Remove(state)
			req.ResponseCode = radius.CodeAccessReject
			return
		}
		answer = otp

	default:
		slog.Warn("未対応の認証方式によるチャレンジ応答",
			"event_id", "CHAL_UNSUPPORTED",
			"trace_id", req.TraceID,
		)
		r.states.Remove(state)
		req.ResponseCode = radius.CodeAccessReject
		return
	}

	snapshot, ok := r.states.TakeAndRemove(state)
	if !ok {
		// Has確認後に並行消費された場合
		req.ResponseCode = radius.CodeAccessReject
		return
	}

	// 元リクエストで解決済みのユーザー属性を引き継ぐ
	if snapshot.UserName != "" {
		req.UserName = snapshot.UserName
	}
	req.DisplayName = snapshot.DisplayName
	req.Email = snapshot.Email
	req.Phone = snapshot.Phone
	req.Upn = snapshot.Upn
	req.UserGroups = snapshot.UserGroups
	req.ResponsePacket = snapshot.ResponsePacket
	req.State = state

	code := r.secondFactor.VerifyChallenge(ctx, req, cc, answer)
	if code == radius.CodeAccessChallenge {
		// 再チャレンジ: 新しいトークンでスナップショットを再登録する
		if req.State == "" {
			req.State = state
		}
		r.states.Add(req.State, snapshot)
	}
	req.ResponseCode = code
}

// registerChallenge は発行したチャレンジのスナップショットを登録する
func (r *Router) registerChallenge(req *session.PendingRequest) {
	if req.State == "" {
		slog.Error("Stateトークン未設定のチャレンジ",
			"event_id", "STATE_EMPTY",
			"trace_id", req.TraceID,
		)
		req.ResponseCode = radius.CodeAccessReject
		return
	}
	if !r.states.Add(req.State, req) {
		req.ResponseCode = radius.CodeAccessReject
	}
}
