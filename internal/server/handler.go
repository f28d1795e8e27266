package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/oyaguma3/mfa-radius-gateway/internal/auth"
	radiusutil "github.com/oyaguma3/mfa-radius-gateway/internal/radius"
	"github.com/oyaguma3/mfa-radius-gateway/internal/session"
	"github.com/oyaguma3/mfa-radius-gateway/internal/store"
	"layeh.com/radius"
)

// Handler はRADIUSリクエストを処理するハンドラ。
// layeh.com/radius.Handlerインターフェースの実装。
type Handler struct {
	router    *auth.Router
	clients   store.ClientStore
	startedAt time.Time
}

// NewHandler は新しいHandlerを生成する
func NewHandler(router *auth.Router, clients store.ClientStore) *Handler {
	return &Handler{
		router:    router,
		clients:   clients,
		startedAt: time.Now(),
	}
}

// ServeRADIUS はRADIUSリクエストを処理する
func (h *Handler) ServeRADIUS(w radius.ResponseWriter, r *radius.Request) {
	traceID := uuid.New().String()
	srcIP := extractIP(r.RemoteAddr)

	slog.Info("RADIUSパケット受信",
		"event_id", "PKT_RECV",
		"trace_id", traceID,
		"src_ip", srcIP,
		"code", r.Code,
	)

	switch r.Code {
	case radius.CodeAccessRequest:
		h.handleAccessRequest(w, r, traceID, srcIP)

	case radius.CodeStatusServer:
		h.handleStatusServer(w, r, traceID, srcIP)

	default:
		slog.Warn("未対応のRADIUS Code",
			"event_id", "PKT_UNKNOWN_CODE",
			"trace_id", traceID,
			"code", r.Code,
		)
		// 応答なし
	}
}

// handleAccessRequest はAccess-Requestを処理する
func (h *Handler) handleAccessRequest(w radius.ResponseWriter, r *radius.Request, traceID, srcIP string) {
	secret := r.Packet.Secret

	// Message-Authenticator検証。
	// PAPクライアントは付与しないことがあるため、存在する場合のみ検証する。
	if radiusutil.HasMessageAuthenticator(r.Packet) && !radiusutil.VerifyMessageAuthenticator(r.Packet, secret) {
		slog.Warn("Message-Authenticator検証失敗",
			"event_id", "PKT_MA_INVALID",
			"trace_id", traceID,
			"src_ip", srcIP,
		)
		return // 応答なし
	}

	proxyStates := radiusutil.ExtractProxyStates(r.Packet)
	ctx := context.Background()

	// 送信元NASのクライアント設定を解決
	cc, err := h.clients.Resolve(ctx, srcIP)
	if err != nil {
		slog.Error("クライアント設定解決失敗",
			"event_id", "CLIENT_RESOLVE_ERR",
			"trace_id", traceID,
			"src_ip", srcIP,
			"error", err,
		)
		resp := radiusutil.BuildAccessReject(r.Packet, secret, &radiusutil.RejectParams{
			ProxyStates: proxyStates,
		})
		h.write(w, resp, traceID)
		return
	}

	req := &session.PendingRequest{
		Packet:     r.Packet,
		RemoteAddr: r.RemoteAddr,
		TraceID:    traceID,
	}

	h.router.Handle(ctx, req, cc, func(res *session.PendingRequest) {
		h.respond(w, r, secret, proxyStates, res, traceID)
	})
}

// respond は確定済みリクエストからRADIUS応答を構築して送信する
func (h *Handler) respond(w radius.ResponseWriter, r *radius.Request, secret []byte, proxyStates *radiusutil.ProxyStates, res *session.PendingRequest, traceID string) {
	var resp *radius.Packet

	switch res.ResponseCode {
	case radius.CodeAccessAccept:
		resp = radiusutil.BuildAccessAccept(r.Packet, secret, &radiusutil.AcceptParams{
			ReplyMessage:  res.ReplyMessage,
			Authorization: res.ResponsePacket,
			ProxyStates:   proxyStates,
		})

	case radius.CodeAccessChallenge:
		resp = radiusutil.BuildAccessChallenge(r.Packet, secret, &radiusutil.ChallengeParams{
			State:        res.State,
			ReplyMessage: res.ReplyMessage,
			ProxyStates:  proxyStates,
		})

	default:
		resp = radiusutil.BuildAccessReject(r.Packet, secret, &radiusutil.RejectParams{
			ReplyMessage: res.ReplyMessage,
			ProxyStates:  proxyStates,
		})
	}

	slog.Info("RADIUS応答送信",
		"event_id", "PKT_SEND",
		"trace_id", traceID,
		"code", resp.Code,
	)
	h.write(w, resp, traceID)
}

// handleStatusServer はStatus-Serverリクエストに応答する。
// Message-Authenticator検証を行い、失敗時は無応答（破棄）とする。
func (h *Handler) handleStatusServer(w radius.ResponseWriter, r *radius.Request, traceID, srcIP string) {
	resp := radiusutil.HandleStatusServer(r.Packet, r.Packet.Secret, h.startedAt, srcIP, traceID)
	if resp == nil {
		return // Message-Authenticator検証失敗 → 無応答
	}
	h.write(w, resp, traceID)
}

// write は応答パケットを送信する
func (h *Handler) write(w radius.ResponseWriter, resp *radius.Packet, traceID string) {
	if err := w.Write(resp); err != nil {
		slog.Error("RADIUS応答送信失敗",
			"event_id", "PKT_SEND_ERR",
			"trace_id", traceID,
			"error", err,
		)
	}
}
