package mfa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/oyaguma3/mfa-radius-gateway/internal/config"
	"github.com/sony/gobreaker"
)

// Transport はApiTransportのresty実装
type Transport struct {
	httpClient *resty.Client
	cb         *gobreaker.CircuitBreaker
	baseURL    string
}

// NewTransport は新しいAPIトランスポートを生成する。
func NewTransport(cfg *config.Config) *Transport {
	httpClient := resty.New().
		SetTimeout(config.APIRequestTimeout)

	if cfg.APIProxy != "" {
		httpClient.SetProxy(cfg.APIProxy)
	}

	cbSettings := gobreaker.Settings{
		Name:        config.CBName,
		MaxRequests: config.CBMaxRequests,
		Interval:    config.CBInterval,
		Timeout:     config.CBTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.CBFailureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			switch to {
			case gobreaker.StateOpen:
				slog.Warn("circuit breaker opened",
					"event_id", "CB_OPEN",
					"cb_name", name,
				)
			case gobreaker.StateHalfOpen:
				slog.Info("circuit breaker half-open",
					"event_id", "CB_HALF_OPEN",
					"cb_name", name,
				)
			case gobreaker.StateClosed:
				slog.Info("circuit breaker closed",
					"event_id", "CB_CLOSE",
					"cb_name", name,
				)
			}
		},
	}

	return &Transport{
		httpClient: httpClient,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		baseURL:    strings.TrimRight(cfg.APIURL, "/"),
	}
}

// Post はペイロードをJSONで送信し、判定結果を返す。
func (t *Transport) Post(ctx context.Context, path string, payload any, cc *config.ClientConfig) (*AccessResult, error) {
	start := time.Now()

	result, err := t.cb.Execute(func() (any, error) {
		resp, err := t.httpClient.R().
			SetContext(ctx).
			SetHeader(HeaderContentType, ContentTypeJSON).
			SetBasicAuth(cc.APIKey, cc.APISecret).
			SetBody(payload).
			Post(t.baseURL + path)

		if err != nil {
			return nil, &ConnectionError{Cause: err}
		}

		latencyMs := time.Since(start).Milliseconds()
		statusCode := resp.StatusCode()

		// CB失敗判定対象: 5xx
		if statusCode >= 500 {
			apiErr := &APIError{StatusCode: statusCode, Message: string(resp.Body())}
			slog.Error("mfa api error",
				"event_id", "MFA_API_ERR",
				"error", apiErr.Error(),
				"http_status", statusCode,
				"latency_ms", latencyMs,
			)
			return nil, apiErr
		}

		// CB失敗判定対象外のエラー: 4xx
		if statusCode != 200 {
			apiErr := &APIError{StatusCode: statusCode, Message: string(resp.Body())}
			slog.Error("mfa api error",
				"event_id", "MFA_API_ERR",
				"error", apiErr.Error(),
				"http_status", statusCode,
				"latency_ms", latencyMs,
			)
			// CB対象外エラーはnilを返してCBカウントに含めない
			return apiErr, nil
		}

		slog.Debug("mfa api success",
			"latency_ms", latencyMs,
		)

		return resp.Body(), nil
	})

	if err != nil {
		// Circuit BreakerがOpen状態
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrCircuitOpen
		}
		// ConnectionErrorまたはAPIError（CB対象）をそのまま返す
		return nil, err
	}

	// CB対象外のAPIErrorの場合
	if apiErr, ok := result.(*APIError); ok {
		return nil, apiErr
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, ErrInvalidResponse
	}

	return parseResponse(body)
}

// parseResponse はJSONレスポンスをAccessResultに変換する。
func parseResponse(body []byte) (*AccessResult, error) {
	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}
	if !envelope.Success {
		// 不成功応答はモデルをそのまま返し、未知ステータスとしてRejectに落とす
		slog.Warn("mfa api returned unsuccessful response",
			"event_id", "MFA_API_DECLINED",
			"message", envelope.Message,
		)
	}
	return &envelope.Model, nil
}
