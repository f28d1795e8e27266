package mfa

import (
	"errors"
	"fmt"
)

// センチネルエラー
var (
	// ErrCircuitOpen はCircuit BreakerがOpen状態の場合のエラー
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrInvalidResponse は二要素認証APIからのレスポンスが不正な場合のエラー
	ErrInvalidResponse = errors.New("invalid response from mfa api")

	// ErrIdentityMissing はAPIへ渡すユーザー識別子を決定できない場合のエラー
	ErrIdentityMissing = errors.New("identity attribute missing")
)

// APIError はHTTP APIエラーを表す
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mfa api error: %d %s", e.StatusCode, e.Message)
}

// IsUnauthorized はAPIキー認証エラーかどうかを判定する
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsServerError はサーバーエラーかどうかを判定する
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// ConnectionError は接続エラーを表す
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// IsUnreachable はAPI到達不能として扱うエラーかどうかを判定する。
// フェイルオープン（BypassWhenUnreachable）の適用対象は
// 接続失敗・Circuit Breaker開放・サーバーエラー・解釈不能レスポンスに限る。
func IsUnreachable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrCircuitOpen) || errors.Is(err, ErrInvalidResponse) {
		return true
	}
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsServerError()
	}
	return false
}
