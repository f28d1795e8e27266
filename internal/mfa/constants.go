package mfa

// HTTPヘッダ名
const (
	HeaderContentType = "Content-Type"
)

// Content-Type
const (
	ContentTypeJSON = "application/json"
)

// APIパス
const (
	PathAccessRequest = "/access/requests/ra"
	PathChallenge     = "/access/requests/ra/challenge"
)

// 二要素認証APIのステータス値
const (
	StatusGranted                = "Granted"
	StatusDenied                 = "Denied"
	StatusAwaitingAuthentication = "AwaitingAuthentication"
)
