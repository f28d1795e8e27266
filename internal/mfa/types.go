package mfa

// AccessRequestPayload は二要素認証APIへの認証要求を表す
type AccessRequestPayload struct {
	Identity          string            `json:"Identity"`
	Name              string            `json:"Name,omitempty"`
	Email             string            `json:"Email,omitempty"`
	Phone             string            `json:"Phone,omitempty"`
	PassCode          string            `json:"PassCode,omitempty"`
	CallingStationID  string            `json:"CallingStationId,omitempty"`
	CalledStationID   string            `json:"CalledStationId,omitempty"`
	Capabilities      Capabilities      `json:"Capabilities"`
	GroupPolicyPreset GroupPolicyPreset `json:"GroupPolicyPreset"`
}

// Capabilities はアダプター側の対応機能を表す
type Capabilities struct {
	InlineEnroll bool `json:"InlineEnroll"`
}

// GroupPolicyPreset は自己登録時に適用するグループポリシーを表す
type GroupPolicyPreset struct {
	SignUpGroups string `json:"SignUpGroups,omitempty"`
}

// ChallengePayload はチャレンジ応答の検証要求を表す
type ChallengePayload struct {
	Identity  string `json:"Identity"`
	Challenge string `json:"Challenge"`
	RequestID string `json:"RequestId"`
}

// AccessResult は二要素認証APIの判定結果を表す
type AccessResult struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	ReplyMessage    string `json:"replyMessage"`
	Phone           string `json:"phone"`
	Bypassed        bool   `json:"bypassed"`
	Authenticator   string `json:"authenticator"`
	AuthenticatorID string `json:"authenticatorId"`
	Account         string `json:"account"`
	CountryCode     string `json:"countryCode"`
	Region          string `json:"region"`
	City            string `json:"city"`
}

// apiEnvelope はJSONパース用の内部構造体
type apiEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Model   AccessResult `json:"model"`
}
