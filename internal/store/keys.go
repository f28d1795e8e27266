package store

// Valkeyキープレフィックス
const (
	KeyPrefixClient = "client:" // RADIUSクライアント（NAS）設定、キーは送信元IP
	KeyPrefixUser   = "user:"   // 内蔵ディレクトリのユーザーレコード
)
