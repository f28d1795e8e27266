package session

import "time"

// StateStore は発行済みAccess-ChallengeのStateトークンと
// 元リクエストのスナップショットを対応付ける。
// トークンが格納されていることと、未解決のチャレンジが存在することは同値。
type StateStore interface {
	// Add はスナップショットを登録する。トークンが既に存在する場合はfalseを返す。
	Add(state string, req *PendingRequest) bool
	// Has はトークンが未解決チャレンジとして存在するかを返す
	Has(state string) bool
	// TakeAndRemove はスナップショットを取得し、同時に削除する（atomic-take）
	TakeAndRemove(state string) (*PendingRequest, bool)
	// Remove はトークンを削除する（存在しなくてもエラーにしない）
	Remove(state string)
}

// BypassCache は二要素認証を直近に通過した(remoteHost, userName)の組を記録し、
// バイパス期間内の再プロンプトを抑止する。
type BypassCache interface {
	// TryHit はバイパス期間内の有効なエントリが存在するかを返す。
	// 期限切れエントリは遅延削除される。
	TryHit(remoteHost, userName string, period time.Duration) bool
	// Set はエントリを登録する（insert-if-absent、既存エントリは更新しない）
	Set(remoteHost, userName string)
}
