package session

import (
	"log/slog"
	"sync"
)

// challengeStateStore はStateStoreのインメモリ実装。
// リクエストごとのハンドラから並行アクセスされるため、
// グローバルロックを持たないsync.Mapを使用する。
// 期限切れ掃引は行わない: エントリはAccept/Reject解決時にのみ削除される。
type challengeStateStore struct {
	entries sync.Map // state(string) -> *PendingRequest
}

// NewStateStore は新しいインメモリStateStoreを生成する
func NewStateStore() StateStore {
	return &challengeStateStore{}
}

// Add はスナップショットを登録する。
// トークンは二要素認証APIが発行するグローバル一意なIDのため、
// 衝突はエラーとして記録する。
func (s *challengeStateStore) Add(state string, req *PendingRequest) bool {
	if _, loaded := s.entries.LoadOrStore(state, req); loaded {
		slog.Error("チャレンジ状態の登録失敗: トークン重複",
			"event_id", "STATE_DUP",
			"state", state,
		)
		return false
	}
	return true
}

// Has はトークンが未解決チャレンジとして存在するかを返す
func (s *challengeStateStore) Has(state string) bool {
	_, ok := s.entries.Load(state)
	return ok
}

// TakeAndRemove はスナップショットを取得し、同時に削除する。
// 読み取りと削除が不可分であるため、並行する継続リクエストが
// 同一トークンを二重消費することはない。
func (s *challengeStateStore) TakeAndRemove(state string) (*PendingRequest, bool) {
	v, loaded := s.entries.LoadAndDelete(state)
	if !loaded {
		return nil, false
	}
	return v.(*PendingRequest), true
}

// Remove はトークンを削除する
func (s *challengeStateStore) Remove(state string) {
	s.entries.Delete(state)
}
