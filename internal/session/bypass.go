package session

import (
	"sync"
	"time"
)

// bypassCache はBypassCacheのインメモリ実装。
// キーは送信元ホストとユーザー名の組、値は認証成功時刻。
type bypassCache struct {
	entries sync.Map // key(string) -> time.Time
	now     func() time.Time
}

// NewBypassCache は新しいインメモリBypassCacheを生成する
func NewBypassCache() BypassCache {
	return &bypassCache{now: time.Now}
}

func bypassKey(remoteHost, userName string) string {
	return remoteHost + "|" + userName
}

// TryHit はバイパス期間内の有効なエントリが存在するかを返す。
// remoteHostが空の場合はキーを構成できないため常にfalse。
// 経過時間が期間とちょうど等しい場合は有効とみなす。
func (c *bypassCache) TryHit(remoteHost, userName string, period time.Duration) bool {
	if remoteHost == "" || period <= 0 {
		return false
	}

	key := bypassKey(remoteHost, userName)
	v, ok := c.entries.Load(key)
	if !ok {
		return false
	}

	authenticatedAt := v.(time.Time)
	if c.now().Sub(authenticatedAt) <= period {
		return true
	}

	// 期限切れは参照時に遅延削除する
	c.entries.Delete(key)
	return false
}

// Set はエントリを登録する。
// insert-if-absent: 既存エントリの時刻は更新しない。連続する認証成功で
// バイパス期間が際限なく延長されることを防ぐ。
func (c *bypassCache) Set(remoteHost, userName string) {
	if remoteHost == "" {
		return
	}
	c.entries.LoadOrStore(bypassKey(remoteHost, userName), c.now())
}
