package store

import (
	"context"
	"fmt"
	"strings"
)

// userStore はUserStoreのValkey実装。
// ユーザーレコードはハッシュ（user:<name>）で保持する。
type userStore struct {
	vc *ValkeyClient
}

// NewUserStore はUserStoreの新しいインスタンスを生成する。
func NewUserStore(vc *ValkeyClient) UserStore {
	return &userStore{vc: vc}
}

// GetUser は内蔵ディレクトリのユーザーレコードを取得する。
// ユーザー名は小文字に正規化してキーとする。
func (s *userStore) GetUser(ctx context.Context, userName string) (*UserRecord, error) {
	key := KeyPrefixUser + strings.ToLower(userName)
	m, err := s.vc.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
	}
	if len(m) == 0 {
		return nil, ErrUserNotFound
	}

	rec := &UserRecord{
		UserName:     userName,
		PasswordHash: m["password_hash"],
		DisplayName:  m["display_name"],
		Email:        m["email"],
		Phone:        m["phone"],
		Upn:          m["upn"],
	}
	if groups := m["groups"]; groups != "" {
		for _, g := range strings.Split(groups, ",") {
			if g = strings.TrimSpace(g); g != "" {
				rec.Groups = append(rec.Groups, g)
			}
		}
	}
	return rec, nil
}
