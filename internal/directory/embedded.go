package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/oyaguma3/mfa-radius-gateway/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// EmbeddedVerifier はValkey上の内蔵ディレクトリで資格情報を検証する。
// パスワードはbcryptハッシュで保持されている。
type EmbeddedVerifier struct {
	users store.UserStore
}

// NewEmbeddedVerifier は新しいEmbeddedVerifierを生成する
func NewEmbeddedVerifier(users store.UserStore) *EmbeddedVerifier {
	return &EmbeddedVerifier{users: users}
}

// VerifyCredential はユーザーレコードのbcryptハッシュとパスワードを照合する。
// ユーザー不在とパスワード不一致は区別せずErrInvalidCredentialsを返す。
func (v *EmbeddedVerifier) VerifyCredential(ctx context.Context, userName, password string) (*Profile, error) {
	rec, err := v.users.GetUser(ctx, userName)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &Profile{
		DisplayName: rec.DisplayName,
		Email:       rec.Email,
		Phone:       rec.Phone,
		Upn:         rec.Upn,
		Groups:      rec.Groups,
	}, nil
}

// VerifyMembership はユーザーレコードのグループ一覧で所属を判定する
func (v *EmbeddedVerifier) VerifyMembership(ctx context.Context, userName, group string) (bool, error) {
	rec, err := v.users.GetUser(ctx, userName)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	p := Profile{Groups: rec.Groups}
	return p.HasGroup(group), nil
}
