package directory

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/oyaguma3/mfa-radius-gateway/internal/config"
	"github.com/oyaguma3/mfa-radius-gateway/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserStore(t *testing.T) (*miniredis.Miniredis, store.UserStore) {
	t.Helper()
	mr := miniredis.RunT(t)

	host, port, err := net.SplitHostPort(mr.Addr())
	if err != nil {
		t.Fatalf("failed to split miniredis addr: %v", err)
	}
	vc, err := store.NewValkeyClient(&config.Config{
		RedisHost: host,
		RedisPort: port,
	})
	if err != nil {
		t.Fatalf("failed to create ValkeyClient: %v", err)
	}
	t.Cleanup(func() { vc.Close() })
	return mr, store.NewUserStore(vc)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

func TestEmbeddedVerifier_VerifyCredential(t *testing.T) {
	mr, us := newTestUserStore(t)
	mr.HSet("user:j.smith",
		"password_hash", hashPassword(t, "correct-horse"),
		"display_name", "John Smith",
		"email", "j.smith@example.com",
		"upn", "j.smith@corp.example.com",
		"groups", "VPN Users",
	)

	v := NewEmbeddedVerifier(us)

	profile, err := v.VerifyCredential(context.Background(), "j.smith", "correct-horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.DisplayName != "John Smith" {
		t.Errorf("DisplayName = %q", profile.DisplayName)
	}
	if profile.Upn != "j.smith@corp.example.com" {
		t.Errorf("Upn = %q", profile.Upn)
	}
	if !profile.HasGroup("VPN Users") {
		t.Error("profile should carry groups")
	}
}

func TestEmbeddedVerifier_VerifyCredential_パスワード不一致(t *testing.T) {
	mr, us := newTestUserStore(t)
	mr.HSet("user:j.smith", "password_hash", hashPassword(t, "correct-horse"))

	v := NewEmbeddedVerifier(us)

	if _, err := v.VerifyCredential(context.Background(), "j.smith", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestEmbeddedVerifier_VerifyCredential_ユーザー不在(t *testing.T) {
	_, us := newTestUserStore(t)

	v := NewEmbeddedVerifier(us)

	// ユーザー不在もErrInvalidCredentialsに正規化する
	if _, err := v.VerifyCredential(context.Background(), "nobody", "any"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestEmbeddedVerifier_VerifyCredential_ストア停止(t *testing.T) {
	mr, us := newTestUserStore(t)
	mr.Close()

	v := NewEmbeddedVerifier(us)

	if _, err := v.VerifyCredential(context.Background(), "j.smith", "any"); !errors.Is(err, ErrDirectoryUnavailable) {
		t.Errorf("err = %v, want ErrDirectoryUnavailable", err)
	}
}

func TestEmbeddedVerifier_VerifyMembership(t *testing.T) {
	mr, us := newTestUserStore(t)
	mr.HSet("user:j.smith",
		"password_hash", hashPassword(t, "correct-horse"),
		"groups", "VPN Users,Admins",
	)

	v := NewEmbeddedVerifier(us)

	ok, err := v.VerifyMembership(context.Background(), "j.smith", "vpn users")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected membership hit")
	}

	ok, err = v.VerifyMembership(context.Background(), "j.smith", "Guests")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected membership miss")
	}
}

func TestEmbeddedVerifier_VerifyMembership_ユーザー不在(t *testing.T) {
	_, us := newTestUserStore(t)

	v := NewEmbeddedVerifier(us)

	ok, err := v.VerifyMembership(context.Background(), "nobody", "VPN Users")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("absent user should not be a member")
	}
}
