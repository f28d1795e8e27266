package directory

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/go-ldap/ldap/v3"
	"github.com/oyaguma3/mfa-radius-gateway/internal/config"
)

// profileAttributes はバインド成功後に取得するユーザー属性
var profileAttributes = []string{
	"displayName",
	"mail",
	"telephoneNumber",
	"mobile",
	"userPrincipalName",
	"memberOf",
}

// bindErrorDataPattern はActive Directoryのバインド失敗詳細コードを抽出する。
// 診断メッセージに "data 52e" のような16進コードが含まれる。
var bindErrorDataPattern = regexp.MustCompile(`data ([0-9a-fA-F]+)`)

// LdapVerifier はLDAPバインドによる資格情報検証を行う
type LdapVerifier struct {
	url          string
	baseDN       string
	bindDN       string
	bindPassword string
}

// NewLdapVerifier は新しいLdapVerifierを生成する
func NewLdapVerifier(cfg *config.Config) *LdapVerifier {
	return &LdapVerifier{
		url:          cfg.LdapURL,
		baseDN:       cfg.LdapBaseDN,
		bindDN:       cfg.LdapBindDN,
		bindPassword: cfg.LdapBindPassword,
	}
}

// VerifyCredential はユーザー自身の資格情報でバインドし、
// 成功時にプロファイル属性を取得して返す。
func (v *LdapVerifier) VerifyCredential(ctx context.Context, userName, password string) (*Profile, error) {
	conn, err := v.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := conn.Bind(userName, password); err != nil {
		reason := bindFailureReason(err)
		slog.Info("LDAPバインド失敗",
			"event_id", "LDAP_BIND_NG",
			"reason", reason,
		)
		return nil, reason
	}

	profile, err := v.searchProfile(conn, userName)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// VerifyMembership はサービスアカウントでバインドし、
// ユーザーの所属グループを照会する。
func (v *LdapVerifier) VerifyMembership(ctx context.Context, userName, group string) (bool, error) {
	conn, err := v.dial(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	if err := conn.Bind(v.bindDN, v.bindPassword); err != nil {
		return false, fmt.Errorf("%w: service bind failed: %v", ErrDirectoryUnavailable, err)
	}

	profile, err := v.searchProfile(conn, userName)
	if err != nil {
		return false, err
	}
	return profile.HasGroup(group), nil
}

// dial はLDAP接続を確立する。
// コンテキストが既にキャンセル済みの場合は接続を試みない。
func (v *LdapVerifier) dial(ctx context.Context) (*ldap.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	conn, err := ldap.DialURL(v.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	conn.SetTimeout(config.LdapOperationTimeout)
	return conn, nil
}

// searchProfile はsAMAccountNameまたはUPNでユーザーエントリを検索する
func (v *LdapVerifier) searchProfile(conn *ldap.Conn, userName string) (*Profile, error) {
	// DOMAIN\user 形式はアカウント名部分だけで検索する
	account := userName
	if i := strings.LastIndex(account, `\`); i >= 0 {
		account = account[i+1:]
	}
	escaped := ldap.EscapeFilter(account)
	filter := fmt.Sprintf("(&(objectClass=user)(|(sAMAccountName=%s)(userPrincipalName=%s)))", escaped, escaped)

	req := ldap.NewSearchRequest(
		v.baseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		1, 0, false,
		filter,
		profileAttributes,
		nil,
	)
	res, err := conn.Search(req)
	if err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultSizeLimitExceeded) && res != nil && len(res.Entries) > 0 {
			// 上限超過でも先頭エントリが取れていれば使う
		} else {
			return nil, fmt.Errorf("%w: search failed: %v", ErrDirectoryUnavailable, err)
		}
	}
	if len(res.Entries) == 0 {
		return nil, ErrUserNotFound
	}

	entry := res.Entries[0]
	profile := &Profile{
		DisplayName: entry.GetAttributeValue("displayName"),
		Email:       entry.GetAttributeValue("mail"),
		Phone:       firstNonEmpty(entry.GetAttributeValue("telephoneNumber"), entry.GetAttributeValue("mobile")),
		Upn:         entry.GetAttributeValue("userPrincipalName"),
	}
	for _, dn := range entry.GetAttributeValues("memberOf") {
		if cn := groupNameFromDN(dn); cn != "" {
			profile.Groups = append(profile.Groups, cn)
		}
	}
	return profile, nil
}

// bindFailureReason はバインドエラーからセンチネルエラーを決定する。
// Active Directoryは資格情報エラー（49）の詳細を診断メッセージの
// "data" コードで区別する。
func bindFailureReason(err error) error {
	if !ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
		return fmt.Errorf("%w: bind failed: %v", ErrDirectoryUnavailable, err)
	}
	m := bindErrorDataPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return ErrInvalidCredentials
	}
	switch strings.ToLower(m[1]) {
	case "525":
		return ErrUserNotFound
	case "52e":
		return ErrInvalidCredentials
	case "530", "531":
		// ログオン時間帯・端末の制限
		return ErrInvalidCredentials
	case "532", "773":
		return ErrPasswordExpired
	case "533", "701":
		return ErrAccountDisabled
	case "775":
		return ErrAccountLocked
	}
	return ErrInvalidCredentials
}

// groupNameFromDN はグループDNからCN部分を取り出す
func groupNameFromDN(dn string) string {
	parsed, err := ldap.ParseDN(dn)
	if err != nil || len(parsed.RDNs) == 0 {
		return ""
	}
	for _, attr := range parsed.RDNs[0].Attributes {
		if strings.EqualFold(attr.Type, "CN") {
			return attr.Value
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
