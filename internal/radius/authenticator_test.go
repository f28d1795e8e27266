package radius

import (
	"testing"

	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
	"layeh.com/radius/rfc2869"
)

func TestVerifyMessageAuthenticator(t *testing.T) {
	secret := []byte("verify-secret")
	p := radius.New(radius.CodeAccessRequest, secret)
	_ = rfc2865.UserName_SetString(p, "j.smith")
	setValidMessageAuthenticator(p, secret)

	if !VerifyMessageAuthenticator(p, secret) {
		t.Error("VerifyMessageAuthenticator = false for valid packet")
	}

	// 別のSecretでは検証失敗
	if VerifyMessageAuthenticator(p, []byte("wrong-secret")) {
		t.Error("VerifyMessageAuthenticator = true for wrong secret")
	}
}

func TestVerifyMessageAuthenticator_Missing(t *testing.T) {
	secret := []byte("verify-secret")
	p := radius.New(radius.CodeAccessRequest, secret)

	if VerifyMessageAuthenticator(p, secret) {
		t.Error("VerifyMessageAuthenticator = true for packet without Message-Authenticator")
	}
	if HasMessageAuthenticator(p) {
		t.Error("HasMessageAuthenticator = true for packet without attribute")
	}
}

func TestSetMessageAuthenticator_Roundtrip(t *testing.T) {
	secret := []byte("roundtrip-secret")
	req := radius.New(radius.CodeAccessRequest, secret)
	resp := req.Response(radius.CodeAccessAccept)

	SetMessageAuthenticator(resp, secret, req.Authenticator)

	// 応答側の検証はRequest Authenticatorで行われる
	savedAuth := resp.Authenticator
	resp.Authenticator = req.Authenticator
	if !VerifyMessageAuthenticator(resp, secret) {
		t.Error("response Message-Authenticator does not verify")
	}
	resp.Authenticator = savedAuth

	ma, err := rfc2869.MessageAuthenticator_Lookup(resp)
	if err != nil {
		t.Fatalf("Message-Authenticator not set: %v", err)
	}
	if len(ma) != 16 {
		t.Errorf("Message-Authenticator length = %d, want 16", len(ma))
	}
}
