package radius

import (
	"testing"

	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
	"layeh.com/radius/vendors/microsoft"
)

func newAccessRequest(t *testing.T) *radius.Packet {
	t.Helper()
	return radius.New(radius.CodeAccessRequest, []byte("secret123"))
}

func TestGetUserName(t *testing.T) {
	p := newAccessRequest(t)

	if _, ok := GetUserName(p); ok {
		t.Error("GetUserName should return false for missing attribute")
	}

	_ = rfc2865.UserName_SetString(p, "j.smith")
	name, ok := GetUserName(p)
	if !ok || name != "j.smith" {
		t.Errorf("GetUserName = %q, %v, want %q, true", name, ok, "j.smith")
	}
}

func TestGetUserPassword(t *testing.T) {
	p := newAccessRequest(t)

	if _, ok := GetUserPassword(p); ok {
		t.Error("GetUserPassword should return false for missing attribute")
	}

	_ = rfc2865.UserPassword_SetString(p, "p@ssw0rd")
	pw, ok := GetUserPassword(p)
	if !ok || pw != "p@ssw0rd" {
		t.Errorf("GetUserPassword = %q, %v, want %q, true", pw, ok, "p@ssw0rd")
	}
}

func TestGetSetState(t *testing.T) {
	p := newAccessRequest(t)

	if _, ok := GetState(p); ok {
		t.Error("GetState should return false for missing attribute")
	}

	SetState(p, "abc123")
	state, ok := GetState(p)
	if !ok || state != "abc123" {
		t.Errorf("GetState = %q, %v, want %q, true", state, ok, "abc123")
	}
}

func TestGetSetStaticChallenge(t *testing.T) {
	p := newAccessRequest(t)

	if got := GetStaticChallenge(p); got != "" {
		t.Errorf("GetStaticChallenge = %q, want empty for missing attribute", got)
	}

	SetStaticChallenge(p, "424242")
	if got := GetStaticChallenge(p); got != "424242" {
		t.Errorf("GetStaticChallenge = %q, want %q", got, "424242")
	}
}

func TestDetectAuthType(t *testing.T) {
	p := newAccessRequest(t)
	if got := DetectAuthType(p); got != AuthTypeUnknown {
		t.Errorf("DetectAuthType = %v, want AuthTypeUnknown", got)
	}

	_ = rfc2865.UserPassword_SetString(p, "482913")
	if got := DetectAuthType(p); got != AuthTypePAP {
		t.Errorf("DetectAuthType = %v, want AuthTypePAP", got)
	}

	// MS-CHAP2-ResponseはUser-Passwordより優先
	_ = microsoft.MSCHAP2Response_Set(p, make([]byte, 50))
	if got := DetectAuthType(p); got != AuthTypeMSCHAP2 {
		t.Errorf("DetectAuthType = %v, want AuthTypeMSCHAP2", got)
	}
}

func TestGetMSCHAP2OTP(t *testing.T) {
	p := newAccessRequest(t)

	if _, ok := GetMSCHAP2OTP(p); ok {
		t.Error("GetMSCHAP2OTP should return false for missing attribute")
	}

	// オフセット2からの6バイトがOTP
	resp := make([]byte, 50)
	copy(resp[2:], []byte("482913"))
	_ = microsoft.MSCHAP2Response_Set(p, resp)

	otp, ok := GetMSCHAP2OTP(p)
	if !ok || otp != "482913" {
		t.Errorf("GetMSCHAP2OTP = %q, %v, want %q, true", otp, ok, "482913")
	}
}

func TestGetMSCHAP2OTP_TooShort(t *testing.T) {
	p := newAccessRequest(t)
	_ = microsoft.MSCHAP2Response_Set(p, []byte{0x01, 0x02, 0x03})

	if _, ok := GetMSCHAP2OTP(p); ok {
		t.Error("GetMSCHAP2OTP should return false for short attribute")
	}
}

func TestGetStationIDs(t *testing.T) {
	p := newAccessRequest(t)
	_ = rfc2865.CallingStationID_SetString(p, "10.0.0.5")
	_ = rfc2865.CalledStationID_SetString(p, "vpn.example.com")

	if got := GetCallingStationID(p); got != "10.0.0.5" {
		t.Errorf("GetCallingStationID = %q", got)
	}
	if got := GetCalledStationID(p); got != "vpn.example.com" {
		t.Errorf("GetCalledStationID = %q", got)
	}
}
