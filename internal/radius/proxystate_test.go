package radius

import (
	"testing"

	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
)

func TestProxyStates_RoundTrip(t *testing.T) {
	secret := []byte("secret123")
	req := radius.New(radius.CodeAccessRequest, secret)
	_ = rfc2865.ProxyState_Add(req, []byte("first"))
	_ = rfc2865.ProxyState_Add(req, []byte("second"))

	ps := ExtractProxyStates(req)
	if len(ps.Values) != 2 {
		t.Fatalf("extracted %d Proxy-State values, want 2", len(ps.Values))
	}

	resp := req.Response(radius.CodeAccessAccept)
	ps.Apply(resp)

	values, _ := rfc2865.ProxyState_Gets(resp)
	if len(values) != 2 || string(values[0]) != "first" || string(values[1]) != "second" {
		t.Errorf("Proxy-State order not preserved: %v", values)
	}
}

func TestProxyStates_NilApply(t *testing.T) {
	var ps *ProxyStates
	resp := radius.New(radius.CodeAccessAccept, []byte("secret123"))
	ps.Apply(resp) // panicしないこと

	values, _ := rfc2865.ProxyState_Gets(resp)
	if len(values) != 0 {
		t.Errorf("unexpected Proxy-State values: %v", values)
	}
}
