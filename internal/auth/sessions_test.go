package auth

import (
	"strings"
	"testing"
)

func TestNewSessionTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := NewSessionToken()
		if err != nil {
			t.Fatalf("NewSessionToken: %v", err)
		}
		if len(tok) < 40 {
			t.Fatalf("token too short: %q", tok)
		}
		if seen[tok] {
			t.Fatalf("duplicate token generated")
		}
		seen[tok] = true
	}
}

func TestCookieCodecRoundTrip(t *testing.T) {
	codec := NewCookieCodec([]byte("0123456789abcdef0123456789abcdef"))

	tok, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}

	encoded := codec.EncodeToken(tok)
	if encoded == tok {
		t.Fatalf("expected signed cookie value to differ from raw token")
	}

	decoded, ok := codec.DecodeToken(encoded)
	if !ok {
		t.Fatalf("expected decode to succeed")
	}
	if decoded != tok {
		t.Fatalf("decoded %q, want %q", decoded, tok)
	}
}

func TestCookieCodecRejectsTampering(t *testing.T) {
	codec := NewCookieCodec([]byte("0123456789abcdef0123456789abcdef"))

	encoded := codec.EncodeToken("session-token")

	if _, ok := codec.DecodeToken("x" + encoded); ok {
		t.Fatalf("expected tampered token to be rejected")
	}
	if _, ok := codec.DecodeToken(strings.TrimSuffix(encoded, "=") + "AA"); ok {
		t.Fatalf("expected tampered signature to be rejected")
	}
	if _, ok := codec.DecodeToken("no-signature"); ok {
		t.Fatalf("expected unsigned value to be rejected")
	}

	other := NewCookieCodec([]byte("fedcba9876543210fedcba9876543210"))
	if _, ok := other.DecodeToken(encoded); ok {
		t.Fatalf("expected value signed with a different secret to be rejected")
	}
}

func TestCookieCodecNoSecretPassThrough(t *testing.T) {
	codec := NewCookieCodec(nil)

	if got := codec.EncodeToken("tok"); got != "tok" {
		t.Fatalf("EncodeToken = %q, want pass-through", got)
	}
	if _, ok := codec.DecodeToken(""); ok {
		t.Fatalf("expected empty cookie to be rejected")
	}
	if got, ok := codec.DecodeToken("tok"); !ok || got != "tok" {
		t.Fatalf("DecodeToken = %q, %v", got, ok)
	}
}
