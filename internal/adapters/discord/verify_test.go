package discord

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"testing"
)

type testKey struct {
	pub  string
	priv ed25519.PrivateKey
}

func newTestKey(t *testing.T) testKey {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return testKey{pub: hex.EncodeToString(pub), priv: priv}
}

func (k testKey) sign(timestamp string, body []byte) string {
	msg := append([]byte(timestamp), body...)
	return hex.EncodeToString(ed25519.Sign(k.priv, msg))
}

func TestVerifyEd25519_Valid(t *testing.T) {
	k := newTestKey(t)
	body := []byte(`{"type":1}`)

	ok, err := VerifyEd25519(body, k.sign("1700000000", body), "1700000000", k.pub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected signature to verify")
	}
}

func TestVerifyEd25519_Rejects(t *testing.T) {
	k := newTestKey(t)
	body := []byte(`{"type":1}`)
	sig := k.sign("1700000000", body)

	cases := map[string]struct {
		body    []byte
		sig, ts string
	}{
		"tampered body":     {[]byte(`{"type":2}`), sig, "1700000000"},
		"other timestamp":   {body, sig, "1700000001"},
		"missing signature": {body, "", "1700000000"},
		"missing timestamp": {body, sig, ""},
		"non-hex signature": {body, "zz", "1700000000"},
		"short signature":   {body, sig[:20], "1700000000"},
	}
	for name, tc := range cases {
		ok, _ := VerifyEd25519(tc.body, tc.sig, tc.ts, k.pub)
		if ok {
			t.Errorf("%s: expected rejection", name)
		}
	}
}

func TestVerifyEd25519_BadPublicKey(t *testing.T) {
	ok, err := VerifyEd25519([]byte("{}"), "00", "1", "not-hex")
	if ok || err == nil {
		t.Errorf("expected (false, error), got (%v, %v)", ok, err)
	}
}
