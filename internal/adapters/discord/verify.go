package discord

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
)

const (
	HeaderSignature = "X-Signature-Ed25519"
	HeaderTimestamp = "X-Signature-Timestamp"
)

// Verifier valida la firma sobre el body crudo, tal cual llegó (nunca re-serializado).
// false o error => el request se rechaza.
type Verifier func(body []byte, signature, timestamp, publicKey string) (bool, error)

// VerifyEd25519 es la verificación de Discord: ed25519(timestamp || body).
func VerifyEd25519(body []byte, signature, timestamp, publicKey string) (bool, error) {
	if signature == "" || timestamp == "" {
		return false, nil
	}
	key, err := hex.DecodeString(publicKey)
	if err != nil || len(key) != ed25519.PublicKeySize {
		return false, fmt.Errorf("discord: invalid public key")
	}
	sig, err := hex.DecodeString(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false, nil
	}

	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)
	return ed25519.Verify(ed25519.PublicKey(key), msg, sig), nil
}
