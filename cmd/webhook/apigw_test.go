package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/jose-valero/discord-interactions/internal/adapters/discord"
)

func signedEvent(t *testing.T, priv ed25519.PrivateKey, body string, b64 bool) events.APIGatewayV2HTTPRequest {
	t.Helper()
	const ts = "1700000000"
	req := events.APIGatewayV2HTTPRequest{
		RawPath: "/",
		Headers: map[string]string{
			"x-signature-ed25519":   hex.EncodeToString(ed25519.Sign(priv, []byte(ts+body))),
			"x-signature-timestamp": ts,
			"content-type":          "application/json",
		},
		Body: body,
	}
	req.RequestContext.HTTP.Method = http.MethodPost
	if b64 {
		req.Body = base64.StdEncoding.EncodeToString([]byte(body))
		req.IsBase64Encoded = true
	}
	return req
}

func newTestHandler(t *testing.T) (handlerFunc, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	r := discord.NewRouter().Command("ping", func(c *discord.CommandContext) (*discordgo.InteractionResponse, error) {
		return c.ResText("pong"), nil
	})
	b := discord.Bindings{"DISCORD_PUBLIC_KEY": hex.EncodeToString(pub)}
	return newHandler(r, b, zap.NewNop()), priv
}

func TestHandler_Ping(t *testing.T) {
	h, priv := newTestHandler(t)
	for _, b64 := range []bool{false, true} {
		res, err := h(context.Background(), signedEvent(t, priv, `{"type":1}`, b64))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.StatusCode != http.StatusOK || res.Body != `{"type":1}` {
			t.Errorf("b64=%v: expected pong, got %d %s", b64, res.StatusCode, res.Body)
		}
		if res.Headers["Content-Type"] != "application/json" {
			t.Errorf("expected JSON content type, got %v", res.Headers)
		}
	}
}

func TestHandler_BadSignature(t *testing.T) {
	h, priv := newTestHandler(t)
	req := signedEvent(t, priv, `{"type":1}`, false)
	req.Body = `{"type":2}`

	res, _ := h(context.Background(), req)
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", res.StatusCode)
	}
}

func TestHandler_ErrorsBecomeResponses(t *testing.T) {
	h, priv := newTestHandler(t)

	res, err := h(context.Background(), signedEvent(t, priv, `{"type":2,"data":{"name":"nope"}}`, false))
	if err != nil {
		t.Fatalf("lambda handler must not return errors: %v", err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", res.StatusCode)
	}
}

func TestHandler_InvalidBase64(t *testing.T) {
	h, priv := newTestHandler(t)
	req := signedEvent(t, priv, `{"type":1}`, false)
	req.Body, req.IsBase64Encoded = "%%%", true

	res, _ := h(context.Background(), req)
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", res.StatusCode)
	}
}

func TestHandler_Liveness(t *testing.T) {
	h, _ := newTestHandler(t)
	req := events.APIGatewayV2HTTPRequest{RawPath: "/"}
	req.RequestContext.HTTP.Method = http.MethodGet

	res, _ := h(context.Background(), req)
	if res.StatusCode != http.StatusOK || res.Body != discord.Liveness {
		t.Errorf("expected liveness, got %d %q", res.StatusCode, res.Body)
	}
}
