package discord

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestSplitCustomID(t *testing.T) {
	cases := []struct {
		id, key, local string
	}{
		{"menu/42", "menu", "42"},
		{"queue/join/now", "queue", "join/now"},
		{"menu/", "menu", ""},
		{"/42", "", "42"},
	}
	for _, tc := range cases {
		key, local, err := SplitCustomID(tc.id, "/")
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.id, err)
		}
		if key != tc.key || local != tc.local {
			t.Errorf("%q: expected (%q, %q), got (%q, %q)", tc.id, tc.key, tc.local, key, local)
		}
	}
}

func TestSplitCustomID_MissingSeparator(t *testing.T) {
	_, _, err := SplitCustomID("menu", "/")
	if !errors.Is(err, ErrMissingSeparator) {
		t.Fatalf("expected ErrMissingSeparator, got %v", err)
	}
}

func TestExtractKey_Command(t *testing.T) {
	i := &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: "ping"},
	}
	key, err := extractKey(i, "/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "ping" {
		t.Errorf("expected key %q, got %q", "ping", key)
	}
}

func TestExtractKey_ComponentRewritesCustomID(t *testing.T) {
	i := &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{CustomID: "menu/42", ComponentType: discordgo.ButtonComponent},
	}
	key, err := extractKey(i, "/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "menu" {
		t.Errorf("expected key %q, got %q", "menu", key)
	}
	if got := i.MessageComponentData().CustomID; got != "42" {
		t.Errorf("expected custom_id rewritten to %q, got %q", "42", got)
	}
}

func TestExtractKey_ModalRewritesCustomID(t *testing.T) {
	i := &discordgo.Interaction{
		Type: discordgo.InteractionModalSubmit,
		Data: discordgo.ModalSubmitInteractionData{CustomID: "feedback::form-1"},
	}
	key, err := extractKey(i, "::")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "feedback" {
		t.Errorf("expected key %q, got %q", "feedback", key)
	}
	if got := i.ModalSubmitData().CustomID; got != "form-1" {
		t.Errorf("expected custom_id %q, got %q", "form-1", got)
	}
}

func TestExtractKey_ComponentWithoutSeparatorFails(t *testing.T) {
	i := &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{CustomID: "menu"},
	}
	_, err := extractKey(i, "/")
	if !errors.Is(err, ErrMissingSeparator) {
		t.Fatalf("expected ErrMissingSeparator, got %v", err)
	}
	if got := i.MessageComponentData().CustomID; got != "menu" {
		t.Errorf("custom_id must stay untouched on failure, got %q", got)
	}
}

func TestExtractKey_UnknownTypeIsEmpty(t *testing.T) {
	key, err := extractKey(&discordgo.Interaction{Type: 42}, "/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "" {
		t.Errorf("expected empty key, got %q", key)
	}
}
