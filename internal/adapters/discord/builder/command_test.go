package builder

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/discord-interactions/internal/adapters/discord"
)

func TestCommand_BranchesDoNotShareState(t *testing.T) {
	base := NewCommand("stats", "Interaction stats").Option(IntegerOption("days", "Window in days"))

	a := base.Option(BooleanOption("verbose", "More detail"))
	b := base.Option(StringOption("kind", "Filter by kind"))

	if n := len(base.Build().Options); n != 1 {
		t.Fatalf("base mutated: expected 1 option, got %d", n)
	}
	if got := a.Build().Options[1].Name; got != "verbose" {
		t.Errorf("branch a: expected verbose, got %q", got)
	}
	if got := b.Build().Options[1].Name; got != "kind" {
		t.Errorf("branch b: expected kind, got %q", got)
	}
}

func TestCommand_BuildIsDetached(t *testing.T) {
	c := NewCommand("ping", "Pong").Option(StringOption("msg", "Message"))

	built := c.Build()
	built.Options[0] = nil
	built.Name = "changed"

	again := c.Build()
	if again.Name != "ping" || again.Options[0] == nil {
		t.Errorf("builder shares state with a built command: %+v", again)
	}
}

func TestCommand_BuildIsDeep(t *testing.T) {
	c := NewCommand("stats", "Stats").
		DefaultMemberPermissions(discordgo.PermissionManageGuild).
		NameLocalizations(map[discordgo.Locale]string{discordgo.SpanishES: "estadisticas"}).
		Option(
			StringOption("kind", "Kind").Choice("command", "command"),
			SubCommand("top", "Top keys", IntegerOption("limit", "Limit").MinValue(1)),
		)

	built := c.Build()
	built.Options[0].Name = "changed"
	built.Options[0].Choices[0].Name = "changed"
	*built.Options[1].Options[0].MinValue = 99
	*built.DefaultMemberPermissions = 0
	(*built.NameLocalizations)[discordgo.SpanishES] = "changed"

	again := c.Build()
	if got := again.Options[0].Name; got != "kind" {
		t.Errorf("option name leaked into builder: %q", got)
	}
	if got := again.Options[0].Choices[0].Name; got != "command" {
		t.Errorf("choice leaked into builder: %q", got)
	}
	if got := *again.Options[1].Options[0].MinValue; got != 1 {
		t.Errorf("nested min value leaked into builder: %v", got)
	}
	if got := *again.DefaultMemberPermissions; got != discordgo.PermissionManageGuild {
		t.Errorf("permissions leaked into builder: %d", got)
	}
	if got := (*again.NameLocalizations)[discordgo.SpanishES]; got != "estadisticas" {
		t.Errorf("localization leaked into builder: %q", got)
	}
}

func TestCommand_Fields(t *testing.T) {
	locales := map[discordgo.Locale]string{discordgo.SpanishES: "estadisticas"}
	cmd := NewCommand("stats", "Interaction stats").
		GuildID("g1").
		DefaultMemberPermissions(discordgo.PermissionAdministrator).
		DMPermission(false).
		NSFW(false).
		NameLocalizations(locales).
		Build()

	locales[discordgo.SpanishES] = "mutated"

	if cmd.GuildID != "g1" {
		t.Errorf("expected guild g1, got %q", cmd.GuildID)
	}
	if cmd.DefaultMemberPermissions == nil || *cmd.DefaultMemberPermissions != discordgo.PermissionAdministrator {
		t.Errorf("unexpected default permissions: %v", cmd.DefaultMemberPermissions)
	}
	if cmd.DMPermission == nil || *cmd.DMPermission {
		t.Error("expected DM permission false")
	}
	if cmd.NameLocalizations == nil || (*cmd.NameLocalizations)[discordgo.SpanishES] != "estadisticas" {
		t.Errorf("localizations must be copied, got %v", cmd.NameLocalizations)
	}
}

func TestOption_Types(t *testing.T) {
	cases := []struct {
		opt  Option
		want discordgo.ApplicationCommandOptionType
	}{
		{StringOption("a", "a"), discordgo.ApplicationCommandOptionString},
		{IntegerOption("a", "a"), discordgo.ApplicationCommandOptionInteger},
		{NumberOption("a", "a"), discordgo.ApplicationCommandOptionNumber},
		{BooleanOption("a", "a"), discordgo.ApplicationCommandOptionBoolean},
		{UserOption("a", "a"), discordgo.ApplicationCommandOptionUser},
		{ChannelOption("a", "a"), discordgo.ApplicationCommandOptionChannel},
		{RoleOption("a", "a"), discordgo.ApplicationCommandOptionRole},
		{MentionableOption("a", "a"), discordgo.ApplicationCommandOptionMentionable},
		{AttachmentOption("a", "a"), discordgo.ApplicationCommandOptionAttachment},
		{SubCommand("a", "a"), discordgo.ApplicationCommandOptionSubCommand},
		{SubCommandGroup("a", "a"), discordgo.ApplicationCommandOptionSubCommandGroup},
	}
	for _, tc := range cases {
		if got := tc.opt.Build().Type; got != tc.want {
			t.Errorf("expected type %d, got %d", tc.want, got)
		}
	}
}

func TestOption_Constraints(t *testing.T) {
	o := StringOption("color", "Pick a color").
		Required().
		Autocomplete().
		MinLength(1).
		MaxLength(20).
		Build()

	if !o.Required || !o.Autocomplete {
		t.Errorf("expected required+autocomplete, got %+v", o)
	}
	if o.MinLength == nil || *o.MinLength != 1 || o.MaxLength != 20 {
		t.Errorf("unexpected length bounds: min=%v max=%d", o.MinLength, o.MaxLength)
	}

	n := IntegerOption("days", "Window").MinValue(1).MaxValue(30).Choice("week", 7).Choice("month", 30).Build()
	if n.MinValue == nil || *n.MinValue != 1 || n.MaxValue != 30 {
		t.Errorf("unexpected value bounds: min=%v max=%v", n.MinValue, n.MaxValue)
	}
	if len(n.Choices) != 2 || n.Choices[1].Value != 30 {
		t.Errorf("unexpected choices: %+v", n.Choices)
	}
}

func TestOption_ChoiceBranches(t *testing.T) {
	base := StringOption("kind", "Kind").Choice("command", "command")
	a := base.Choice("component", "component")
	_ = base.Choice("modal", "modal")

	if got := a.Build().Choices[1].Name; got != "component" {
		t.Errorf("expected component, got %q", got)
	}
	if n := len(base.Build().Choices); n != 1 {
		t.Errorf("base mutated: %d choices", n)
	}
}

func TestOption_Nested(t *testing.T) {
	group := SubCommandGroup("admin", "Admin tools",
		SubCommand("prune", "Prune the log", IntegerOption("hours", "Older than").Required()),
	).Build()

	if len(group.Options) != 1 || group.Options[0].Name != "prune" {
		t.Fatalf("unexpected nested options: %+v", group.Options)
	}
	if sub := group.Options[0]; len(sub.Options) != 1 || !sub.Options[0].Required {
		t.Errorf("unexpected subcommand options: %+v", sub.Options)
	}
}

func TestTerminals(t *testing.T) {
	entries := []discord.CommandEntry{
		NewCommand("ping", "Pong").ResText("Pong!"),
		NewCommand("about", "About").Res(&discordgo.InteractionResponseData{Content: "about"}),
		NewCommand("card", "Card").ResEmbeds(&discordgo.MessageEmbed{Title: "card"}),
	}

	defs := discord.Definitions(entries)
	if len(defs) != 3 || defs[0].Name != "ping" || defs[2].Name != "card" {
		t.Fatalf("unexpected definitions: %+v", defs)
	}

	res, err := entries[0].Handler(&discord.CommandContext{Context: &discord.Context{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Data.Content != "Pong!" {
		t.Errorf("expected Pong!, got %q", res.Data.Content)
	}
	res, _ = entries[2].Handler(&discord.CommandContext{Context: &discord.Context{}})
	if len(res.Data.Embeds) != 1 || res.Data.Embeds[0].Title != "card" {
		t.Errorf("unexpected embeds: %+v", res.Data.Embeds)
	}
}

func TestResDeferWithoutBackground(t *testing.T) {
	entry := NewCommand("report", "Report").ResDefer(func(*discord.CommandContext) error { return nil })

	_, err := entry.Handler(&discord.CommandContext{Context: &discord.Context{}})
	if !errors.Is(err, discord.ErrNoBackground) {
		t.Errorf("expected ErrNoBackground, got %v", err)
	}
}
