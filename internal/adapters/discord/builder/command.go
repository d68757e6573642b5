// Package builder arma definiciones de slash commands.
//
// Los builders son valores: cada método devuelve una copia nueva, así que se
// puede partir de una base común sin que una rama pise a la otra.
package builder

import (
	"maps"
	"slices"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/discord-interactions/internal/adapters/discord"
)

// Command describe un application command.
type Command struct {
	cmd discordgo.ApplicationCommand
}

// NewCommand: name 1-32 chars, description 1-100 (vacía para USER/MESSAGE).
func NewCommand(name, description string) Command {
	return Command{cmd: discordgo.ApplicationCommand{Name: name, Description: description}}
}

func (c Command) Type(t discordgo.ApplicationCommandType) Command {
	c.cmd.Type = t
	return c
}

func (c Command) GuildID(id string) Command {
	c.cmd.GuildID = id
	return c
}

func (c Command) NameLocalizations(m map[discordgo.Locale]string) Command {
	cp := maps.Clone(m)
	c.cmd.NameLocalizations = &cp
	return c
}

func (c Command) DescriptionLocalizations(m map[discordgo.Locale]string) Command {
	cp := maps.Clone(m)
	c.cmd.DescriptionLocalizations = &cp
	return c
}

func (c Command) DefaultMemberPermissions(p int64) Command {
	c.cmd.DefaultMemberPermissions = &p
	return c
}

func (c Command) DMPermission(v bool) Command {
	c.cmd.DMPermission = &v
	return c
}

func (c Command) NSFW(v bool) Command {
	c.cmd.NSFW = &v
	return c
}

func (c Command) Option(opts ...Option) Command {
	next := slices.Clone(c.cmd.Options)
	for _, o := range opts {
		next = append(next, o.Build())
	}
	c.cmd.Options = next
	return c
}

// Build termina el builder; el resultado no comparte nada mutable con el builder.
func (c Command) Build() *discordgo.ApplicationCommand {
	out := c.cmd
	out.Options = cloneOptions(c.cmd.Options)
	if m := c.cmd.NameLocalizations; m != nil {
		cp := maps.Clone(*m)
		out.NameLocalizations = &cp
	}
	if m := c.cmd.DescriptionLocalizations; m != nil {
		cp := maps.Clone(*m)
		out.DescriptionLocalizations = &cp
	}
	if p := c.cmd.DefaultMemberPermissions; p != nil {
		v := *p
		out.DefaultMemberPermissions = &v
	}
	if p := c.cmd.DMPermission; p != nil {
		v := *p
		out.DMPermission = &v
	}
	if p := c.cmd.NSFW; p != nil {
		v := *p
		out.NSFW = &v
	}
	return &out
}

// ---------- terminales: definición + handler ----------

func (c Command) Handler(h discord.CommandHandler) discord.CommandEntry {
	return discord.CommandEntry{Definition: c.Build(), Handler: h}
}

func (c Command) Res(data *discordgo.InteractionResponseData) discord.CommandEntry {
	return c.Handler(func(cc *discord.CommandContext) (*discordgo.InteractionResponse, error) {
		return cc.Res(data), nil
	})
}

func (c Command) ResText(msg string) discord.CommandEntry {
	return c.Handler(func(cc *discord.CommandContext) (*discordgo.InteractionResponse, error) {
		return cc.ResText(msg), nil
	})
}

func (c Command) ResEmbeds(embeds ...*discordgo.MessageEmbed) discord.CommandEntry {
	return c.Handler(func(cc *discord.CommandContext) (*discordgo.InteractionResponse, error) {
		return cc.ResEmbeds(embeds...), nil
	})
}

// ResDefer contesta deferred y corre task en background; falla si el host no
// tiene executor.
func (c Command) ResDefer(task func(cc *discord.CommandContext) error) discord.CommandEntry {
	return c.Handler(func(cc *discord.CommandContext) (*discordgo.InteractionResponse, error) {
		return cc.ResDefer(task)
	})
}
