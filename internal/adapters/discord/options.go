package discord

import "github.com/bwmarrin/discordgo"

// Acceso a opciones de slash commands. Busca en el primer nivel y dentro del
// subcommand (un solo nivel, no usamos groups).

func findOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string, typ discordgo.ApplicationCommandOptionType) (*discordgo.ApplicationCommandInteractionDataOption, bool) {
	for _, o := range opts {
		if o.Name == name && o.Type == typ {
			return o, true
		}
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			for _, so := range o.Options {
				if so.Name == name && so.Type == typ {
					return so, true
				}
			}
		}
	}
	return nil, false
}

func (c *CommandContext) StringOption(name string) (string, bool) {
	o, ok := findOption(c.Data().Options, name, discordgo.ApplicationCommandOptionString)
	if !ok {
		return "", false
	}
	return o.StringValue(), true
}

func (c *CommandContext) BoolOption(name string) (bool, bool) {
	o, ok := findOption(c.Data().Options, name, discordgo.ApplicationCommandOptionBoolean)
	if !ok {
		return false, false
	}
	return o.BoolValue(), true
}

func (c *CommandContext) IntOption(name string) (int, bool) {
	o, ok := findOption(c.Data().Options, name, discordgo.ApplicationCommandOptionInteger)
	if !ok {
		return 0, false
	}
	return int(o.IntValue()), true
}

func (c *CommandContext) Subcommand() (string, bool) {
	for _, o := range c.Data().Options {
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			return o.Name, true
		}
	}
	return "", false
}
