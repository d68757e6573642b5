package builder

import (
	"maps"
	"slices"

	"github.com/bwmarrin/discordgo"
)

// Option es una opción de comando de cualquier tipo. Los métodos que no aplican
// al tipo no se validan acá; Discord los rechaza al registrar.
type Option struct {
	opt discordgo.ApplicationCommandOption
}

func newOption(t discordgo.ApplicationCommandOptionType, name, description string) Option {
	return Option{opt: discordgo.ApplicationCommandOption{Type: t, Name: name, Description: description}}
}

func SubCommand(name, description string, opts ...Option) Option {
	return newOption(discordgo.ApplicationCommandOptionSubCommand, name, description).Options(opts...)
}

func SubCommandGroup(name, description string, subs ...Option) Option {
	return newOption(discordgo.ApplicationCommandOptionSubCommandGroup, name, description).Options(subs...)
}

func StringOption(name, description string) Option {
	return newOption(discordgo.ApplicationCommandOptionString, name, description)
}

func IntegerOption(name, description string) Option {
	return newOption(discordgo.ApplicationCommandOptionInteger, name, description)
}

func NumberOption(name, description string) Option {
	return newOption(discordgo.ApplicationCommandOptionNumber, name, description)
}

func BooleanOption(name, description string) Option {
	return newOption(discordgo.ApplicationCommandOptionBoolean, name, description)
}

func UserOption(name, description string) Option {
	return newOption(discordgo.ApplicationCommandOptionUser, name, description)
}

func ChannelOption(name, description string) Option {
	return newOption(discordgo.ApplicationCommandOptionChannel, name, description)
}

func RoleOption(name, description string) Option {
	return newOption(discordgo.ApplicationCommandOptionRole, name, description)
}

func MentionableOption(name, description string) Option {
	return newOption(discordgo.ApplicationCommandOptionMentionable, name, description)
}

func AttachmentOption(name, description string) Option {
	return newOption(discordgo.ApplicationCommandOptionAttachment, name, description)
}

func (o Option) Required() Option {
	o.opt.Required = true
	return o
}

func (o Option) Autocomplete() Option {
	o.opt.Autocomplete = true
	return o
}

func (o Option) NameLocalizations(m map[discordgo.Locale]string) Option {
	o.opt.NameLocalizations = maps.Clone(m)
	return o
}

func (o Option) DescriptionLocalizations(m map[discordgo.Locale]string) Option {
	o.opt.DescriptionLocalizations = maps.Clone(m)
	return o
}

// Choice agrega una opción fija (string para String, número para Integer/Number).
func (o Option) Choice(name string, value any) Option {
	o.opt.Choices = append(slices.Clone(o.opt.Choices), &discordgo.ApplicationCommandOptionChoice{Name: name, Value: value})
	return o
}

func (o Option) MinLength(n int) Option {
	o.opt.MinLength = &n
	return o
}

func (o Option) MaxLength(n int) Option {
	o.opt.MaxLength = n
	return o
}

func (o Option) MinValue(v float64) Option {
	o.opt.MinValue = &v
	return o
}

func (o Option) MaxValue(v float64) Option {
	o.opt.MaxValue = v
	return o
}

func (o Option) ChannelTypes(types ...discordgo.ChannelType) Option {
	o.opt.ChannelTypes = slices.Clone(types)
	return o
}

// Options anida opciones (subcommands y groups).
func (o Option) Options(opts ...Option) Option {
	next := slices.Clone(o.opt.Options)
	for _, sub := range opts {
		next = append(next, sub.Build())
	}
	o.opt.Options = next
	return o
}

// Build devuelve una copia profunda: tocar el resultado no afecta al builder.
func (o Option) Build() *discordgo.ApplicationCommandOption {
	return cloneOption(&o.opt)
}

func cloneOptions(opts []*discordgo.ApplicationCommandOption) []*discordgo.ApplicationCommandOption {
	if opts == nil {
		return nil
	}
	out := make([]*discordgo.ApplicationCommandOption, len(opts))
	for i, o := range opts {
		if o != nil {
			out[i] = cloneOption(o)
		}
	}
	return out
}

func cloneOption(o *discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	out := *o
	out.NameLocalizations = maps.Clone(o.NameLocalizations)
	out.DescriptionLocalizations = maps.Clone(o.DescriptionLocalizations)
	out.ChannelTypes = slices.Clone(o.ChannelTypes)
	out.Options = cloneOptions(o.Options)
	if o.MinLength != nil {
		n := *o.MinLength
		out.MinLength = &n
	}
	if o.MinValue != nil {
		v := *o.MinValue
		out.MinValue = &v
	}
	if o.Choices != nil {
		out.Choices = make([]*discordgo.ApplicationCommandOptionChoice, len(o.Choices))
		for i, ch := range o.Choices {
			if ch == nil {
				continue
			}
			cp := *ch
			cp.NameLocalizations = maps.Clone(ch.NameLocalizations)
			out.Choices[i] = &cp
		}
	}
	return &out
}
