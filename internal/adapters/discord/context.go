package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Context es lo común a todos los handlers de un dispatch. Se crea por request
// y no se comparte.
type Context struct {
	ctx         context.Context
	kind        Kind
	key         string
	interaction *discordgo.Interaction
	cron        *CronEvent
	env         Bindings
	discord     DiscordEnv
	bg          Background
	log         *zap.Logger
	session     func(token string) (*discordgo.Session, error)
}

func (c *Context) Context() context.Context { return c.ctx }

func (c *Context) Kind() Kind { return c.kind }

// Key es la key de ruteo (nombre del comando o prefijo del custom_id).
func (c *Context) Key() string { return c.key }

// Interaction es nil en cron.
func (c *Context) Interaction() *discordgo.Interaction { return c.interaction }

func (c *Context) Env(key string) string { return c.env.Get(key) }

func (c *Context) Discord() DiscordEnv { return c.discord }

func (c *Context) Log() *zap.Logger { return c.log }

// WaitUntil entrega task al executor de background.
func (c *Context) WaitUntil(task func(ctx context.Context) error) error {
	if c.bg == nil {
		return ErrNoBackground
	}
	return c.bg.WaitUntil(task)
}

// detached: misma invocación, otro context.Context (el del background).
func (c *Context) detached(ctx context.Context) *Context {
	cp := *c
	cp.ctx = ctx
	return &cp
}

func (c *Context) GuildID() string {
	if c.interaction == nil {
		return ""
	}
	return c.interaction.GuildID
}

// UserID: en guild viene en member, en DM en user.
func (c *Context) UserID() string {
	if c.interaction == nil {
		return ""
	}
	if c.interaction.Member != nil && c.interaction.Member.User != nil {
		return c.interaction.Member.User.ID
	}
	if c.interaction.User != nil {
		return c.interaction.User.ID
	}
	return ""
}

// HasPermission mira los permisos que Discord manda resueltos en el member.
// Administrator cubre todo.
func (c *Context) HasPermission(perm int64) bool {
	if c.interaction == nil || c.interaction.Member == nil {
		return false
	}
	p := c.interaction.Member.Permissions
	return p&discordgo.PermissionAdministrator != 0 || p&perm == perm
}

// ---------- variantes ----------

type CommandContext struct{ *Context }

func (c *CommandContext) Data() discordgo.ApplicationCommandInteractionData {
	return c.interaction.ApplicationCommandData()
}

// ResDefer responde "pensando…" y deja task corriendo en background.
func (c *CommandContext) ResDefer(task func(c *CommandContext) error) (*discordgo.InteractionResponse, error) {
	err := c.WaitUntil(func(ctx context.Context) error {
		return task(&CommandContext{c.detached(ctx)})
	})
	if err != nil {
		return nil, err
	}
	return &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredChannelMessageWithSource}, nil
}

type ComponentContext struct{ *Context }

func (c *ComponentContext) Data() discordgo.MessageComponentInteractionData {
	return c.interaction.MessageComponentData()
}

// CustomID es la parte local, sin la key.
func (c *ComponentContext) CustomID() string { return c.Data().CustomID }

func (c *ComponentContext) Values() []string { return c.Data().Values }

// ResDeferUpdate: ack sin mensaje nuevo y task en background (editar después).
func (c *ComponentContext) ResDeferUpdate(task func(c *ComponentContext) error) (*discordgo.InteractionResponse, error) {
	err := c.WaitUntil(func(ctx context.Context) error {
		return task(&ComponentContext{c.detached(ctx)})
	})
	if err != nil {
		return nil, err
	}
	return &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate}, nil
}

type AutocompleteContext struct{ *Context }

func (c *AutocompleteContext) Data() discordgo.ApplicationCommandInteractionData {
	return c.interaction.ApplicationCommandData()
}

// Focused devuelve la opción que el usuario está escribiendo.
func (c *AutocompleteContext) Focused() (*discordgo.ApplicationCommandInteractionDataOption, bool) {
	return focused(c.Data().Options)
}

func focused(opts []*discordgo.ApplicationCommandInteractionDataOption) (*discordgo.ApplicationCommandInteractionDataOption, bool) {
	for _, o := range opts {
		if o.Focused {
			return o, true
		}
		if f, ok := focused(o.Options); ok {
			return f, true
		}
	}
	return nil, false
}

type ModalContext struct{ *Context }

func (c *ModalContext) Data() discordgo.ModalSubmitInteractionData {
	return c.interaction.ModalSubmitData()
}

func (c *ModalContext) CustomID() string { return c.Data().CustomID }

// Value busca el valor de un text input por custom_id.
func (c *ModalContext) Value(customID string) (string, bool) {
	return inputValue(c.Data().Components, customID)
}

func inputValue(comps []discordgo.MessageComponent, customID string) (string, bool) {
	for _, comp := range comps {
		switch v := comp.(type) {
		case *discordgo.ActionsRow:
			if s, ok := inputValue(v.Components, customID); ok {
				return s, true
			}
		case discordgo.ActionsRow:
			if s, ok := inputValue(v.Components, customID); ok {
				return s, true
			}
		case *discordgo.TextInput:
			if v.CustomID == customID {
				return v.Value, true
			}
		case discordgo.TextInput:
			if v.CustomID == customID {
				return v.Value, true
			}
		}
	}
	return "", false
}

type CronContext struct{ *Context }

func (c *CronContext) Event() CronEvent { return *c.cron }
