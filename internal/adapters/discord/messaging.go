package discord

import (
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// ---------- respuestas síncronas (lo que vuelve en el body HTTP) ----------

func (c *Context) Res(data *discordgo.InteractionResponseData) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

func (c *Context) ResText(msg string) *discordgo.InteractionResponse {
	return c.Res(&discordgo.InteractionResponseData{Content: msg})
}

// efímero: solo lo ve quien disparó la interacción
func (c *Context) ResEphemeral(msg string) *discordgo.InteractionResponse {
	return c.Res(&discordgo.InteractionResponseData{
		Content: msg,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

func (c *Context) ResEmbeds(embeds ...*discordgo.MessageEmbed) *discordgo.InteractionResponse {
	return c.Res(&discordgo.InteractionResponseData{Embeds: embeds})
}

// ResUpdate edita el mensaje que tiene el component.
func (c *Context) ResUpdate(data *discordgo.InteractionResponseData) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	}
}

func (c *Context) ResModal(customID, title string, rows ...discordgo.MessageComponent) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: rows,
		},
	}
}

func (c *Context) ResChoices(choices ...*discordgo.ApplicationCommandOptionChoice) *discordgo.InteractionResponse {
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	}
}

// ---------- REST (para después de un defer) ----------

var errNoInteraction = errors.New("discord: no interaction to reply to")

func newSession(token string) (*discordgo.Session, error) {
	auth := strings.TrimSpace(token)
	if auth != "" && !strings.HasPrefix(strings.ToLower(auth), "bot ") {
		auth = "Bot " + auth
	}
	return discordgo.New(auth)
}

func (c *Context) rest() (*discordgo.Session, error) {
	if c.interaction == nil {
		return nil, errNoInteraction
	}
	return c.session(c.discord.Token)
}

// Followup manda un mensaje nuevo con el token de la interacción.
func (c *Context) Followup(params *discordgo.WebhookParams) (*discordgo.Message, error) {
	s, err := c.rest()
	if err != nil {
		return nil, err
	}
	msg, err := s.FollowupMessageCreate(c.interaction, true, params, discordgo.WithContext(c.ctx))
	if err != nil {
		c.log.Error("followup failed", zap.String("key", c.key), zap.Error(err))
	}
	return msg, err
}

// EditOriginal reemplaza la respuesta original (típico después de ResDefer).
func (c *Context) EditOriginal(edit *discordgo.WebhookEdit) (*discordgo.Message, error) {
	s, err := c.rest()
	if err != nil {
		return nil, err
	}
	msg, err := s.InteractionResponseEdit(c.interaction, edit, discordgo.WithContext(c.ctx))
	if err != nil {
		c.log.Error("edit original failed", zap.String("key", c.key), zap.Error(err))
	}
	return msg, err
}
