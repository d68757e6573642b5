package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/jose-valero/discord-interactions/internal/adapters/discord"
)

// Discord corta a los 3s; lo síncrono tiene que entrar holgado.
const syncBudget = 2 * time.Second

const (
	msgNoPerms    = "🔒 No tienes permisos para esta acción."
	msgLogOff     = "📴 El interaction log está desactivado."
	maxColorHints = 25
)

// ---------- comandos ----------

func (b *bot) statsCommand(c *discord.CommandContext) (*discordgo.InteractionResponse, error) {
	if !c.HasPermission(discordgo.PermissionManageGuild) {
		return c.ResEphemeral(msgNoPerms), nil
	}
	if b.stats == nil {
		return c.ResEphemeral(msgLogOff), nil
	}
	days, _ := c.IntOption("days")
	kind, _ := c.StringOption("kind")

	ctx, cancel := context.WithTimeout(c.Context.Context(), syncBudget)
	defer cancel()
	msg, err := b.stats.Summary(ctx, c.GuildID(), days, kind)
	if err != nil {
		c.Log().Error("stats failed", zap.Error(err))
		msg = "⚠️ No pude leer las estadísticas: " + err.Error()
	}
	return c.ResEphemeral(msg), nil
}

// reportTask corre después del defer; el resultado reemplaza el "pensando…".
func (b *bot) reportTask(c *discord.CommandContext) error {
	var msg string
	switch {
	case !c.HasPermission(discordgo.PermissionManageGuild):
		msg = msgNoPerms
	case b.stats == nil:
		msg = msgLogOff
	default:
		days, _ := c.IntOption("days")
		var err error
		msg, err = b.stats.Report(c.Context.Context(), c.GuildID(), days, 10)
		if err != nil {
			c.Log().Error("report failed", zap.Error(err))
			msg = "⚠️ No pude armar el reporte: " + err.Error()
		}
	}
	_, err := c.EditOriginal(&discordgo.WebhookEdit{Content: &msg})
	return err
}

func (b *bot) menuCommand(c *discord.CommandContext) (*discordgo.InteractionResponse, error) {
	return c.Res(&discordgo.InteractionResponseData{
		Content:    "Elegí una opción:",
		Components: b.menuComponents(),
	}), nil
}

func (b *bot) feedbackCommand(c *discord.CommandContext) (*discordgo.InteractionResponse, error) {
	// el local id lleva quién abrió el form
	return c.ResModal(b.r.CustomID("feedback", c.UserID()), "Feedback", b.feedbackForm()...), nil
}

func (b *bot) colorCommandHandler(c *discord.CommandContext) (*discordgo.InteractionResponse, error) {
	name, _ := c.StringOption("name")
	return c.ResText("🎨 " + name), nil
}

// ---------- components / autocomplete / modals ----------

func (b *bot) menuClick(c *discord.ComponentContext) (*discordgo.InteractionResponse, error) {
	choice := c.CustomID()
	if vs := c.Values(); choice == "pick" && len(vs) > 0 {
		choice = vs[0]
	}
	return c.ResUpdate(&discordgo.InteractionResponseData{
		Content:    fmt.Sprintf("Elegiste **%s**", choice),
		Components: b.menuComponents(),
	}), nil
}

func (b *bot) colorChoices(c *discord.AutocompleteContext) (*discordgo.InteractionResponse, error) {
	var typed string
	if f, ok := c.Focused(); ok {
		typed = strings.ToLower(strings.TrimSpace(f.StringValue()))
	}
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, maxColorHints)
	for _, name := range palette {
		if strings.HasPrefix(name, typed) {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
		}
		if len(choices) == maxColorHints {
			break
		}
	}
	return c.ResChoices(choices...), nil
}

func (b *bot) feedbackSubmit(c *discord.ModalContext) (*discordgo.InteractionResponse, error) {
	comment, _ := c.Value("comment")
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return c.ResEphemeral("⚠️ El comentario vino vacío."), nil
	}
	c.Log().Info("feedback received",
		zap.String("opened_by", c.CustomID()),
		zap.String("user", c.UserID()),
		zap.Int("len", len(comment)))
	return c.ResEphemeral("🙏 ¡Gracias por el feedback!"), nil
}

// ---------- cron ----------

func (b *bot) prune(c *discord.CronContext) error {
	if b.janitor == nil {
		return nil
	}
	n, err := b.janitor.Prune(c.Context.Context())
	if err != nil {
		return fmt.Errorf("prune interaction log: %w", err)
	}
	c.Log().Info("interaction log pruned",
		zap.Int64("rows", n),
		zap.Duration("retention", b.janitor.Retention()),
		zap.Int64("scheduled_ms", c.Event().ScheduledTime))
	return nil
}
