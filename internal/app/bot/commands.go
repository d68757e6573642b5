package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/discord-interactions/internal/adapters/discord"
	"github.com/jose-valero/discord-interactions/internal/adapters/discord/builder"
	"github.com/jose-valero/discord-interactions/internal/app/service"
)

var kindChoices = []string{"command", "component", "autocomplete", "modal", "cron"}

func daysOption() builder.Option {
	return builder.IntegerOption("days", "Ventana en días (default 7)").
		MinValue(1).
		MaxValue(service.MaxStatsDays)
}

// admin: sólo quien pueda gestionar el server ve el comando
func adminCommand(name, description string) builder.Command {
	return builder.NewCommand(name, description).
		DefaultMemberPermissions(discordgo.PermissionManageGuild).
		DMPermission(false)
}

func (b *bot) commands() []discord.CommandEntry {
	kind := builder.StringOption("kind", "Filtrar por tipo")
	for _, k := range kindChoices {
		kind = kind.Choice(k, k)
	}

	return []discord.CommandEntry{
		builder.NewCommand("ping", "Responde Pong").
			ResText("🏓 Pong!"),

		adminCommand("stats", "Interacciones recibidas (admins)").
			Option(daysOption(), kind).
			Handler(b.statsCommand),

		adminCommand("report", "Top de interacciones (tarda un poco)").
			Option(daysOption()).
			ResDefer(b.reportTask),

		builder.NewCommand("menu", "Muestra el menú de prueba").
			Handler(b.menuCommand),

		builder.NewCommand("feedback", "Mandanos un comentario").
			Handler(b.feedbackCommand),
	}
}

// color va aparte: se registra junto con su autocomplete.
func (b *bot) colorCommand() discord.CommandEntry {
	return builder.NewCommand("color", "Elegí un color").
		Option(builder.StringOption("name", "Color").Required().Autocomplete()).
		Handler(b.colorCommandHandler)
}
