// Package bot arma el Router de la app: comandos, components, modals y el cron
// de limpieza, todos colgados de los servicios de internal/app/service.
package bot

import (
	"regexp"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/jose-valero/discord-interactions/internal/adapters/discord"
	"github.com/jose-valero/discord-interactions/internal/app/service"
)

// PruneSchedule es la expresión cron del janitor. El scheduler (o EventBridge)
// tiene que disparar exactamente esta expresión.
const PruneSchedule = "0 3 * * *"

type Deps struct {
	// nil si no hay DATABASE_URL: stats/report avisan y el cron no hace nada
	Stats   *service.StatsService
	Janitor *service.JanitorService

	MenuRateLimit time.Duration
	Log           *zap.Logger
}

type bot struct {
	r       *discord.Router
	stats   *service.StatsService
	janitor *service.JanitorService
	limiter *userLimiter
	log     *zap.Logger
	pattern bool
}

// New devuelve el Router con todos los handlers registrados. opts van después
// del modo y el logger, así que pueden pisar el logger pero no el modo.
func New(deps Deps, mode discord.RegistryMode, opts ...discord.Option) *discord.Router {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	base := []discord.Option{discord.WithLogger(log)}
	base = append(base, opts...)
	base = append(base, discord.WithRegistryMode(mode))

	b := &bot{
		r:       discord.NewRouter(base...),
		stats:   deps.Stats,
		janitor: deps.Janitor,
		limiter: newUserLimiter(deps.MenuRateLimit),
		log:     log,
		pattern: mode == discord.PatternKeys,
	}
	b.register()
	return b.r
}

// Definitions: lo que `register` sube a Discord.
func Definitions() []*discordgo.ApplicationCommand {
	b := &bot{r: discord.NewRouter(), limiter: newUserLimiter(0), log: zap.NewNop()}
	return discord.Definitions(append(b.commands(), b.colorCommand()))
}

// key: en modo pattern las keys fijas se anclan para no matchear por prefijo.
func (b *bot) key(s string) string {
	if !b.pattern {
		return s
	}
	return "^" + regexp.QuoteMeta(s) + "$"
}

func (b *bot) register() {
	cmds := b.commands()
	if b.pattern {
		for _, e := range cmds {
			b.r.Command(b.key(e.Definition.Name), e.Handler)
		}
	} else {
		b.r.Commands(cmds...)
	}

	color := b.colorCommand()
	b.r.
		Autocomplete(b.key("color"), b.colorChoices, color.Handler).
		Component(b.key("menu"), limited(b.limiter, b.menuClick)).
		Modal(b.key("feedback"), b.feedbackSubmit).
		Cron(b.key(PruneSchedule), b.prune)
}
