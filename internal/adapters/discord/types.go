package discord

import (
	"context"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
)

// Kind es la partición del registry; coincide con el type de la interacción
// salvo cron, que no tiene type en Discord.
type Kind uint8

const (
	KindCron         Kind = 0
	KindCommand      Kind = Kind(discordgo.InteractionApplicationCommand)
	KindComponent    Kind = Kind(discordgo.InteractionMessageComponent)
	KindAutocomplete Kind = Kind(discordgo.InteractionApplicationCommandAutocomplete)
	KindModal        Kind = Kind(discordgo.InteractionModalSubmit)
)

func (k Kind) String() string {
	switch k {
	case KindCron:
		return "cron"
	case KindCommand:
		return "command"
	case KindComponent:
		return "component"
	case KindAutocomplete:
		return "autocomplete"
	case KindModal:
		return "modal"
	}
	return "unknown"
}

// kindOf mapea el type de la interacción a su partición (ping y desconocidos no tienen).
func kindOf(t discordgo.InteractionType) (Kind, bool) {
	switch t {
	case discordgo.InteractionApplicationCommand:
		return KindCommand, true
	case discordgo.InteractionMessageComponent:
		return KindComponent, true
	case discordgo.InteractionApplicationCommandAutocomplete:
		return KindAutocomplete, true
	case discordgo.InteractionModalSubmit:
		return KindModal, true
	}
	return 0, false
}

// Handler es la forma uniforme que guarda el registry; los handlers tipados
// se envuelven al registrarse.
type Handler func(c *Context) (*discordgo.InteractionResponse, error)

type CommandHandler func(c *CommandContext) (*discordgo.InteractionResponse, error)

type ComponentHandler func(c *ComponentContext) (*discordgo.InteractionResponse, error)

type AutocompleteHandler func(c *AutocompleteContext) (*discordgo.InteractionResponse, error)

type ModalHandler func(c *ModalContext) (*discordgo.InteractionResponse, error)

type CronHandler func(c *CronContext) error

// CommandEntry junta la definición de un slash command con su handler.
type CommandEntry struct {
	Definition *discordgo.ApplicationCommand
	Handler    CommandHandler
}

// Definitions devuelve lo que hay que subir a Discord para estas entradas.
func Definitions(entries []CommandEntry) []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Definition)
	}
	return out
}

// CronEvent describe un disparo del scheduler.
type CronEvent struct {
	Cron          string `json:"cron"`
	Type          string `json:"type"`
	ScheduledTime int64  `json:"scheduledTime"` // unix ms
}

// Bindings son las variables de entorno visibles para un dispatch.
// nil significa el entorno del proceso.
type Bindings map[string]string

// OSBindings captura el entorno actual del proceso.
func OSBindings() Bindings {
	return Bindings(env.ToMap(os.Environ()))
}

func (b Bindings) Get(key string) string {
	if b == nil {
		return os.Getenv(key)
	}
	return b[key]
}

// DiscordEnv: credenciales de la app. Todas opcionales salvo PublicKey al verificar.
type DiscordEnv struct {
	ApplicationID string `env:"DISCORD_APPLICATION_ID"`
	Token         string `env:"DISCORD_TOKEN"`
	PublicKey     string `env:"DISCORD_PUBLIC_KEY"`
}

// Background corre trabajo que sobrevive a la respuesta HTTP (waitUntil).
type Background interface {
	// WaitUntil no bloquea: si no puede aceptar task devuelve error.
	WaitUntil(task func(ctx context.Context) error) error
}
