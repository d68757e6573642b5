package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"github.com/jose-valero/discord-interactions/internal/domain"
)

// Liveness es el body de GET /.
const Liveness = "Operational🔥"

// DefaultRecordTimeout acota a los recorders cuando no hay background.
const DefaultRecordTimeout = 500 * time.Millisecond

// Recorder recibe cada interacción despachada (log, fan-out). Sus errores se
// loguean y no cortan el dispatch. Con background corren ahí; sin él, en el
// request con DefaultRecordTimeout, así que deben respetar ctx.
type Recorder interface {
	Record(ctx context.Context, e domain.InteractionEvent) error
}

type Router struct {
	registry   Registry
	verify     Verifier
	discordEnv func(Bindings) DiscordEnv
	separator  string
	log        *zap.Logger
	recorders  []Recorder
	recordTTL  time.Duration

	// lo que usa ServeHTTP (host net/http)
	bindings   Bindings
	background Background

	unmarshal func(data []byte, v any) error
	session   func(token string) (*discordgo.Session, error)
}

type Option func(*Router)

func WithVerifier(v Verifier) Option { return func(r *Router) { r.verify = v } }

// WithDiscordEnv pisa los valores leídos de DISCORD_*. Un campo vacío en lo
// que devuelve fn significa "no tocar" (ver mergeDiscordEnv).
func WithDiscordEnv(fn func(Bindings) DiscordEnv) Option {
	return func(r *Router) { r.discordEnv = fn }
}

func WithRegistryMode(m RegistryMode) Option {
	return func(r *Router) { r.registry = NewRegistry(m) }
}

func WithSeparator(sep string) Option {
	return func(r *Router) {
		if sep != "" {
			r.separator = sep
		}
	}
}

func WithLogger(l *zap.Logger) Option { return func(r *Router) { r.log = l } }

func WithRecorder(rec Recorder) Option {
	return func(r *Router) { r.recorders = append(r.recorders, rec) }
}

// WithRecordTimeout cambia el tope de los recorders sincrónicos.
func WithRecordTimeout(d time.Duration) Option {
	return func(r *Router) {
		if d > 0 {
			r.recordTTL = d
		}
	}
}

func WithBindings(b Bindings) Option { return func(r *Router) { r.bindings = b } }

func WithBackground(bg Background) Option { return func(r *Router) { r.background = bg } }

func NewRouter(opts ...Option) *Router {
	r := &Router{
		registry:  NewRegistry(ExactKeys),
		verify:    VerifyEd25519,
		separator: DefaultSeparator,
		recordTTL: DefaultRecordTimeout,
		log:       zap.NewNop(),
		unmarshal: json.Unmarshal,
		session:   newSession,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// ---------- registro ----------

func (r *Router) Command(key string, h CommandHandler) *Router {
	r.registry.Register(KindCommand, key, func(c *Context) (*discordgo.InteractionResponse, error) {
		return h(&CommandContext{c})
	})
	return r
}

// Commands registra entradas armadas con el builder.
func (r *Router) Commands(entries ...CommandEntry) *Router {
	for _, e := range entries {
		r.Command(e.Definition.Name, e.Handler)
	}
	return r
}

func (r *Router) Component(key string, h ComponentHandler) *Router {
	r.registry.Register(KindComponent, key, func(c *Context) (*discordgo.InteractionResponse, error) {
		return h(&ComponentContext{c})
	})
	return r
}

// Autocomplete opcionalmente registra también el handler del comando con la misma key.
func (r *Router) Autocomplete(key string, h AutocompleteHandler, command ...CommandHandler) *Router {
	if len(command) > 0 && command[0] != nil {
		r.Command(key, command[0])
	}
	r.registry.Register(KindAutocomplete, key, func(c *Context) (*discordgo.InteractionResponse, error) {
		return h(&AutocompleteContext{c})
	})
	return r
}

func (r *Router) Modal(key string, h ModalHandler) *Router {
	r.registry.Register(KindModal, key, func(c *Context) (*discordgo.InteractionResponse, error) {
		return h(&ModalContext{c})
	})
	return r
}

// Cron: key es la expresión cron tal como la dispara el scheduler.
func (r *Router) Cron(key string, h CronHandler) *Router {
	r.registry.Register(KindCron, key, func(c *Context) (*discordgo.InteractionResponse, error) {
		return nil, h(&CronContext{c})
	})
	return r
}

// CustomID arma un custom_id que rutea a key con el separador configurado.
func (r *Router) CustomID(key, local string) string {
	return JoinCustomID(key, local, r.separator)
}

// ---------- dispatch ----------

func (r *Router) resolveDiscordEnv(b Bindings) (DiscordEnv, error) {
	var de DiscordEnv
	opts := env.Options{}
	if b != nil {
		opts.Environment = b
	}
	if err := env.ParseWithOptions(&de, opts); err != nil {
		return de, fmt.Errorf("discord env: %w", err)
	}
	if r.discordEnv != nil {
		de = mergeDiscordEnv(de, r.discordEnv(b))
	}
	return de, nil
}

// mergeDiscordEnv aplica override campo a campo. En Go no hay "campo ausente",
// así que vacío deja el valor de base; para borrar uno, sacarlo de los bindings.
func mergeDiscordEnv(base, override DiscordEnv) DiscordEnv {
	if override.ApplicationID != "" {
		base.ApplicationID = override.ApplicationID
	}
	if override.Token != "" {
		base.Token = override.Token
	}
	if override.PublicKey != "" {
		base.PublicKey = override.PublicKey
	}
	return base
}

// Fetch procesa un request. Orden fijo: método → firma → parse → key → handler.
// 401/404/400(tipo desconocido) vuelven como Response; key sin separador,
// handler inexistente, config incompleta y errores del handler vuelven como error.
func (r *Router) Fetch(ctx context.Context, req *http.Request, b Bindings, bg Background) (*Response, error) {
	switch req.Method {
	case http.MethodGet:
		return textResponse(http.StatusOK, Liveness), nil
	case http.MethodPost:
	default:
		return textResponse(http.StatusNotFound, "Not Found"), nil
	}

	de, err := r.resolveDiscordEnv(b)
	if err != nil {
		return nil, err
	}
	if de.PublicKey == "" {
		return nil, &ConfigError{Var: "DISCORD_PUBLIC_KEY"}
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("discord: read body: %w", err)
	}

	ok, err := r.verify(body, req.Header.Get(HeaderSignature), req.Header.Get(HeaderTimestamp), de.PublicKey)
	if err != nil || !ok {
		r.log.Warn("interaction rejected: bad signature", zap.Error(err))
		return textResponse(http.StatusUnauthorized, "Bad Request"), nil
	}

	var i discordgo.Interaction
	if err := r.unmarshal(body, &i); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInteraction, err)
	}

	if i.Type == discordgo.InteractionPing {
		return jsonResponse(http.StatusOK, &discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong})
	}

	key, err := extractKey(&i, r.separator)
	if err != nil {
		return nil, err
	}

	kind, known := kindOf(i.Type)
	if !known {
		return jsonResponse(http.StatusBadRequest, map[string]string{"error": "Unknown Type"})
	}

	h, err := r.registry.Resolve(kind, key)
	if err != nil {
		return nil, err
	}

	c := &Context{
		ctx:         ctx,
		kind:        kind,
		key:         key,
		interaction: &i,
		env:         b,
		discord:     de,
		bg:          bg,
		log:         r.log.With(zap.Stringer("kind", kind), zap.String("key", key)),
		session:     r.session,
	}
	r.record(ctx, c, bg)

	stop := step(r.log, "interaction dispatched", zap.Stringer("kind", kind), zap.String("key", key))
	res, err := h(c)
	stop()
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("discord: %s handler %q returned no response", kind, key)
	}
	return jsonResponse(http.StatusOK, res)
}

// record no agrega esperas al ack: con bg va en background (si bg está lleno
// se descarta); sin bg corre acá con recordTTL.
func (r *Router) record(ctx context.Context, c *Context, bg Background) {
	if len(r.recorders) == 0 {
		return
	}
	e := domain.InteractionEvent{
		ID:         c.interaction.ID,
		Kind:       c.kind.String(),
		Key:        c.key,
		GuildID:    c.GuildID(),
		UserID:     c.UserID(),
		ReceivedAt: time.Now().UTC(),
	}
	if bg != nil {
		err := bg.WaitUntil(func(ctx context.Context) error {
			r.emit(ctx, e)
			return nil
		})
		if err != nil {
			r.log.Warn("interaction not recorded", zap.String("interaction_id", e.ID), zap.Error(err))
		}
		return
	}
	ctx, cancel := context.WithTimeout(ctx, r.recordTTL)
	defer cancel()
	r.emit(ctx, e)
}

func (r *Router) emit(ctx context.Context, e domain.InteractionEvent) {
	for _, rec := range r.recorders {
		if err := rec.Record(ctx, e); err != nil {
			r.log.Warn("recorder failed", zap.String("interaction_id", e.ID), zap.Error(err))
		}
	}
}

// Scheduled corre el handler cron que matchee event.Cron. Con bg corre
// desacoplado y vuelve enseguida; sin bg espera y devuelve el error del handler.
func (r *Router) Scheduled(ctx context.Context, event CronEvent, b Bindings, bg Background) error {
	h, err := r.registry.Resolve(KindCron, event.Cron)
	if err != nil {
		return err
	}
	de, err := r.resolveDiscordEnv(b)
	if err != nil {
		return err
	}

	c := &Context{
		ctx:     ctx,
		kind:    KindCron,
		key:     event.Cron,
		cron:    &event,
		env:     b,
		discord: de,
		bg:      bg,
		log:     r.log.With(zap.Stringer("kind", KindCron), zap.String("key", event.Cron)),
		session: r.session,
	}

	run := func(c *Context) error {
		defer step(r.log, "cron dispatched", zap.String("cron", event.Cron))()
		_, err := h(c)
		return err
	}
	if bg != nil {
		return bg.WaitUntil(func(ctx context.Context) error { return run(c.detached(ctx)) })
	}
	return run(c)
}

// ---------- host net/http ----------

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	res, err := r.Fetch(req.Context(), req, r.bindings, r.background)
	if err != nil {
		res = r.ErrorResponse(err)
	}
	res.Write(w)
}

// ErrorResponse traduce los errores de Fetch a HTTP para hosts que no tienen
// su propio manejo (ServeHTTP, Lambda).
func (r *Router) ErrorResponse(err error) *Response {
	var cfgErr *ConfigError
	var msg string
	status := http.StatusBadRequest

	switch {
	case errors.As(err, &cfgErr):
		r.log.Error("discord env incompleto", zap.String("var", cfgErr.Var), zap.Error(err))
		status, msg = http.StatusInternalServerError, "Internal Server Error"
	case errors.Is(err, ErrMissingSeparator):
		msg = "Bad Custom ID"
	case errors.Is(err, ErrHandlerNotFound):
		msg = "Unknown Handler"
	case errors.Is(err, ErrMalformedInteraction):
		msg = "Malformed Interaction"
	default:
		r.log.Error("interaction handler failed", zap.Error(err))
		status, msg = http.StatusInternalServerError, "Internal Server Error"
	}
	if status == http.StatusBadRequest {
		r.log.Warn("interaction dropped", zap.Error(err))
	}

	res, jerr := jsonResponse(status, map[string]string{"error": msg})
	if jerr != nil {
		return textResponse(http.StatusInternalServerError, "Internal Server Error")
	}
	return res
}
