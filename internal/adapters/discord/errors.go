package discord

import (
	"errors"
	"fmt"
)

var (
	// no hay handler para (kind, key)
	ErrHandlerNotFound = errors.New("handler not found")
	// custom_id de component/modal sin separador: nunca usamos el id entero como key
	ErrMissingSeparator = errors.New("custom_id has no key separator")
	// body verificado pero no es una interacción válida
	ErrMalformedInteraction = errors.New("malformed interaction")
	// se pidió un defer pero no hay dónde correr el trabajo después de responder
	ErrNoBackground = errors.New("no background executor for deferred work")
)

// ConfigError: falta una variable de entorno obligatoria. Es un error de deploy,
// no del request.
type ConfigError struct {
	Var string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("discord: faltante env %s", e.Var)
}
