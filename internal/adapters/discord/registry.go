package discord

import (
	"fmt"
	"regexp"
)

// RegistryMode elige la estrategia de lookup una sola vez, al armar el Router.
type RegistryMode int

const (
	ExactKeys RegistryMode = iota
	PatternKeys
)

// ParseRegistryMode acepta "exact" o "pattern" (REGISTRY_MODE).
func ParseRegistryMode(s string) (RegistryMode, error) {
	switch s {
	case "", "exact":
		return ExactKeys, nil
	case "pattern":
		return PatternKeys, nil
	}
	return ExactKeys, fmt.Errorf("registry mode %q: want exact or pattern", s)
}

// Registry guarda un handler por (kind, key). Se llena al arrancar y después
// solo se lee, por eso no lleva locks.
type Registry interface {
	// Register pisa en silencio lo que hubiera bajo la misma key.
	Register(kind Kind, key string, h Handler)
	// Resolve devuelve ErrHandlerNotFound si nada matchea (también con key "").
	Resolve(kind Kind, key string) (Handler, error)
}

func NewRegistry(mode RegistryMode) Registry {
	if mode == PatternKeys {
		return &patternRegistry{entries: map[Kind][]patternEntry{}}
	}
	return &exactRegistry{handlers: map[Kind]map[string]Handler{}}
}

func notFound(kind Kind, key string) error {
	return fmt.Errorf("%w: %s %q", ErrHandlerNotFound, kind, key)
}

type exactRegistry struct {
	handlers map[Kind]map[string]Handler
}

func (r *exactRegistry) Register(kind Kind, key string, h Handler) {
	m, ok := r.handlers[kind]
	if !ok {
		m = map[string]Handler{}
		r.handlers[kind] = m
	}
	m[key] = h
}

func (r *exactRegistry) Resolve(kind Kind, key string) (Handler, error) {
	if h, ok := r.handlers[kind][key]; ok {
		return h, nil
	}
	return nil, notFound(kind, key)
}

type patternEntry struct {
	re *regexp.Regexp
	h  Handler
}

// patternRegistry: cada key es una regexp; gana la primera registrada que matchee.
type patternRegistry struct {
	entries map[Kind][]patternEntry
}

// Register hace panic con una regexp inválida (igual que regexp.MustCompile):
// solo se llama al componer, antes de servir.
func (r *patternRegistry) Register(kind Kind, key string, h Handler) {
	list := r.entries[kind]
	for i := range list {
		if list[i].re.String() == key {
			list[i].h = h
			return
		}
	}
	r.entries[kind] = append(list, patternEntry{re: regexp.MustCompile(key), h: h})
}

func (r *patternRegistry) Resolve(kind Kind, key string) (Handler, error) {
	for _, e := range r.entries[kind] {
		if e.re.MatchString(key) {
			return e.h, nil
		}
	}
	return nil, notFound(kind, key)
}
