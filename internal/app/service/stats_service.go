package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	DefaultStatsDays = 7
	MaxStatsDays     = 90
)

type StatsService struct {
	log InteractionLog
	now func() time.Time
}

func NewStatsService(l InteractionLog) *StatsService {
	return &StatsService{log: l, now: time.Now}
}

func clampDays(days int) int {
	if days <= 0 {
		return DefaultStatsDays
	}
	return min(days, MaxStatsDays)
}

// Summary: conteo por tipo de interacción en los últimos days días.
// kind vacío = todos.
func (s *StatsService) Summary(ctx context.Context, guildID string, days int, kind string) (string, error) {
	days = clampDays(days)
	var kinds []string
	if kind != "" {
		kinds = []string{kind}
	}

	counts, err := s.log.CountByKind(ctx, guildID, s.now().Add(-time.Duration(days)*24*time.Hour), kinds)
	if err != nil {
		return "", err
	}
	if len(counts) == 0 {
		return fmt.Sprintf("📭 Sin interacciones en los últimos %d días.", days), nil
	}

	names := make([]string, 0, len(counts))
	var total int64
	for k, n := range counts {
		names = append(names, k)
		total += n
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "**Interacciones (últimos %d días)**\n", days)
	for _, k := range names {
		fmt.Fprintf(&b, "• %s: **%d**\n", k, counts[k])
	}
	fmt.Fprintf(&b, "Total: **%d**", total)
	return b.String(), nil
}

// Report: las keys más usadas; es lo que corre en background para /report.
func (s *StatsService) Report(ctx context.Context, guildID string, days, limit int) (string, error) {
	days = clampDays(days)
	if limit <= 0 {
		limit = 10
	}
	top, err := s.log.TopKeys(ctx, guildID, s.now().Add(-time.Duration(days)*24*time.Hour), limit)
	if err != nil {
		return "", err
	}
	if len(top) == 0 {
		return fmt.Sprintf("📭 Nada para reportar en los últimos %d días.", days), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Top %d (últimos %d días)**\n", len(top), days)
	for i, kc := range top {
		fmt.Fprintf(&b, "%d. `%s` (%s) · **%d**\n", i+1, kc.Key, kc.Kind, kc.Count)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
