package main

import (
	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jose-valero/discord-interactions/internal/app/bot"
)

var registerDryRun bool

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Sube los slash commands a Discord",
	Long: `Reemplaza (bulk overwrite) los comandos de la app. Con DISCORD_GUILD_ID
se registran en ese guild (instantáneo); sin él, globales.`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().BoolVar(&registerDryRun, "dry-run", false, "sólo listar lo que se subiría")
}

func runRegister(cmd *cobra.Command, _ []string) error {
	defs := bot.Definitions()
	if registerDryRun {
		for _, d := range defs {
			cmd.Printf("/%s  %s\n", d.Name, d.Description)
		}
		return nil
	}
	if err := cfg.RegisterReady(); err != nil {
		return err
	}

	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return err
	}
	got, err := s.ApplicationCommandBulkOverwrite(cfg.DiscordApplicationID, cfg.DiscordGuildID, defs, discordgo.WithContext(cmd.Context()))
	if err != nil {
		return err
	}

	scope := "global"
	if cfg.DiscordGuildID != "" {
		scope = "guild " + cfg.DiscordGuildID
	}
	log.Info("✅ comandos registrados", zap.String("scope", scope), zap.Int("count", len(got)))
	return nil
}
