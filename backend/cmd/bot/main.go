package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"party-planner/backend/internal/discord"
	"party-planner/backend/internal/services"
	"party-planner/backend/pkg/config"
	apperrors "party-planner/backend/pkg/errors"
	"party-planner/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting Discord bot...")

	if err := requireToken(cfg); err != nil {
		log.Fatal("Discord bot cannot start", zap.Error(err))
	}

	sm, err := services.NewServiceManager(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer sm.Close()

	// Create Discord session
	dg, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		log.Fatal("Failed to create Discord session", zap.Error(err))
	}

	handler := discord.NewHandler(sm.Pipeline, cfg.DiscordCommandPrefix, cfg.Location(), cfg.PlanTimeout, log.Named("discord"))
	dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		handler.HandleMessage(s, m)
	})

	// MessageContent is privileged and must be enabled for the bot in the developer portal
	dg.Identify.Intents = botIntents

	if err := dg.Open(); err != nil {
		log.Fatal("Failed to open Discord connection", zap.Error(err))
	}
	defer dg.Close()

	log.Info("Discord bot is running. Press CTRL-C to exit.",
		zap.String("prefix", cfg.DiscordCommandPrefix),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-quit

	log.Info("Shutting down Discord bot...")
}

const botIntents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

func requireToken(cfg *config.Config) error {
	if cfg.DiscordBotToken == "" {
		return apperrors.NewConfigMissingRequired("DISCORD_BOT_TOKEN")
	}
	return nil
}
