package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/kczek/brewpost/internal/access"
	"github.com/kczek/brewpost/internal/config"
	"github.com/kczek/brewpost/internal/flow"
	"github.com/kczek/brewpost/internal/gen"
	. "github.com/kczek/brewpost/internal/logging"
	"github.com/kczek/brewpost/internal/publish"
	"github.com/kczek/brewpost/internal/session"
	"github.com/kczek/brewpost/internal/storage"
	"github.com/kczek/brewpost/internal/stt"
	"github.com/kczek/brewpost/internal/telegram"
)

const version = "0.1.0"

type cli struct {
	Config string `help:"Path to config file." type:"path"`
	Debug  bool   `help:"Enable debug logging."`

	Run     runCmd     `cmd:"" default:"1" help:"Run the bot."`
	Version versionCmd `cmd:"" help:"Print version and exit."`
}

type versionCmd struct{}

func (v *versionCmd) Run() error {
	fmt.Printf("brewpost %s\n", version)
	return nil
}

type runCmd struct{}

func (r *runCmd) Run(flags *cli) error {
	level := LevelInfo
	if flags.Debug {
		level = LevelDebug
	}
	Init(&Config{Level: level, ShowCaller: true})

	L_info("brewpost %s starting", version)

	cfg, err := config.Load(flags.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !flags.Debug && cfg.Logging.Level == "debug" {
		SetLevel(LevelDebug)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	L_debug("config loaded", "allowedUsers", len(cfg.Telegram.AllowedUsers))

	generator, err := gen.NewOpenAIGenerator(cfg.OpenAI, cfg.Post)
	if err != nil {
		return err
	}

	transcriber, err := stt.NewOpenAIProvider(cfg.OpenAI)
	if err != nil {
		return err
	}

	uploader, err := storage.NewBucketUploader(cfg.Storage)
	if err != nil {
		return err
	}

	instagram, err := publish.NewInstagram(cfg.Publish.Instagram)
	if err != nil {
		return err
	}
	facebook, err := publish.NewFacebook(cfg.Publish.Facebook)
	if err != nil {
		return err
	}

	// Instagram gets the hashtag variant, Facebook the plain caption
	orchestrator := publish.NewOrchestrator(
		publish.Target{Publisher: instagram, Tagged: true},
		publish.Target{Publisher: facebook, Tagged: false},
	)

	controller := flow.New(
		access.NewGate(cfg.Telegram.AllowedUsers),
		session.NewStore(),
		generator,
		transcriber,
		uploader,
		orchestrator,
	)

	bot, err := telegram.New(cfg.Telegram, controller)
	if err != nil {
		return err
	}

	bot.Start()
	L_info("brewpost ready")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	bot.Stop()
	L_info("brewpost stopped")
	return nil
}

func main() {
	var flags cli
	ctx := kong.Parse(&flags,
		kong.Name("brewpost"),
		kong.Description("Turns photos sent over Telegram into ready-to-publish social posts."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(&flags); err != nil {
		fmt.Fprintf(os.Stderr, "brewpost: %v\n", err)
		os.Exit(1)
	}
}
