// Package telegram provides the Telegram transport adapter for brewpost.
package telegram

import (
	"context"
	"fmt"
	"os"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/kczek/brewpost/internal/config"
	"github.com/kczek/brewpost/internal/flow"
	. "github.com/kczek/brewpost/internal/logging"
	"github.com/kczek/brewpost/internal/media"
)

// Bot bridges Telegram updates into normalized flow events and sends the
// controller's single reply back.
type Bot struct {
	bot        *tele.Bot
	controller *flow.Controller

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Telegram bot
func New(cfg config.TelegramConfig, controller *flow.Controller) (*Bot, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram bot token not configured")
	}

	pref := tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	L_debug("telegram: creating bot", "tokenLength", len(cfg.BotToken))

	bot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	L_debug("telegram: bot created",
		"username", bot.Me.Username,
		"id", bot.Me.ID,
	)

	ctx, cancel := context.WithCancel(context.Background())

	b := &Bot{
		bot:        bot,
		controller: controller,
		ctx:        ctx,
		cancel:     cancel,
	}

	b.setupHandlers()
	L_debug("telegram: handlers registered")

	return b, nil
}

// setupHandlers registers message handlers
func (b *Bot) setupHandlers() {
	b.bot.Handle("/start", func(c tele.Context) error {
		return b.dispatch(c, flow.Event{Kind: flow.KindStart})
	})

	b.bot.Handle(tele.OnPhoto, b.handlePhoto)
	b.bot.Handle(tele.OnVoice, b.handleVoice)
	b.bot.Handle(tele.OnText, b.handleText)
}

// handleText handles incoming text messages
func (b *Bot) handleText(c tele.Context) error {
	if b.skipGroup(c) {
		return nil
	}

	L_debug("telegram: text received",
		"userID", c.Sender().ID,
		"text", truncate(c.Text(), 50),
	)

	return b.dispatch(c, flow.Event{Kind: flow.KindText, Text: c.Text()})
}

// handlePhoto downloads the photo to a temp file and hands the path plus
// any caption to the flow.
func (b *Bot) handlePhoto(c tele.Context) error {
	if b.skipGroup(c) {
		return nil
	}

	photo := c.Message().Photo
	if photo == nil {
		L_warn("telegram: photo message but no photo found")
		return nil
	}

	L_debug("telegram: photo received",
		"userID", c.Sender().ID,
		"fileID", photo.FileID,
		"width", photo.Width,
		"height", photo.Height,
	)

	_ = c.Notify(tele.Typing)

	path, err := media.SavePhoto(b.bot, photo)
	if err != nil {
		L_error("telegram: failed to download photo", "error", err)
		return c.Send("Sorry, I couldn't process that image.")
	}

	return b.dispatch(c, flow.Event{
		Kind:      flow.KindMedia,
		MediaPath: path,
		Caption:   c.Message().Caption,
	})
}

// handleVoice downloads the voice clip for transcription. The temp file
// is removed once the flow has handled the event.
func (b *Bot) handleVoice(c tele.Context) error {
	if b.skipGroup(c) {
		return nil
	}

	voice := c.Message().Voice
	if voice == nil {
		L_warn("telegram: voice message but no clip found")
		return nil
	}

	L_debug("telegram: voice received",
		"userID", c.Sender().ID,
		"duration", voice.Duration,
	)

	_ = c.Notify(tele.Typing)

	path, err := media.SaveVoice(b.bot, voice)
	if err != nil {
		L_error("telegram: failed to download voice clip", "error", err)
		return c.Send("Sorry, I couldn't process that voice note.")
	}
	defer os.Remove(path)

	return b.dispatch(c, flow.Event{Kind: flow.KindVoice, VoicePath: path})
}

// dispatch fills in the sender identity, runs the controller, and sends
// the reply. The typing indicator covers the blocking external calls.
func (b *Bot) dispatch(c tele.Context, ev flow.Event) error {
	ev.Identity = c.Sender().ID

	_ = c.Notify(tele.Typing)

	reply := b.controller.Handle(b.ctx, ev)
	if reply == "" {
		return nil
	}
	return c.Send(reply)
}

// skipGroup ignores group chats; the bot serves a single operator account.
func (b *Bot) skipGroup(c tele.Context) bool {
	if c.Chat().Type != tele.ChatPrivate {
		L_debug("telegram: ignoring group message", "chatID", c.Chat().ID)
		return true
	}
	return false
}

// Start starts the bot polling
func (b *Bot) Start() {
	L_info("starting telegram bot", "username", b.bot.Me.Username)
	go b.bot.Start()
}

// Stop stops the bot
func (b *Bot) Stop() {
	L_info("stopping telegram bot")
	b.cancel()
	b.bot.Stop()
}

// truncate truncates a string to maxLen characters
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
