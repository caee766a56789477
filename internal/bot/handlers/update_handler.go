package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/cogisbot/internal/conversation"
	"github.com/edgard/cogisbot/internal/settings"
)

// NewUpdateHandler returns the default handler: every update not claimed by
// a registered command or callback handler lands here. It dispatches inline
// queries and chosen results, and runs the conversation state machine for
// plain text messages.
func NewUpdateHandler(deps HandlerDeps) bot.HandlerFunc {
	return updateHandler{deps}.Handle
}

type updateHandler struct {
	deps HandlerDeps
}

func (h updateHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	switch {
	case update.InlineQuery != nil:
		h.handleInlineQuery(ctx, b, update.InlineQuery)
	case update.ChosenInlineResult != nil:
		h.handleChosenInlineResult(ctx, update.ChosenInlineResult)
	case update.Message != nil:
		h.handleMessage(ctx, b, update.Message)
	}
}

// handleMessage implements the per-user state machine for free text: pending
// settings edits, unknown commands, mention artifacts, and searches.
func (h updateHandler) handleMessage(ctx context.Context, b *bot.Bot, msg *models.Message) {
	log := h.deps.Logger.With("handler", "message")

	if msg.From == nil || msg.Text == "" {
		return
	}

	if msg.Chat.Type != models.ChatTypePrivate {
		log.InfoContext(ctx, "Leaving non-private chat", "chat_id", msg.Chat.ID, "chat_type", msg.Chat.Type)
		if _, err := b.LeaveChat(ctx, &bot.LeaveChatParams{ChatID: msg.Chat.ID}); err != nil {
			log.ErrorContext(ctx, "Failed to leave chat", "error", err, "chat_id", msg.Chat.ID)
		}
		return
	}

	// Messages relayed through an inline bot are echoes of our own
	// results, not user input.
	if msg.ViaBot != nil {
		return
	}

	userID := msg.From.ID
	text := strings.TrimSpace(msg.Text)

	// First contact creates the Default entry before any other check.
	state := h.deps.States.Get(userID)

	if state.Editing() {
		h.completeEdit(ctx, b, msg, text)
		return
	}

	switch {
	case strings.HasPrefix(text, "/"):
		// Known commands are claimed by registered handlers before the
		// default handler runs, so anything arriving here is unknown.
		h.reply(ctx, b, msg, fmt.Sprintf(h.deps.Config.Messages.CommandNotFound, text))
	case strings.HasPrefix(text, "@"):
		// Mention/via-bot artifact, deliberately ignored.
	default:
		h.handleSearch(ctx, b, msg, text)
	}
}

// completeEdit consumes the pending edit state: the message text becomes the
// new value of the settings field selected by the state. Non-admins are
// rejected and reverted to Default.
func (h updateHandler) completeEdit(ctx context.Context, b *bot.Bot, msg *models.Message, value string) {
	log := h.deps.Logger.With("handler", "edit")
	userID := msg.From.ID

	// Swap consumes the edit state exactly once even under concurrent
	// messages from the same user.
	state := h.deps.States.Swap(userID, conversation.StateDefault)
	if !state.Editing() {
		h.handleSearch(ctx, b, msg, value)
		return
	}

	if !h.deps.Settings.IsAdmin(userID) {
		log.WarnContext(ctx, "Non-admin in edit state", "user_id", userID, "state", state)
		h.reply(ctx, b, msg, h.deps.Config.Messages.NotAuthorized)
		return
	}

	var (
		mutate  func(*settings.Settings)
		confirm string
	)
	switch state {
	case conversation.StateEditBrandName:
		mutate = func(s *settings.Settings) { s.Name = value }
		confirm = h.deps.Config.Messages.NameSaved
	case conversation.StateEditBrandURL:
		mutate = func(s *settings.Settings) { s.URL = value }
		confirm = h.deps.Config.Messages.URLSaved
	case conversation.StateEditGeocoderURL:
		mutate = func(s *settings.Settings) { s.GeocoderURL = value }
		confirm = h.deps.Config.Messages.GeocoderSaved
	case conversation.StateEditCadastreURL:
		mutate = func(s *settings.Settings) { s.CadastreURL = value }
		confirm = h.deps.Config.Messages.CadastreSaved
	default:
		return
	}

	if err := h.deps.Settings.Update(mutate); err != nil {
		log.ErrorContext(ctx, "Failed to persist settings edit", "error", err, "user_id", userID, "state", state)
		h.reply(ctx, b, msg, h.deps.Config.Messages.GeneralError)
		return
	}

	log.InfoContext(ctx, "Settings updated", "user_id", userID, "state", state)
	h.reply(ctx, b, msg, fmt.Sprintf(confirm, value))
}

// handleSearch forwards the query to the aggregator and sends each channel's
// result as its own message: a formatted list, a "not found" note, or an
// "unavailable" note. A failing channel never suppresses the others.
func (h updateHandler) handleSearch(ctx context.Context, b *bot.Bot, msg *models.Message, query string) {
	log := h.deps.Logger.With("handler", "search")
	chatID := msg.Chat.ID

	h.reply(ctx, b, msg, fmt.Sprintf(h.deps.Config.Messages.SearchStarted, query))
	h.typing(ctx, b, chatID)

	result := h.deps.Aggregator.Resolve(ctx, query)
	cfg := h.deps.Settings.Get()
	messages := h.deps.Config.Messages

	if !result.Maps.Skipped {
		if len(result.Maps.Items) == 0 {
			h.reply(ctx, b, msg, messages.MapsNotFound)
		} else {
			h.sendMapsChannel(ctx, b, msg, result, cfg)
		}
	}

	if !result.Addresses.Skipped {
		switch {
		case result.Addresses.Err != nil:
			h.reply(ctx, b, msg, messages.AddressesUnavailable)
		case len(result.Addresses.Items) == 0:
			h.reply(ctx, b, msg, messages.AddressesNotFound)
		default:
			h.replyHTML(ctx, b, msg, searchFormatAddresses(result, cfg), nil)
		}
	}

	if !result.Parcels.Skipped {
		switch {
		case result.Parcels.Err != nil:
			h.reply(ctx, b, msg, messages.CadastreUnavailable)
		case len(result.Parcels.Items) == 0:
			h.reply(ctx, b, msg, messages.CadastreNotFound)
		default:
			h.replyHTML(ctx, b, msg, searchFormatParcels(result, cfg), nil)
		}
	}

	log.InfoContext(ctx, "Search resolved",
		"query", query,
		"maps", len(result.Maps.Items),
		"addresses", len(result.Addresses.Items),
		"parcels", len(result.Parcels.Items),
		"chat_id", chatID)
}

func (h updateHandler) typing(ctx context.Context, b *bot.Bot, chatID int64) {
	_, err := b.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})
	if err != nil {
		h.deps.Logger.DebugContext(ctx, "Failed to send typing action", "error", err, "chat_id", chatID)
	}
}

func (h updateHandler) reply(ctx context.Context, b *bot.Bot, msg *models.Message, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          msg.Chat.ID,
		Text:            text,
		ReplyParameters: &models.ReplyParameters{MessageID: msg.ID},
	})
	if err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", msg.Chat.ID)
	}
}

func (h updateHandler) replyHTML(ctx context.Context, b *bot.Bot, msg *models.Message, text string, keyboard models.ReplyMarkup) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          msg.Chat.ID,
		Text:            text,
		ParseMode:       models.ParseModeHTML,
		ReplyMarkup:     keyboard,
		ReplyParameters: &models.ReplyParameters{MessageID: msg.ID},
		LinkPreviewOptions: &models.LinkPreviewOptions{
			IsDisabled: bot.True(),
		},
	})
	if err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", msg.Chat.ID)
	}
}
