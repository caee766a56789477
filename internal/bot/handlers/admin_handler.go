package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/cogisbot/internal/conversation"
)

// editCallbackPrefix matches the callback data of the four admin edit
// buttons.
const editCallbackPrefix = "edit"

const (
	callbackEditName     = "editName"
	callbackEditURL      = "editUrl"
	callbackEditGeocoder = "editGeocoderUrl"
	callbackEditCadastre = "editCadastreUrl"
)

// NewAdminHandler returns a handler for the /admin command: it shows the
// current settings with one edit button per field.
func NewAdminHandler(deps HandlerDeps) bot.HandlerFunc {
	return adminHandler{deps}.Handle
}

type adminHandler struct {
	deps HandlerDeps
}

func (h adminHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "admin")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Admin handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	cfg := h.deps.Settings.Get()

	var builder strings.Builder
	builder.WriteString(h.deps.Config.Messages.AdminHeader + "\n")
	fmt.Fprintf(&builder, "Name: %s\n", cfg.Name)
	fmt.Fprintf(&builder, "URL: %s\n", cfg.URL)
	builder.WriteString("\n")
	fmt.Fprintf(&builder, "Geocoder: %s\n", cfg.GeocoderURL)
	fmt.Fprintf(&builder, "Cadastre: %s\n", cfg.CadastreURL)

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: h.deps.Config.Messages.EditName, CallbackData: callbackEditName},
				{Text: h.deps.Config.Messages.EditURL, CallbackData: callbackEditURL},
			},
			{
				{Text: h.deps.Config.Messages.EditGeocoder, CallbackData: callbackEditGeocoder},
				{Text: h.deps.Config.Messages.EditCadastre, CallbackData: callbackEditCadastre},
			},
		},
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        builder.String(),
		ReplyMarkup: keyboard,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send admin panel", "error", err, "chat_id", chatID)
	}
}

// NewEditCallbackHandler returns the handler for the four edit buttons. A
// press moves the invoking admin into the matching edit state; the next text
// message from that user is consumed as the new value.
func NewEditCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return editCallbackHandler{deps}.Handle
}

type editCallbackHandler struct {
	deps HandlerDeps
}

func (h editCallbackHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "edit_callback")

	cq := update.CallbackQuery
	if cq == nil {
		return
	}

	var chatID int64
	switch {
	case cq.Message.Message != nil:
		chatID = cq.Message.Message.Chat.ID
	case cq.Message.InaccessibleMessage != nil:
		chatID = cq.Message.InaccessibleMessage.Chat.ID
	default:
		log.WarnContext(ctx, "Edit callback without accessible message", "user_id", cq.From.ID)
		return
	}

	// Answer the callback first so the button spinner stops either way.
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: cq.ID})
	if err != nil {
		log.DebugContext(ctx, "Failed to answer callback query", "error", err, "user_id", cq.From.ID)
	}

	if !h.deps.Settings.IsAdmin(cq.From.ID) {
		log.WarnContext(ctx, "Non-admin pressed edit button", "user_id", cq.From.ID)
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   h.deps.Config.Messages.NotAuthorized,
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send unauthorized message", "error", err, "chat_id", chatID)
		}
		return
	}

	var (
		state  conversation.State
		prompt string
	)
	switch cq.Data {
	case callbackEditName:
		state, prompt = conversation.StateEditBrandName, h.deps.Config.Messages.SendName
	case callbackEditURL:
		state, prompt = conversation.StateEditBrandURL, h.deps.Config.Messages.SendURL
	case callbackEditGeocoder:
		state, prompt = conversation.StateEditGeocoderURL, h.deps.Config.Messages.SendGeocoder
	case callbackEditCadastre:
		state, prompt = conversation.StateEditCadastreURL, h.deps.Config.Messages.SendCadastre
	default:
		log.WarnContext(ctx, "Unknown edit callback data", "data", cq.Data, "user_id", cq.From.ID)
		return
	}

	h.deps.States.Set(cq.From.ID, state)
	log.InfoContext(ctx, "Admin entered edit state", "user_id", cq.From.ID, "state", state)

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: prompt}); err != nil {
		log.ErrorContext(ctx, "Failed to send edit prompt", "error", err, "chat_id", chatID)
	}
}
