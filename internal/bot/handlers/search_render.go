package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/cogisbot/internal/search"
	"github.com/edgard/cogisbot/internal/settings"
)

// sendMapsChannel sends the maps channel message. A single match gets the
// expanded view with a two-button action row (browser / web app); multiple
// matches get the compact list without buttons.
func (h updateHandler) sendMapsChannel(ctx context.Context, b *bot.Bot, msg *models.Message, result search.AggregatedResult, cfg settings.Settings) {
	rendered := search.FormatMaps(result.Query, cfg, result.Maps.Items)

	var keyboard models.ReplyMarkup
	if rendered.Single != nil {
		url := rendered.Single.URL()
		keyboard = &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{{
				{Text: h.deps.Config.Messages.OpenBrowser, URL: url},
				{Text: h.deps.Config.Messages.OpenWebApp, WebApp: &models.WebAppInfo{URL: url}},
			}},
		}
	}

	h.replyHTML(ctx, b, msg, rendered.Text, keyboard)
}

func searchFormatAddresses(result search.AggregatedResult, cfg settings.Settings) string {
	return search.FormatAddresses(result.Query, cfg, result.Addresses.Items)
}

func searchFormatParcels(result search.AggregatedResult, cfg settings.Settings) string {
	return search.FormatParcels(result.Query, cfg, result.Parcels.Items)
}
