package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// Command describes one entry of the command table: its name, the
// description advertised to Telegram, whether it is gated to admins, and its
// handler.
type Command struct {
	Name        string
	Description string
	AdminOnly   bool
	Handler     tgbot.HandlerFunc
}

// RegisteredHandler represents a handler with its registration parameters
// and middleware chain.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// CommandTable returns the full command set. Dispatch is data-driven so each
// command's permission gate can be inspected and tested on its own.
func CommandTable(deps HandlerDeps) []Command {
	return []Command{
		{
			Name:        "start",
			Description: "Start the conversation and open the portal",
			Handler:     NewStartHandler(deps),
		},
		{
			Name:        "maps",
			Description: "List maps from the catalog",
			Handler:     NewMapsHandler(deps),
		},
		{
			Name:        "get_catalog",
			Description: "Refresh the map catalog",
			Handler:     NewCatalogRefreshHandler(deps),
		},
		{
			Name:        "admin",
			Description: "Show and edit portal settings (admin only)",
			AdminOnly:   true,
			Handler:     NewAdminHandler(deps),
		},
		{
			Name:        "stats",
			Description: "Show inline result click counts (admin only)",
			AdminOnly:   true,
			Handler:     NewStatsHandler(deps),
		},
	}
}

// RegisterAllCommands builds the registration map from the command table and
// the callback-query handlers for the admin edit buttons. Every command runs
// behind the private-chat gate and the pending-edit gate; admin commands
// additionally behind AdminOnly.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	registered := make(map[string]RegisteredHandler)

	privateOnly := PrivateOnly(deps)
	editPending := EditPending(deps)
	adminOnly := AdminOnly(deps)

	for _, cmd := range CommandTable(deps) {
		mw := []tgbot.Middleware{privateOnly, editPending}
		if cmd.AdminOnly {
			mw = append(mw, adminOnly)
		}
		registered["/"+cmd.Name] = RegisteredHandler{
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     cmd.Name,
			Handler:     cmd.Handler,
			MatchType:   tgbot.MatchTypeCommandStartOnly,
			Middleware:  mw,
		}
	}

	// Admin edit buttons share one callback handler keyed by data prefix.
	registered["callback:edit"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     editCallbackPrefix,
		Handler:     NewEditCallbackHandler(deps),
		MatchType:   tgbot.MatchTypePrefix,
	}

	return registered
}
