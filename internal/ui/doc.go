// Package ui is the terminal client for the cat voting backend, built on
// Bubble Tea.
//
// # Tabs
//
// Exactly one tab is visible at a time:
//
//   - Voting: one candidate image card with like, dislike and favorite buttons.
//     A new batch is fetched when the local queue runs out.
//   - Breeds: a sorted, filterable breed picker beside the detail panel. The
//     detail panel cycles the breed's images on a timer while the tab is shown.
//   - Favorites: the saved images, each removable.
//   - Log: the client's own zerolog file, parsed and followed.
//
// # State
//
// Model owns the view state and delegates the rules to small packages that do
// no I/O: voting.Deck, breeds.Browser (with its slideshow.Slideshow) and
// favorites.Panel. Every backend call is a tea.Cmd whose result comes back as
// a message carrying the sequence number it was issued with, so late answers
// for a superseded request are dropped.
//
// Timers (slideshow, favorite fade, log follow) are scheduled through
// Options.After, which defaults to tea.Tick.
//
// # Usage
//
//	err := ui.Run(ui.Options{
//		Context:   ctx,
//		Client:    catapi.NewClient(cfg.APIBase),
//		Logger:    logger,
//		Config:    cfg,
//		ThemeName: p.Theme,
//		StartTab:  p.StartTab,
//	})
package ui
