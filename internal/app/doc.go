// Package app is the composition root for catvote.
//
// Setup loads configuration, opens the rotated zerolog file, optionally
// starts the in-process demo backend and builds the catapi client. Both the
// TUI (Run) and the non-interactive subcommands in cmd/catvote go through it,
// so they share one config and one log.
//
//	Run()
//	  ├─> config.Load()      ~/.config/catvote/config.toml + CATVOTE_*
//	  ├─> SetupLogging()     JSON lines to a lumberjack file
//	  ├─> fakeapi.Server     only with --demo
//	  ├─> catapi.NewClient()
//	  ├─> checkBackend()     one request, logged, never fatal
//	  └─> ui.Run()           blocks until quit
//
// While the TUI runs nothing is written to stderr. Subcommands pass
// console=true to Setup and may add --pretty for a ConsoleWriter.
package app
