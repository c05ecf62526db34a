// Package config loads catvote's settings.
//
// Settings come from ~/.config/catvote/config.toml (or the path passed to
// Load), overlaid by CATVOTE_* environment variables, with defaults for
// anything missing. A missing file is not an error, so catvote runs
// against a local backend without any setup.
//
// # Keys
//
//	api_base          = "127.0.0.1:8080"                  # CATVOTE_API_BASE
//	api_key           = ""                                # sent as x-api-key when set
//	log_file          = "~/.local/share/catvote/catvote.log"
//	placeholder_image = "https://via.placeholder.com/300" # shown for broken images
//	slide_interval    = "3s"
//	request_timeout   = "5s"
//
// Durations use Go syntax. Non-positive durations and blank strings fall
// back to the defaults above. Tildes in paths expand to the home directory.
//
// Load returns an error only when the home directory cannot be resolved or
// the file exists but does not parse.
package config
