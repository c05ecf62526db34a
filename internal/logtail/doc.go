// Package logtail reads the tail of catvote's log file and decodes its JSON
// lines for the Log tab.
//
// # Reading
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays O(maxLines) however large the file grows:
//
//	lines, err := logtail.Read(cfg.LogPath(), 400)
//
// A missing file reads as empty. Lines longer than 1MB are an error.
//
// # Decoding
//
// Parse understands the zerolog JSON encoding: time, level, message,
// component and error are lifted into Entry fields and every other key is
// kept, stringified, in Entry.Fields. Lines that are not JSON come back with
// Message set to the raw text, so rotated or hand-written content still
// shows up.
package logtail
