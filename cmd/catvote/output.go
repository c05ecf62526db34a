package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

// printer writes command results as an aligned table or as JSON.
type printer struct {
	w    io.Writer
	json bool
}

func newPrinter(w io.Writer, format string) (*printer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", outputTable:
		return &printer{w: w}, nil
	case outputJSON:
		return &printer{w: w, json: true}, nil
	default:
		return nil, fmt.Errorf("invalid output format: %s", format)
	}
}

// table prints rows under headers, or v as JSON when JSON output is selected.
func (p *printer) table(v any, headers []string, rows [][]string, empty string) error {
	if p.json {
		return p.value(v)
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(p.w, empty)
		return err
	}

	var buf strings.Builder
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	rules := make([]string, len(headers))
	for i, h := range headers {
		rules[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// Style the header after alignment so escape codes don't count as width.
	text := buf.String()
	header, rest, _ := strings.Cut(text, "\n")
	_, err := fmt.Fprintf(p.w, "%s\n%s", headerStyle.Render(header), rest)
	return err
}

// message prints a one-line result, or {"message": msg} as JSON.
func (p *printer) message(msg string) error {
	if p.json {
		return p.value(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(p.w, msg)
	return err
}

func (p *printer) value(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
