package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/globalwealth/wealthdash/internal/wealth"
	"github.com/globalwealth/wealthdash/internal/wealth/export"
)

// PageRenderer writes the dashboard HTML.
type PageRenderer interface {
	Render(w io.Writer) error
}

// RenderOptions defines available flags for the render command.
type RenderOptions struct {
	Out    string
	Pages  PageRenderer
	Stdout io.Writer
	Stderr io.Writer
}

// RenderCommand writes the dashboard HTML to Out, or Stdout when Out is empty.
func RenderCommand(ctx context.Context, opts RenderOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Pages == nil {
		_, _ = fmt.Fprintln(opts.Stderr, "render: page renderer not configured")
		return 1
	}
	var buf bytes.Buffer
	if err := opts.Pages.Render(&buf); err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "render: %v\n", err)
		return 1
	}
	if err := writeOutput(opts.Out, opts.Stdout, buf.Bytes()); err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "render: %v\n", err)
		return 1
	}
	return 0
}

// ExportOptions defines available flags for the export command.
type ExportOptions struct {
	Table  string
	Out    string
	Stdout io.Writer
	Stderr io.Writer
}

// ExportCommand writes one table, or all of them, as CSV.
func ExportCommand(ctx context.Context, opts ExportOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	table, err := export.ParseTable(opts.Table)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "export: %v (expected wealth, billionaires, historical or all)\n", err)
		return 1
	}
	var buf bytes.Buffer
	if err := export.WriteTable(&buf, table, wealth.All()); err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "export: %v\n", err)
		return 1
	}
	if err := writeOutput(opts.Out, opts.Stdout, buf.Bytes()); err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "export: %v\n", err)
		return 1
	}
	return 0
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
