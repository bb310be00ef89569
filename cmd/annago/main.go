// Command annago is the CLI tool for the annago annotation framework.
// It converts annotated files between formats, inspects their structure,
// and detects file formats.
package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/brigitte-bigi/annago/core/aio"
	"github.com/brigitte-bigi/annago/core/trs"
	"github.com/brigitte-bigi/annago/internal/logging"

	// Import the embedded registry to register all format handlers
	_ "github.com/brigitte-bigi/annago/internal/embedded"
)

const version = "0.1.0"

// CLI defines the command-line interface for annago.
var CLI struct {
	// Global flags
	Verbose bool `short:"v" help:"Enable debug logging"`
	LogJSON bool `name:"log-json" help:"Emit logs as JSON"`

	Convert ConvertCmd `cmd:"" help:"Convert an annotated file to another format"`
	Info    InfoCmd    `cmd:"" help:"Display the structure of an annotated file"`
	Detect  DetectCmd  `cmd:"" help:"Detect the format of a file"`
	Formats FormatsCmd `cmd:"" help:"List supported formats and their capabilities"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ConvertCmd converts an annotated file to another format.
type ConvertCmd struct {
	In        string `required:"" help:"Input file path" type:"existingfile"`
	Out       string `required:"" help:"Output file path" type:"path"`
	Heuristic bool   `help:"Probe every handler when the input extension is unknown"`
}

func (c *ConvertCmd) Run() error {
	t, err := aio.Read(c.In, c.Heuristic)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.In, err)
	}

	ext := filepath.Ext(c.Out)
	handler := aio.ByExtension(ext)
	if handler == nil {
		return fmt.Errorf("no handler for extension %q", ext)
	}

	// Warn when the destination format cannot represent source features.
	missing := handler.Manifest().Caps.Missing(aio.Required(t))
	if len(missing) > 0 {
		fmt.Printf("Warning: %s cannot represent: %s\n",
			handler.Manifest().Name, strings.Join(missing, ", "))
	}

	if err := aio.Write(c.Out, t); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Out, err)
	}

	total := 0
	for _, tier := range t.Tiers() {
		total += tier.Len()
	}
	fmt.Printf("Converted: %s -> %s\n", c.In, c.Out)
	fmt.Printf("  Tiers: %d\n", t.Len())
	fmt.Printf("  Annotations: %d\n", total)
	return nil
}

// InfoCmd displays the structure of an annotated file.
type InfoCmd struct {
	Path      string `arg:"" help:"Path to annotated file" type:"existingfile"`
	Heuristic bool   `help:"Probe every handler when the extension is unknown"`
}

func (c *InfoCmd) Run() error {
	t, err := aio.Read(c.Path, c.Heuristic)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.Path, err)
	}

	fmt.Printf("Transcription: %s\n", t.Name())
	if format := t.Metadata().GetDefault(aio.MetaFileReader, ""); format != "" {
		fmt.Printf("  Format: %s\n", format)
	}

	if keys := t.Metadata().Keys(); len(keys) > 0 {
		fmt.Println("\nMetadata:")
		for _, key := range keys {
			value, _ := t.Metadata().Get(key)
			fmt.Printf("  %s = %s\n", key, value)
		}
	}

	if media := t.Media(); len(media) > 0 {
		fmt.Println("\nMedia:")
		for _, m := range media {
			fmt.Printf("  %s (%s)\n", m.URL(), m.MimeType())
		}
	}

	if vocabs := t.Vocabs(); len(vocabs) > 0 {
		fmt.Println("\nVocabularies:")
		for _, v := range vocabs {
			fmt.Printf("  %s (%d entries)\n", v.Name(), v.Len())
		}
	}

	fmt.Println("\nTiers:")
	fmt.Printf("  %-20s %-10s %6s %10s %10s\n", "NAME", "KIND", "COUNT", "START", "END")
	for _, tier := range t.Tiers() {
		start, end := "-", "-"
		if p := tier.StartPoint(); p != nil {
			start = fmt.Sprintf("%.3f", p.Midpoint())
		}
		if p := tier.EndPoint(); p != nil {
			end = fmt.Sprintf("%.3f", p.Midpoint())
		}
		fmt.Printf("  %-20s %-10s %6d %10s %10s\n",
			tier.Name(), tierKind(tier), tier.Len(), start, end)
	}

	if links := t.Hierarchy().Links(); len(links) > 0 {
		fmt.Println("\nHierarchy:")
		for _, link := range links {
			fmt.Printf("  %s: %s -> %s\n", link.Type, link.Parent.Name(), link.Child.Name())
		}
	}

	return nil
}

func tierKind(tier *trs.Tier) string {
	switch {
	case tier.IsEmpty():
		return "empty"
	case tier.IsPoint():
		return "point"
	case tier.IsInterval():
		return "interval"
	case tier.IsDisjoint():
		return "disjoint"
	}
	return "mixed"
}

// DetectCmd detects the format of a file by probing every handler.
type DetectCmd struct {
	Path string `arg:"" help:"Path to file to detect" type:"existingpath"`
}

func (c *DetectCmd) Run() error {
	fmt.Printf("Detecting format of: %s\n\n", c.Path)

	for _, handler := range aio.Handlers() {
		result, err := handler.Detect(c.Path)
		if err != nil {
			fmt.Printf("  %-10s error (%v)\n", handler.Manifest().Name+":", err)
			continue
		}
		if result.Detected {
			fmt.Printf("  [MATCH] %s: %s\n", handler.Manifest().Name, result.Reason)
		} else {
			fmt.Printf("  [no]    %s: %s\n", handler.Manifest().Name, result.Reason)
		}
	}

	result, err := aio.Detect(c.Path)
	if err != nil {
		return err
	}
	fmt.Printf("\nBest match: %s\n", result.Format)
	return nil
}

// FormatsCmd lists supported formats and their capabilities.
type FormatsCmd struct{}

func (c *FormatsCmd) Run() error {
	fmt.Printf("%-10s %-10s %-8s %s\n", "NAME", "EXT", "SOFTWARE", "CAPABILITIES")
	fmt.Printf("%-10s %-10s %-8s %s\n", "----", "---", "--------", "------------")
	for _, handler := range aio.Handlers() {
		m := handler.Manifest()
		fmt.Printf("%-10s %-10s %-8s %s\n",
			m.Name, m.Extension, m.Software, strings.Join(m.Caps.Names(), ", "))
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("annago version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("annago"),
		kong.Description("annago - temporal annotation data and file conversion"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	level := logging.LevelWarn
	if CLI.Verbose {
		level = logging.LevelDebug
	}
	format := logging.FormatText
	if CLI.LogJSON {
		format = logging.FormatJSON
	}
	logging.InitLogger(level, format)

	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
