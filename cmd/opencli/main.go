// Command opencli is the CLI tool for working with OpenCLI specification
// documents. It loads documents in YAML or JSON form, inspects and converts
// them, and manages a local document registry.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/openclispec/opencli-go/core/errors"
	"github.com/openclispec/opencli-go/core/fingerprint"
	"github.com/openclispec/opencli-go/core/opencli"
	"github.com/openclispec/opencli-go/core/registry"
)

const version = "0.1.0"

// CLI defines the command-line interface for opencli.
var CLI struct {
	// Global flags
	DB string `name:"db" help:"Registry database path (default ~/.opencli/registry.db)" type:"path"`

	Inspect     InspectCmd     `cmd:"" help:"Load a document and print its command tree"`
	Validate    ValidateCmd    `cmd:"" help:"Load a document and report the classified result"`
	Convert     ConvertCmd     `cmd:"" help:"Convert a document between YAML and JSON"`
	Fingerprint FingerprintCmd `cmd:"" help:"Print a document's content digests"`
	Registry    RegistryGroup  `cmd:"" help:"Local document registry operations"`
	Version     VersionCmd     `cmd:"" help:"Print version information"`
}

// RegistryGroup contains registry operations.
type RegistryGroup struct {
	Add    RegistryAddCmd    `cmd:"" help:"Load a document and add it to the registry"`
	List   RegistryListCmd   `cmd:"" help:"List registered documents"`
	Show   RegistryShowCmd   `cmd:"" help:"Print a registered document as JSON"`
	Remove RegistryRemoveCmd `cmd:"" help:"Remove a document from the registry"`
}

// InspectCmd loads a document and prints a tree summary.
type InspectCmd struct {
	Path string `arg:"" help:"Path to OpenCLI document" type:"existingfile"`
}

func (c *InspectCmd) Run() error {
	doc, err := opencli.LoadFile(c.Path)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s (opencli %s)\n", doc.Info.Title, doc.Info.Version, doc.Opencli)
	if doc.Info.Summary != nil {
		fmt.Printf("  %s\n", *doc.Info.Summary)
	}
	printSeqCounts(1, len(doc.Arguments), len(doc.Options), len(doc.ExitCodes))
	for i := range doc.Commands {
		printCommand(1, &doc.Commands[i])
	}
	return nil
}

func printCommand(depth int, cmd *opencli.Command) {
	indent := strings.Repeat("  ", depth)
	name := cmd.Name
	if len(cmd.Aliases) > 0 {
		name += " (" + strings.Join(cmd.Aliases, ", ") + ")"
	}
	if cmd.Hidden != nil && *cmd.Hidden {
		name += " [hidden]"
	}
	fmt.Printf("%s%s\n", indent, name)
	printSeqCounts(depth+1, len(cmd.Arguments), len(cmd.Options), len(cmd.ExitCodes))
	for i := range cmd.Commands {
		printCommand(depth+1, &cmd.Commands[i])
	}
}

func printSeqCounts(depth, args, opts, codes int) {
	if args == 0 && opts == 0 && codes == 0 {
		return
	}
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%sarguments: %d, options: %d, exit codes: %d\n", indent, args, opts, codes)
}

// ValidateCmd loads a document and reports success or the classified error.
type ValidateCmd struct {
	Path string `arg:"" help:"Path to OpenCLI document" type:"existingfile"`
}

func (c *ValidateCmd) Run() error {
	_, err := opencli.LoadFile(c.Path)
	if err == nil {
		fmt.Printf("%s: ok\n", c.Path)
		return nil
	}
	return fmt.Errorf("%s: %s error: %w", c.Path, classify(err), err)
}

// classify maps a loader error to its class name for display.
func classify(err error) string {
	switch {
	case errors.Is(err, errors.ErrParse):
		return "parse"
	case errors.Is(err, errors.ErrIO):
		return "io"
	default:
		return "other"
	}
}

// ConvertCmd converts a document between the two wire formats.
type ConvertCmd struct {
	Path string `arg:"" help:"Path to OpenCLI document" type:"existingfile"`
	To   string `name:"to" enum:"json,yaml" default:"json" help:"Target format (json or yaml)"`
	Out  string `name:"out" short:"o" help:"Output path (default stdout)" type:"path"`
}

func (c *ConvertCmd) Run() error {
	doc, err := opencli.LoadFile(c.Path)
	if err != nil {
		return err
	}
	var data []byte
	switch c.To {
	case "yaml":
		data, err = opencli.EncodeYAML(doc)
	default:
		data, err = opencli.EncodeJSON(doc)
	}
	if err != nil {
		return err
	}
	if c.Out == "" {
		fmt.Println(strings.TrimRight(string(data), "\n"))
		return nil
	}
	if err := os.WriteFile(c.Out, data, 0644); err != nil {
		return errors.NewIO("write", c.Out, err)
	}
	return nil
}

// FingerprintCmd prints the content digests of a document.
type FingerprintCmd struct {
	Path string `arg:"" help:"Path to OpenCLI document" type:"existingfile"`
}

func (c *FingerprintCmd) Run() error {
	doc, err := opencli.LoadFile(c.Path)
	if err != nil {
		return err
	}
	res, err := fingerprint.Sum(doc)
	if err != nil {
		return err
	}
	fmt.Printf("sha256: %s\n", res.SHA256)
	fmt.Printf("blake3: %s\n", res.BLAKE3)
	return nil
}

// RegistryAddCmd adds a document to the registry.
type RegistryAddCmd struct {
	Path string `arg:"" help:"Path to OpenCLI document" type:"existingfile"`
}

func (c *RegistryAddCmd) Run() error {
	doc, err := opencli.LoadFile(c.Path)
	if err != nil {
		return err
	}
	reg, err := openRegistry()
	if err != nil {
		return err
	}
	defer reg.Close()

	entry, err := reg.Put(doc)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s %s\n", entry.Fingerprint[:12], entry.Title, entry.Version)
	return nil
}

// RegistryListCmd lists registered documents.
type RegistryListCmd struct{}

func (c *RegistryListCmd) Run() error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}
	defer reg.Close()

	entries, err := reg.List()
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s  %-24s %-12s %s\n",
			e.Fingerprint[:12], e.Title, e.Version, e.ImportedAt.Format("2006-01-02"))
	}
	return nil
}

// RegistryShowCmd prints a registered document as JSON.
type RegistryShowCmd struct {
	Fingerprint string `arg:"" help:"Document fingerprint (full BLAKE3 hex)"`
}

func (c *RegistryShowCmd) Run() error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}
	defer reg.Close()

	doc, err := reg.Get(c.Fingerprint)
	if err != nil {
		return err
	}
	data, err := opencli.EncodeJSON(doc)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// RegistryRemoveCmd removes a document from the registry.
type RegistryRemoveCmd struct {
	Fingerprint string `arg:"" help:"Document fingerprint (full BLAKE3 hex)"`
}

func (c *RegistryRemoveCmd) Run() error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}
	defer reg.Close()
	return reg.Remove(c.Fingerprint)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("opencli version %s\n", version)
	return nil
}

// openRegistry opens the registry at the --db path, defaulting to
// ~/.opencli/registry.db.
func openRegistry() (*registry.Registry, error) {
	path := CLI.DB
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.NewIO("resolve", "home directory", err)
		}
		path = filepath.Join(home, ".opencli", "registry.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.NewIO("create", filepath.Dir(path), err)
	}
	return registry.Open(path)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("opencli"),
		kong.Description("OpenCLI specification document tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
