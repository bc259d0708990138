package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/apitrace/har2openapi/internal/har"
	"github.com/apitrace/har2openapi/internal/infer"
	"github.com/apitrace/har2openapi/internal/render"
)

// ConvertConfig captures all inputs that influence the convert command
// after merging defaults, config file values, and CLI overrides.
type ConvertConfig struct {
	Input      string `koanf:"input"`
	Out        string `koanf:"out"`
	PathPrefix string `koanf:"path-prefix"`
	Title      string `koanf:"title"`
	APIVersion string `koanf:"api-version"`
	Server     string `koanf:"server"`
	Format     string `koanf:"format"`
	DryRun     bool   `koanf:"dry-run"`
	Verbose    bool   `koanf:"verbose"`
}

func defaultConvertConfig() ConvertConfig {
	return ConvertConfig{
		Out:        "openapi.yaml",
		PathPrefix: "/api",
	}
}

var convertRunner = runConvert

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a HAR capture into an OpenAPI 3 document",
		Long: "Convert a HAR capture into an OpenAPI 3 document. " +
			"Options can be provided via flags, a config file, or defaults.",
		Example: strings.TrimSpace(`  har2openapi convert --input capture.har --out openapi.yaml
  har2openapi --config har2openapi.yaml convert --dry-run`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConvertConfig(cmd)
			if err != nil {
				return err
			}
			return convertRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("input", "", "Path to the HAR capture file")
	flags.String("out", "", "Output file (default openapi.yaml)")
	flags.String("path-prefix", "", "Only consider entries whose path starts here (default /api)")
	flags.String("title", "", "Document title (default \"Reverse-engineered API\")")
	flags.String("api-version", "", "Document version (default 0.1.0)")
	flags.String("server", "", "Server URL (derived from the capture when omitted)")
	flags.String("format", "", "Output format (yaml|json); derived from --out when omitted")
	flags.Bool("dry-run", false, "Run the pipeline and print the summary without writing")

	return cmd
}

// resolveConvertConfig layers the convert configuration: defaults, then
// the optional YAML config file, then any flags the user changed.
func resolveConvertConfig(cmd *cobra.Command) (*ConvertConfig, error) {
	cfg := defaultConvertConfig()

	k := koanf.New(".")

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath == "" {
		if _, statErr := os.Stat("har2openapi.yaml"); statErr == nil {
			configPath = "har2openapi.yaml"
		}
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), koanfyaml.Parser()); err != nil {
			return nil, newUsageError(fmt.Sprintf("read config file %q: %v", configPath, err))
		}
	}

	if err := k.Load(confmap.Provider(changedFlagsMap(cmd), "."), nil); err != nil {
		return nil, fmt.Errorf("loading flags: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, newUsageError(fmt.Sprintf("config: %v", err))
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func changedFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)
	set := func(name string) {
		if !cmd.Flags().Changed(name) {
			return
		}
		switch name {
		case "dry-run":
			v, _ := cmd.Flags().GetBool(name)
			m[name] = v
		default:
			v, _ := cmd.Flags().GetString(name)
			m[name] = strings.TrimSpace(v)
		}
	}
	for _, name := range []string{"input", "out", "path-prefix", "title", "api-version", "server", "format", "dry-run"} {
		set(name)
	}
	if cmd.Flags().Changed("verbose") || cmd.Root().PersistentFlags().Changed("verbose") {
		v, _ := cmd.Flags().GetBool("verbose")
		m["verbose"] = v
	}
	return m
}

func (c *ConvertConfig) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.Out = strings.TrimSpace(c.Out)
	c.PathPrefix = strings.TrimSpace(c.PathPrefix)
	c.Title = strings.TrimSpace(c.Title)
	c.APIVersion = strings.TrimSpace(c.APIVersion)
	c.Server = strings.TrimSpace(c.Server)
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Out == "" {
		c.Out = "openapi.yaml"
	}
	if c.PathPrefix == "" {
		c.PathPrefix = "/api"
	}
}

func (c *ConvertConfig) validate() error {
	if c.Input == "" {
		return newUsageError("convert: --input is required (set via flag or config file)")
	}
	if !strings.HasPrefix(c.PathPrefix, "/") {
		return newUsageError(fmt.Sprintf("convert: --path-prefix must start with a slash, got %q", c.PathPrefix))
	}
	switch c.Format {
	case "", "yaml", "json":
	default:
		return newUsageError(fmt.Sprintf("convert: unsupported --format %q (allowed: yaml, json)", c.Format))
	}
	return nil
}

func runConvert(ctx context.Context, cfg *ConvertConfig) error {
	arc, err := har.Load(cfg.Input)
	if err != nil {
		var ae *har.ArchiveError
		if errors.As(err, &ae) {
			msg := fmt.Sprintf("har: %s", ae.Message)
			if ae.Location != "" {
				msg = fmt.Sprintf("%s\nLocation: %s", msg, ae.Location)
			}
			return newUsageError(msg)
		}
		return err
	}

	if cfg.Verbose {
		fmt.Fprintf(os.Stdout, "Read %d entries from %s\n", len(arc.Log.Entries), cfg.Input)
	}

	res := infer.Convert(&arc.Log, infer.Options{
		PathPrefix: cfg.PathPrefix,
		Title:      cfg.Title,
		Version:    cfg.APIVersion,
		ServerURL:  cfg.Server,
	})

	// Observed traffic can yield odd but loadable documents; a failed
	// validation is informational, not fatal.
	if err := res.Doc.Validate(ctx); err != nil && cfg.Verbose {
		fmt.Fprintf(os.Stdout, "Warning: generated document failed validation: %v\n", err)
	}

	format := render.Format(cfg.Format)
	if cfg.Format == "" {
		format = render.FormatForPath(cfg.Out)
	}

	absOut := cfg.Out
	if ap, err := filepath.Abs(cfg.Out); err == nil {
		absOut = ap
	}

	operations := 0
	for _, item := range res.Doc.Paths {
		operations += len(item.Operations())
	}

	if cfg.DryRun {
		fmt.Fprintf(os.Stdout, "Planned write to %s (%s)\n", absOut, format)
		printSummary(len(res.Doc.Paths), operations, res.Stats)
		return nil
	}

	if err := render.WriteFile(res.Doc, cfg.Out, format); err != nil {
		return wrapOutputError(err, absOut)
	}

	fmt.Fprintf(os.Stdout, "Wrote %s\n", absOut)
	printSummary(len(res.Doc.Paths), operations, res.Stats)
	return nil
}

func printSummary(paths, operations int, stats infer.Stats) {
	fmt.Fprintf(os.Stdout, "%d paths, %d operations (entries processed: %d, skipped: %d, out of scope: %d)\n",
		paths, operations, stats.Processed, stats.Skipped, stats.OutOfScope)
}

func wrapOutputError(err error, outPath string) error {
	// Provide clearer guidance for common FS failures.
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "permission") || strings.Contains(lower, "read-only") || strings.Contains(lower, "mkdir") || strings.Contains(lower, "rename") {
		return newUsageError(fmt.Sprintf("output error for %s: %s\nHint: choose a different --out.", outPath, msg))
	}
	return err
}
