package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/modoterra/tally/internal/buildinfo"
	"github.com/modoterra/tally/pkg/core"
	"github.com/modoterra/tally/pkg/manifest"
	"github.com/modoterra/tally/pkg/manifest/presets"
	"github.com/modoterra/tally/pkg/seqlog"
	"github.com/modoterra/tally/pkg/sources"
	"github.com/modoterra/tally/pkg/tally"
)

var (
	configPath    string
	maxLineLength int
	header        string
	journalMirror bool
	verbose       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tally [flags] <source>...",
	Short: "Count names across line sources",
	Long: `Tally reads one name per line from every source concurrently, one worker
per source, and prints how often each name occurred in first-seen order.

A source is a file path, "-" for stdin, exec:<command> or journal:<unit>.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runTally,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug diagnostics on stderr")

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to tally.yaml (default: ./tally.yaml if present)")
	rootCmd.Flags().IntVar(&maxLineLength, "max-line-length", 0, "longest name in bytes; longer lines are truncated")
	rootCmd.Flags().StringVar(&header, "header", "", "report header line")
	rootCmd.Flags().BoolVar(&journalMirror, "journal", false, "mirror the sequenced log to the systemd journal")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(manifestCmd)
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// --- Root: run ---

func runTally(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr()).With("run", uuid.NewString())

	m, err := loadManifest(logger)
	if err != nil {
		return err
	}
	if errs := manifest.Validate(m); len(errs) > 0 {
		return fmt.Errorf("invalid manifest: %w", errors.Join(errs...))
	}

	srcs := append(append([]string(nil), m.Sources...), cliSources(args, m.Root)...)
	if errs := manifest.ValidateSources(srcs); len(errs) > 0 {
		return errors.Join(errs...)
	}
	ids, err := manifest.ParseSources(srcs)
	if err != nil {
		return err
	}

	cfg := tally.Config{MaxLineLength: m.MaxLineLength, Header: m.Header}
	if maxLineLength > 0 {
		cfg.MaxLineLength = maxLineLength
	}
	if header != "" {
		cfg.Header = header
	}

	out := cmd.OutOrStdout()
	var opts []seqlog.Option
	if journalMirror || m.Journal {
		sink, err := seqlog.NewJournalSink("tally")
		if err != nil {
			logger.Warn("journal mirror disabled", "err", err)
		} else {
			opts = append(opts, seqlog.WithSink(sink))
		}
	}

	shared := tally.NewShared(seqlog.New(out, logger, opts...))
	registry := sources.NewRegistry(sources.Options{Root: m.Root, Stdin: cmd.InOrStdin()}, logger)
	d := tally.NewDispatcher(shared, registry, out, cfg, logger)

	logger.Debug("starting run", "sources", len(ids), "max_line_length", cfg.MaxLineLength)
	return d.Run(cmd.Context(), ids)
}

// loadManifest returns the manifest named by --config, ./tally.yaml when it
// exists, or an empty manifest.
func loadManifest(logger *slog.Logger) (*manifest.Manifest, error) {
	path := configPath
	if path == "" {
		if _, err := os.Stat(manifest.DefaultFile); err != nil {
			return &manifest.Manifest{Version: 1}, nil
		}
		path = manifest.DefaultFile
	}
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Info("manifest loaded", "path", path, "sources", len(m.Sources))
	return m, nil
}

// cliSources makes relative file arguments absolute so that a manifest root
// only applies to sources listed in the manifest.
func cliSources(args []string, root string) []string {
	if root == "" {
		return args
	}
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a
		id, err := core.ParseSourceID(a)
		if err != nil || id.Kind != core.KindFile || filepath.IsAbs(id.Target) {
			continue
		}
		if abs, err := filepath.Abs(id.Target); err == nil {
			out[i] = "file:" + abs
		}
	}
	return out
}

// --- Version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tally %s (%s) built %s\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
	},
}

// --- Manifest ---

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Manage tally.yaml manifest",
}

var manifestInitCmd = &cobra.Command{
	Use:   "init [preset]",
	Short: "Generate a tally.yaml manifest",
	Long: `Available presets:
  dir      every file in --root matching --pattern
  journal  the journal of each unit given with --unit that is installed`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			m   *manifest.Manifest
			err error
		)
		switch preset := args[0]; preset {
		case "dir":
			m, err = presets.GenerateDirectory(manifestInitRoot, manifestInitPattern)
		case "journal":
			m, err = presets.GenerateJournal(manifestInitUnits)
		default:
			return fmt.Errorf("unknown preset: %s (available: dir, journal)", preset)
		}
		if err != nil {
			return err
		}

		if err := manifest.Save(m, manifestInitOutput); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Generated %s with %d sources\n", manifestInitOutput, len(m.Sources))
		for _, s := range m.Sources {
			fmt.Fprintf(out, "  %s\n", s)
		}
		return nil
	},
}

var (
	manifestInitRoot    string
	manifestInitPattern string
	manifestInitUnits   []string
	manifestInitOutput  string
)

func init() {
	manifestInitCmd.Flags().StringVar(&manifestInitRoot, "root", ".", "directory to scan (dir preset)")
	manifestInitCmd.Flags().StringVar(&manifestInitPattern, "pattern", presets.DefaultPattern, "file glob (dir preset)")
	manifestInitCmd.Flags().StringSliceVar(&manifestInitUnits, "unit", nil, "systemd unit (journal preset, repeatable)")
	manifestInitCmd.Flags().StringVar(&manifestInitOutput, "output", manifest.DefaultFile, "output file path")
	manifestCmd.AddCommand(manifestInitCmd)
	manifestCmd.AddCommand(manifestValidateCmd)
}

var manifestValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a tally.yaml manifest",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := manifest.DefaultFile
		if len(args) > 0 {
			path = args[0]
		}

		m, err := manifest.Load(path)
		if err != nil {
			return err
		}

		errs := manifest.Validate(m)
		if len(errs) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%d sources)\n", path, len(m.Sources))
			return nil
		}

		w := cmd.ErrOrStderr()
		fmt.Fprintf(w, "%s: %d error(s)\n", path, len(errs))
		for _, e := range errs {
			fmt.Fprintf(w, "  • %s\n", e)
		}
		return fmt.Errorf("%s is invalid", path)
	},
}
