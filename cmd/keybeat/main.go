// Package main provides the CLI entrypoint for keybeat.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/keybeat/keybeat/internal/analytics"
	"github.com/keybeat/keybeat/internal/capture"
	"github.com/keybeat/keybeat/internal/config"
	"github.com/keybeat/keybeat/internal/generator"
	"github.com/keybeat/keybeat/internal/render"
	"github.com/keybeat/keybeat/internal/store"
	"github.com/keybeat/keybeat/internal/wordlist"
)

const (
	defaultHistoryLast = 20
	defaultSimText     = "the quick brown fox jumps over the lazy dog and keeps a steady pace"
	weakBiasKeys       = 5
	weakBiasFactor     = 2.0
)

var (
	analyzeStore bool
	analyzeJSON  bool
	analyzeDB    string

	simProfile  string
	simText     string
	simWords    int
	simWordlist string
	simLang     string
	simWeakFrom string
	simSeed     int64
	simOut      string
	simAnalyze  bool

	historyLast int
	historyDB   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keybeat",
		Short:         "Keystroke-timing analytics and synthetic-input validation",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <events.json>",
		Short: "Replay a captured event log and report on it",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyzeCmd,
	}
	cmd.Flags().BoolVar(&analyzeStore, "store", false, "persist the report to the history database")
	cmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw report as JSON instead of text")
	cmd.Flags().StringVar(&analyzeDB, "db", "", "history database path (default: XDG data dir)")
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := capture.Load(args[0])
	if err != nil {
		return err
	}
	sess := capture.Replay(log)
	events := sess.Events()
	report := analytics.AssembleWithThresholds(sess.Text(), events, fileCfg.AntiCheat.Thresholds())

	if analyzeJSON {
		if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	} else {
		if err := render.Report(cmd.OutOrStdout(), report, events); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	}

	if !analyzeStore {
		return nil
	}
	st, err := store.Open(dbPath(analyzeDB))
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	id, err := st.InsertReport(context.Background(), store.Record{
		CreatedAt:       time.Now(),
		TextLength:      len([]rune(sess.Text())),
		EventCount:      len(events),
		WPM:             report.WPM,
		Accuracy:        report.Accuracy,
		Consistency:     report.Consistency,
		ValidationScore: report.AntiCheat.ValidationScore,
		Suspicious:      report.AntiCheat.Suspicious,
		Synthetic:       report.AntiCheat.SyntheticInputDetected,
		Report:          report,
	})
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	logErrf("stored report %s\n", id)
	return nil
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Generate a synthetic event log",
		Args:  cobra.NoArgs,
		RunE:  runSimulateCmd,
	}
	cmd.Flags().StringVar(&simProfile, "profile", "human", fmt.Sprintf("typing profile (%s)", strings.Join(capture.ProfileNames(), ", ")))
	cmd.Flags().StringVar(&simText, "text", defaultSimText, "expected text to type")
	cmd.Flags().IntVar(&simWords, "words", 0, "generate the text from N random words instead of --text")
	cmd.Flags().StringVar(&simWordlist, "wordlist", "", "word list file, one word per line (default: built-in list)")
	cmd.Flags().StringVar(&simLang, "lang", "en", "word list filter language")
	cmd.Flags().StringVar(&simWeakFrom, "weak-from", "", "bias generated words toward weak keys from this event log")
	cmd.Flags().Int64Var(&simSeed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&simOut, "out", "", "output path for the event log")
	cmd.Flags().BoolVar(&simAnalyze, "analyze", false, "analyze the generated log instead of writing it")
	return cmd
}

func runSimulateCmd(cmd *cobra.Command, _ []string) error {
	text := simText
	if simWords > 0 {
		generated, err := generateText()
		if err != nil {
			return err
		}
		text = generated
	}

	log, err := capture.Generate(simProfile, text, simSeed)
	if err != nil {
		return err
	}

	if simAnalyze {
		fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		sess := capture.Replay(log)
		report := analytics.AssembleWithThresholds(sess.Text(), sess.Events(), fileCfg.AntiCheat.Thresholds())
		if err := render.Report(cmd.OutOrStdout(), report, sess.Events()); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		return nil
	}

	if simOut == "" {
		return fmt.Errorf("--out is required unless --analyze is set")
	}
	if err := capture.Save(simOut, log); err != nil {
		return err
	}
	logErrf("wrote %s (%d events)\n", simOut, len(log.Events))
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored reports",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to last N reports")
	cmd.Flags().StringVar(&historyDB, "db", "", "history database path (default: XDG data dir)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(dbPath(historyDB))
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	records, err := st.ListReports(context.Background(), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}
	if len(records) == 0 {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), "No reports stored."); err != nil {
			return err
		}
		return nil
	}
	return render.History(cmd.OutOrStdout(), records)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return `# keybeat configuration
# Uncomment a value to enable it. Unset values keep built-in defaults.

[anticheat]
# min-events = 20               # Events required before heuristics run
# min-human-interval-ms = 10.0  # Fastest humanly possible inter-press gap
# max-human-wpm = 200.0         # Hard WPM ceiling
# near-zero-variance = 5.0      # Variance floor for machine-uniform timing
# burst-ratio = 0.8             # Fast-interval fraction that flags a burst
# perfect-rhythm-ratio = 0.95   # Near-identical delta fraction for perfect rhythm
# suspicious-flag-count = 2     # Flags needed to mark a session suspicious
`
}

// generateText builds practice text from a word list, optionally biased
// toward the weakest keys observed in a previous event log.
func generateText() (string, error) {
	words := wordlist.Default()
	if simWordlist != "" {
		loaded, err := wordlist.Load(simWordlist, simLang)
		if err != nil {
			return "", err
		}
		words = loaded
	}

	gen := generator.New(simSeed)
	if simWeakFrom == "" {
		return gen.Text(words, simWords), nil
	}
	prev, err := capture.Load(simWeakFrom)
	if err != nil {
		return "", err
	}
	weak := analytics.WeakestKeys(capture.Replay(prev).Events(), weakBiasKeys)
	if len(weak) == 0 {
		return gen.Text(words, simWords), nil
	}
	return gen.WeightedText(words, simWords, generator.WeakSet(weak), weakBiasFactor), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func dbPath(override string) string {
	if override != "" {
		return override
	}
	return config.DefaultDBPath()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
