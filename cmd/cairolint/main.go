package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cairolint/internal/version"
)

// Коды выхода: 0 - ошибок нет, 1 - найдены диагностики уровня error,
// 2 - неверные аргументы или сбой ввода-вывода.
const (
	exitOK       = 0
	exitFindings = 1
	exitFailure  = 2
)

// exitError carries a process exit code through cobra's RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// errFindings signals exit code 1 without printing anything more.
var errFindings = &exitError{code: exitFindings}

// runCleanup закрывает трассировку и профили; run вызывает её ровно один раз.
var runCleanup = func() {}

var rootCmd = &cobra.Command{
	Use:           "cairolint",
	Short:         "Cairo lint checker",
	Long:          `cairolint finds common Cairo anti-patterns and rewrites the fixable ones`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupColor(cmd); err != nil {
			return err
		}
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			stopProfiling()
			return err
		}
		runCleanup = func() {
			cleanup()
			stopProfiling()
		}
		return nil
	},
}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(treeCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("config", "", "path to cairolint.toml (default: discovered from the first path)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to FILE (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace sink: stream writes as it goes, ring keeps the last N events and writes them on exit (stream|ring)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "event capacity for --trace-mode ring")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to FILE")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to FILE on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to FILE")
}

// main executes the root command and maps the returned error to an exit code.
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.Execute()
	// трассировка и профили закрываются после любой команды, в том числе упавшей
	runCleanup()
	runCleanup = func() {}
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "cairolint: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(stderr, "cairolint: %v\n", err)
	return exitFailure
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits int
}
