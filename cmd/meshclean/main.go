package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/philipparndt/meshclean/internal/pipeline"
	"github.com/philipparndt/meshclean/pkg/watcher"
	"github.com/philipparndt/meshclean/version"
)

// errNothingProcessed maps to exit code 1: the batch ran but produced no
// successful output (missing input directory, nothing found, or all failed).
var errNothingProcessed = errors.New("no files were processed successfully")

var (
	flagInput   string
	flagOutput  string
	flagMethod  string
	flagFormats string
	flagVerbose bool
	flagWatch   bool
)

var rootCmd = &cobra.Command{
	Use:   "meshclean",
	Short: "Remove detached support structures from 3D-print mesh files",
	Long: `meshclean splits each mesh into connected components and keeps only the
one judged to be the main model. The first method keeps the first
component as loaded; the ratio method keeps the component with the
lowest surface-area-to-volume ratio, since supports tend to be slender.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runClean,
}

func init() {
	rootCmd.Flags().StringVarP(&flagInput, "input", "i", "", "Input directory containing mesh files")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output directory for processed files")
	rootCmd.Flags().StringVarP(&flagMethod, "method", "m", "first", "Method to select the main component (first|ratio)")
	rootCmd.Flags().StringVarP(&flagFormats, "formats", "f", "stl", "Comma-separated list of file formats to process")
	rootCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Keep running and process files as they change")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.MarkFlagRequired("input")
	rootCmd.MarkFlagRequired("output")
}

func newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func runClean(cmd *cobra.Command, args []string) error {
	logger := newLogger(flagVerbose)

	method, err := pipeline.ParseMethod(flagMethod)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		InputDir:  flagInput,
		OutputDir: flagOutput,
		Formats:   strings.Split(flagFormats, ","),
		Method:    method,
	}

	stats := pipeline.Run(logger, opts)

	if flagWatch {
		return watchLoop(logger, opts)
	}
	if stats.Succeeded == 0 {
		return errNothingProcessed
	}
	return nil
}

// watchLoop keeps processing files as they are created or modified in the
// input directory until interrupted.
func watchLoop(logger *log.Logger, opts pipeline.Options) error {
	formats := pipeline.NormalizeFormats(opts.Formats)

	dw, err := watcher.New(500 * time.Millisecond)
	if err != nil {
		return err
	}
	defer dw.Close()

	match := func(path string) bool {
		return pipeline.MatchesFormat(path, formats)
	}
	process := func(path string) {
		name := filepath.Base(path)
		outputPath := filepath.Join(opts.OutputDir, name)
		if err := pipeline.ProcessFile(logger, path, outputPath, opts.Method); err != nil {
			logger.Errorf("error processing %s: %v", path, err)
			return
		}
		logger.Infof("processed: %s", name)
	}

	if err := dw.Watch(opts.InputDir, match, process); err != nil {
		return err
	}
	dw.Start()

	logger.Infof("watching %s for mesh files (ctrl-c to stop)", opts.InputDir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	<-sigCh
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
