package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/config"
	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/core"
	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/report"
	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/server"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorOrange = "\033[38;5;208m"
	colorGray   = "\033[38;5;245m"
	colorGreen  = "\033[32m"
)

var version = "0.1.0"

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbose    bool
	configFile string
	rootDir    string
	logger     *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "ddas",
		Short: "DDAS - Data Download Duplication Alert System",
		Long: `Find files with identical content in a directory tree, report the space they
waste, and download or delete files under the allowed root.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			printMainBanner(cmd.OutOrStdout())
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&opts.rootDir, "root", "", "Directory downloads and deletions are confined to")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(scanCmd(opts))
	rootCmd.AddCommand(serveCmd(opts))
	rootCmd.AddCommand(getCmd(opts))
	rootCmd.AddCommand(rmCmd(opts))

	return rootCmd
}

// newLogger returns a development logger when verbose, otherwise a JSON
// logger that only emits errors
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
		Encoding:         "json",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}
	return cfg.Build()
}

// loadConfig reads configuration and applies the persistent flag overrides
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configFile)
	if err != nil {
		o.logger.Error("Failed to load config", zap.Error(err))
		return nil, err
	}
	if o.rootDir != "" {
		cfg.RootDir = o.rootDir
	}
	return cfg, nil
}

func (o *globalOptions) fileStore() (*core.FileStore, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return core.NewFileStore(cfg.RootDir, o.logger)
}

func scanCmd(opts *globalOptions) *cobra.Command {
	var (
		reportFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a directory for duplicate files",
		Long: `Recursively fingerprint every file under path and classify each one as
UNIQUE or DUPLICATE. Hidden files (names starting with "." or "__") are ignored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !config.IsReportFormat(reportFormat) {
				return fmt.Errorf("unknown report format: %s", reportFormat)
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if reportFormat != "" {
				cfg.ReportFormat = reportFormat
			}
			if outputFile != "" {
				cfg.OutputFile = outputFile
			}

			path := cfg.ScanPath
			if len(args) > 0 {
				path = args[0]
			}

			out := cmd.OutOrStdout()
			printBanner(out, path)

			scanner := core.NewScanner(cfg, opts.logger)
			if !opts.verbose {
				scanner.SetProgressCallback(func(phase string, current int, message string) {
					if phase == core.PhaseScanning && current%100 == 0 {
						fmt.Fprintf(out, "  %sFiles:%s      %d\n", colorGray, colorReset, current)
					}
				})
			}

			results, err := scanner.Scan(path)
			if err != nil {
				opts.logger.Error("Scan failed", zap.Error(err))
				return err
			}

			generator, err := report.NewGenerator(cfg, opts.logger)
			if err != nil {
				return err
			}
			generator.SetOutput(out)

			reportPath, err := generator.Generate(results)
			if err != nil {
				opts.logger.Error("Failed to generate report", zap.Error(err))
				return err
			}

			if reportPath != "" {
				fmt.Fprintf(out, "  %sDuplicates:%s %d of %d files, %s wasted\n",
					colorGray, colorReset, results.DuplicateFiles, results.TotalFiles, report.FormatBytes(results.SpaceWasted))
				fmt.Fprintf(out, "  %sReport:%s     %s%s%s\n\n", colorGray, colorReset, colorOrange, reportPath, colorReset)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Report format: json, yaml, txt, md (default: console output)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")

	return cmd
}

func serveCmd(opts *globalOptions) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for the web frontend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}

			store, err := core.NewFileStore(cfg.RootDir, opts.logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%sDDAS API%s listening on %s (root %s)\n",
				colorBold, colorReset, cfg.Server.Listen, store.Root())

			srv := server.New(cfg, opts.logger, core.NewScanner(cfg, opts.logger), store)
			return srv.Run()
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default: server.listen)")

	return cmd
}

func getCmd(opts *globalOptions) *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Copy a file from under the root directory",
		Long:  `Copy the file at path, relative to the root directory, to the output file or stdout.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.fileStore()
			if err != nil {
				return err
			}

			file, info, err := store.Retrieve(core.TrimDisplayPrefix(args[0]))
			if err != nil {
				return err
			}
			defer file.Close()

			var dst io.Writer = cmd.OutOrStdout()
			if outputFile != "" {
				if outputFile == "." {
					outputFile = info.Name()
				}
				f, err := os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outputFile, err)
				}
				defer f.Close()
				dst = f
			}

			n, err := io.Copy(dst, file)
			if err != nil {
				return fmt.Errorf("failed to copy %s: %w", info.Name(), err)
			}
			if outputFile != "" {
				abs, _ := filepath.Abs(outputFile)
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s✓%s %s (%s)\n", colorGreen, colorReset, abs, report.FormatBytes(n))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", `Output file ("." keeps the file name, default: stdout)`)

	return cmd
}

func rmCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Delete a file under the root directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.fileStore()
			if err != nil {
				return err
			}

			rel := core.TrimDisplayPrefix(args[0])
			if err := store.Remove(rel); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s✗%s %s\n", colorRed, colorReset, rel)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "  %s✓%s File deleted successfully\n", colorGreen, colorReset)
			return nil
		},
	}
}

// printMainBanner prints the main banner
func printMainBanner(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%sDDAS%s %sData Download Duplication Alert System v%s%s\n",
		colorBold, colorOrange, colorReset, colorGray, version, colorReset)
	fmt.Fprintln(w)
}

// printBanner prints the scan banner
func printBanner(w io.Writer, path string) {
	printMainBanner(w)
	fmt.Fprintf(w, "  %sScanning:%s  %s\n\n", colorGray, colorReset, path)
}
