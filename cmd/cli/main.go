package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"datasight/adapters/loader"
	"datasight/domain/chart"
	"datasight/domain/profile"
	"datasight/domain/table"
	"datasight/internal"
	"datasight/internal/profiling"
	"datasight/internal/render"
	"datasight/internal/report"
	"datasight/internal/testkit"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "datasight-cli",
		Short: "Profile tabular files, suggest charts and render reports offline",
	}

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log loader activity to stderr")

	newLoader := func() *loader.Loader {
		logger := internal.NopLogger()
		if verbose {
			logger = internal.NewLoggerWithConfig(internal.LogConfig{Level: internal.LogLevelDebug, Format: "console"})
		}
		return loader.New(loader.DefaultConfig(), logger)
	}

	rootCmd.AddCommand(
		newProfileCmd(newLoader),
		newSuggestCmd(newLoader),
		newRenderCmd(newLoader),
		newReportCmd(newLoader),
		newSampleCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type loaderFactory func() *loader.Loader

// fileProfile is one entry of the profile command output
type fileProfile struct {
	File     string                  `json:"file"`
	Analysis *profile.DatasetProfile `json:"analysis"`
}

func newProfileCmd(newLoader loaderFactory) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "profile [files...]",
		Short: "Profile one or more files and print the analysis as JSON",
		Long: `Profile every file in parallel. Output is a JSON array in argument order.

Example: datasight-cli profile sales.csv employees.xlsx --workers 4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := profileFiles(cmd.Context(), newLoader(), args, workers)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 4, "Maximum files profiled concurrently")

	return cmd
}

// profileFiles loads and profiles paths concurrently. The first failure
// cancels the remaining work.
func profileFiles(ctx context.Context, l *loader.Loader, paths []string, workers int) ([]fileProfile, error) {
	results := make([]fileProfile, len(paths))
	profiler := profiling.NewDataProfiler()

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := loadFile(l, path)
			if err != nil {
				return err
			}
			results[i] = fileProfile{File: path, Analysis: profiler.ProfileDataset(t)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func newSuggestCmd(newLoader loaderFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [file]",
		Short: "Print the suggested charts for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadFile(newLoader(), args[0])
			if err != nil {
				return err
			}
			p := profiling.Profile(t)
			out := cmd.OutOrStdout()
			if len(p.Suggestions) == 0 {
				fmt.Fprintln(out, "No charts to suggest")
				return nil
			}
			for i, s := range p.Suggestions {
				fmt.Fprintf(out, "%d. %-22s %s\n", i+1, s.Type, s.Title)
			}
			return nil
		},
	}
}

func newRenderCmd(newLoader loaderFactory) *cobra.Command {
	var cfg chart.Config
	var chartType string
	var columns string

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a chart description as JSON",
		Long: `Render one chart for a file.

Example: datasight-cli render employees.csv --type scatter --x Age --y Salary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadFile(newLoader(), args[0])
			if err != nil {
				return err
			}
			cfg.Type = chart.Type(chartType)
			if columns != "" {
				for _, c := range strings.Split(columns, ",") {
					if c = strings.TrimSpace(c); c != "" {
						cfg.Columns = append(cfg.Columns, c)
					}
				}
			}
			desc, err := render.Render(t, cfg)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), desc)
		},
	}

	cmd.Flags().StringVar(&chartType, "type", string(chart.TypeHistogram), "Chart type")
	cmd.Flags().StringVar(&cfg.Title, "title", "", "Chart title (defaults to one derived from the columns)")
	cmd.Flags().StringVar(&cfg.Column, "column", "", "Column for single-column charts")
	cmd.Flags().StringVar(&cfg.XColumn, "x", "", "X column for two-column charts")
	cmd.Flags().StringVar(&cfg.YColumn, "y", "", "Y column for two-column charts")
	cmd.Flags().StringVar(&columns, "columns", "", "Comma separated columns for the correlation heatmap")

	return cmd
}

func newReportCmd(newLoader loaderFactory) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Write a markdown or HTML profile report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadFile(newLoader(), args[0])
			if err != nil {
				return err
			}
			p := profiling.Profile(t)

			var body []byte
			switch strings.ToLower(format) {
			case "markdown", "md":
				body = []byte(report.Markdown(t.Name(), p))
			case "html":
				body = report.HTML(t.Name(), p)
			default:
				return fmt.Errorf("unknown report format %q (use markdown or html)", format)
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			return os.WriteFile(output, body, 0o644)
		},
	}

	cmd.Flags().StringVar(&format, "format", "markdown", "Report format: markdown or html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}

func newSampleCmd() *cobra.Command {
	cfg := testkit.DefaultEmployeeConfig()

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a synthetic employee CSV for trying out the pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := testkit.NewEmployeeGenerator(cfg).CSV()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().IntVar(&cfg.Rows, "rows", cfg.Rows, "Number of rows")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for deterministic output")
	cmd.Flags().Float64Var(&cfg.MissingSalary, "missing", cfg.MissingSalary, "Probability that a salary is missing")

	return cmd
}

func loadFile(l *loader.Loader, path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := l.Load(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
