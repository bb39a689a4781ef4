package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mmrzaf/synthgen/internal/app"
	"github.com/mmrzaf/synthgen/internal/config"
	"github.com/mmrzaf/synthgen/internal/domain"
	"github.com/mmrzaf/synthgen/internal/infra/repos/configs"
	"github.com/mmrzaf/synthgen/internal/infra/repos/runs"
	"github.com/mmrzaf/synthgen/internal/logging"
	"github.com/mmrzaf/synthgen/internal/registry"
	"github.com/mmrzaf/synthgen/internal/table"
	"github.com/mmrzaf/synthgen/internal/validation"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configsDir string
	runsDBPath string
	logLevel   string
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "synthgen",
		Short: "Synthetic tabular data generator",
	}

	rootCmd.PersistentFlags().StringVar(&configsDir, "configs-dir", cfg.ConfigsDir, "Dataset configs directory")
	rootCmd.PersistentFlags().StringVar(&runsDBPath, "runs-db", cfg.RunsDBPath, "Run history database path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(kindsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig treats the argument as a file path when it looks like
// one, otherwise as a config ID in the configs directory.
func resolveConfig(repo *configs.FileRepository, arg string) (*domain.DatasetConfig, error) {
	if strings.Contains(arg, "/") || strings.HasSuffix(arg, ".yaml") || strings.HasSuffix(arg, ".yml") {
		return repo.GetByPath(arg)
	}
	return repo.Get(arg)
}

func generateCmd() *cobra.Command {
	var (
		seed      int64
		hasSeed   bool
		output    string
		preview   bool
		limit     int
		showStats bool
	)

	cmd := &cobra.Command{
		Use:   "generate <config-id|path>",
		Short: "Generate a dataset from a config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger(logLevel)

			configRepo := configs.NewFileRepository(configsDir)
			cfg, err := resolveConfig(configRepo, args[0])
			if err != nil {
				return err
			}

			opts := app.RunOptions{Output: output}
			if hasSeed {
				opts.Seed = &seed
			}

			if preview {
				runService := app.NewRunService(configRepo, nil, registry.Default(), logger)
				result, err := runService.Preview(cfg, opts, limit)
				if err != nil {
					return err
				}
				printResult(result)
				if showStats && result.Table != nil {
					printStats(result.Table)
				}
				return nil
			}

			runRepo := runs.NewSQLiteRepository(runsDBPath)
			if err := runRepo.Init(); err != nil {
				return err
			}
			defer runRepo.Close()

			runService := app.NewRunService(configRepo, runRepo, registry.Default(), logger)
			result, err := runService.Generate(cfg, opts)
			if err != nil {
				return err
			}

			fmt.Printf("Run %s completed\n", result.Run.ID)
			fmt.Printf("Destination: %s\n", result.Run.Destination)
			fmt.Printf("Seed: %d\n", result.Run.Seed)
			if result.Run.Stats != nil {
				var stats domain.RunStats
				json.Unmarshal(result.Run.Stats, &stats)
				fmt.Printf("Rows: %d\n", stats.RowsGenerated)
				fmt.Printf("Duration: %.2fs\n", stats.DurationSeconds)
			}

			if showStats && result.Table != nil {
				printStats(result.Table)
			}
			return nil
		},
	}

	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "Seed for RNG")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Override the output path")
	cmd.Flags().BoolVar(&preview, "preview", false, "Print rows instead of writing the destination")
	cmd.Flags().IntVar(&limit, "limit", 10, "Row limit for --preview")
	cmd.Flags().BoolVar(&showStats, "stats", false, "Print per-column stats")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		hasSeed = cmd.Flags().Changed("seed")
	}

	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-id|path>",
		Short: "Validate a dataset config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configRepo := configs.NewFileRepository(configsDir)
			cfg, err := resolveConfig(configRepo, args[0])
			if err != nil {
				return err
			}

			validator := validation.NewValidator(registry.Default())
			if err := validator.ValidateConfig(cfg); err != nil {
				fmt.Printf("Validation failed: %v\n", err)
				return err
			}

			fmt.Printf("Config '%s' is valid\n", cfg.ID)
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage dataset configs",
	}

	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List dataset configs",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := configs.NewFileRepository(configsDir)
			list, err := repo.List()
			if err != nil {
				return err
			}

			if format == "json" {
				data, _ := json.MarshalIndent(list, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tGENERATOR\tROWS")
			for _, c := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", c.ID, c.Name, c.Generator, c.Rows)
			}
			w.Flush()
			return nil
		},
	}
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show config details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := configs.NewFileRepository(configsDir)
			cfg, err := repo.Get(args[0])
			if err != nil {
				return err
			}

			data, _ := yaml.Marshal(cfg)
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Inspect run history",
	}

	var limit int
	var status string
	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepo := runs.NewSQLiteRepository(runsDBPath)
			if err := runRepo.Init(); err != nil {
				return err
			}
			defer runRepo.Close()

			list, err := runRepo.List(limit, status)
			if err != nil {
				return err
			}

			if format == "json" {
				data, _ := json.MarshalIndent(list, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tGENERATOR\tROWS\tDESTINATION\tSTATUS\tSTARTED")
			for _, r := range list {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
					shortID(r.ID), r.Generator, r.Rows, r.Destination, r.Status, r.StartedAt.Format("2006-01-02 15:04"))
			}
			w.Flush()
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Limit results")
	listCmd.Flags().StringVar(&status, "status", "", "Filter by status")
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	showCmd := &cobra.Command{
		Use:   "show <run_id>",
		Short: "Show run details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepo := runs.NewSQLiteRepository(runsDBPath)
			if err := runRepo.Init(); err != nil {
				return err
			}
			defer runRepo.Close()

			run, err := runRepo.Get(args[0])
			if err != nil {
				return err
			}

			data, _ := yaml.Marshal(run)
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}

func kindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List generator kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, kind := range registry.Default().Kinds() {
				fmt.Println(kind)
			}
			return nil
		},
	}
}

func printResult(result *app.RunResult) {
	if result.Lines != nil {
		for _, line := range result.Lines {
			fmt.Println(line)
		}
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(result.Table.Columns, "\t"))
	for _, row := range result.Table.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatValue(v)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
}

func printStats(t *domain.Table) {
	stats := table.Stats(t)
	if len(stats) == 0 {
		return
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tMEAN\tMIN\tMAX\tNULLS")
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%d\n", s.Name, s.Mean, s.Min, s.Max, s.NullCount)
	}
	w.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "<null>"
	case string:
		return val
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprintf("%v", val)
	}
}
