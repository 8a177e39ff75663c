package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/Black-And-White-Club/dugout/app"
	lineupservice "github.com/Black-And-White-Club/dugout/app/modules/lineup/application"
	"github.com/Black-And-White-Club/dugout/app/modules/lineup/application/parsers"
	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
	"github.com/Black-And-White-Club/dugout/config"
	"github.com/Black-And-White-Club/dugout/internal/observability"
	"github.com/urfave/cli/v2"
)

func newCLIApp() *cli.App {
	return &cli.App{
		Name:  "dugout",
		Usage: "fantasy-baseball lineup helper",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
			},
		},
		Commands: []*cli.Command{
			newServeCommand(),
			newLineupCommand(),
		},
	}
}

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the web form and JSON API",
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer cancel()

			application, err := app.NewApp(ctx, cfg, c.App.ErrWriter)
			if err != nil {
				return err
			}
			return application.Start(ctx)
		},
	}
}

func newLineupCommand() *cli.Command {
	return &cli.Command{
		Name:  "lineup",
		Usage: "select a lineup and rotation from stat files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "CSV/TSV with a Type column, or a workbook with one sheet per list"},
			&cli.StringFlag{Name: "hitters", Usage: "tab-separated file of your hitters"},
			&cli.StringFlag{Name: "pitchers", Usage: "tab-separated file of your pitchers"},
			&cli.StringFlag{Name: "opp-hitters", Usage: "tab-separated file of opposing hitters"},
			&cli.StringFlag{Name: "opp-pitchers", Usage: "tab-separated file of opposing pitchers"},
			&cli.StringFlag{Name: "chart", Usage: "write a PNG bar chart of lineup scores to this path"},
			&cli.StringFlag{Name: "export", Usage: "write the lineup and rotation to this XLSX path"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log every operation to stderr"},
		},
		Action: runLineup,
	}
}

func runLineup(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	obsCfg := config.ToObsConfig(cfg)
	if !c.Bool("verbose") {
		obsCfg.LogLevel = "warn"
	}
	obs, err := observability.New(obsCfg, c.App.ErrWriter)
	if err != nil {
		return err
	}

	service := lineupservice.NewLineupService(
		lineupservice.Config{
			Delimiter:   cfg.Ingest.Delimiter,
			HitterRows:  cfg.Ingest.HitterRows,
			PitcherRows: cfg.Ingest.PitcherRows,
		},
		parsers.NewFactory(),
		obs.Logger,
		obs.Metrics,
		obs.Tracer,
	)

	result, err := selectFromFlags(c.Context, c, service)
	if err != nil {
		return err
	}
	if result.IsFailure() {
		return errors.New(lineupservice.ErrorPrefix + result.Failure.Message)
	}
	sel := *result.Success

	if err := printSelection(c.App.Writer, sel); err != nil {
		return err
	}

	if path := c.String("chart"); path != "" {
		if err := writeArtifact(c.Context, path, sel, service.RenderChart); err != nil {
			return err
		}
	}
	if path := c.String("export"); path != "" {
		if err := writeArtifact(c.Context, path, sel, service.ExportWorkbook); err != nil {
			return err
		}
	}
	return nil
}

func selectFromFlags(ctx context.Context, c *cli.Context, service lineupservice.Service) (lineupservice.SelectionResult, error) {
	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return lineupservice.SelectionResult{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return service.SelectFromFile(ctx, filepath.Base(path), data)
	}

	flags := map[lineuptypes.Role]string{
		lineuptypes.RoleMyHitters:   "hitters",
		lineuptypes.RoleMyPitchers:  "pitchers",
		lineuptypes.RoleOppHitters:  "opp-hitters",
		lineuptypes.RoleOppPitchers: "opp-pitchers",
	}
	texts := make(map[lineuptypes.Role]string, len(flags))
	for role, flag := range flags {
		path := c.String(flag)
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return lineupservice.SelectionResult{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		texts[role] = string(data)
	}
	return service.SelectFromText(ctx, texts)
}

func printSelection(w io.Writer, sel lineuptypes.Selection) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "LINEUP")
	printRows(tw, sel.Lineup, lineuptypes.ColPos, lineuptypes.ColName, lineuptypes.ColScore)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "ROTATION")
	printRows(tw, sel.Rotation, lineuptypes.ColName, lineuptypes.ColERA)

	return tw.Flush()
}

func printRows(w io.Writer, rows []lineuptypes.Row, columns ...string) {
	for i, col := range columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col)
	}
	fmt.Fprintln(w)
	for _, r := range rows {
		for i, col := range columns {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			v, _ := r.Get(col)
			fmt.Fprint(w, v)
		}
		fmt.Fprintln(w)
	}
}

func writeArtifact(
	ctx context.Context,
	path string,
	sel lineuptypes.Selection,
	build func(context.Context, lineuptypes.Selection) ([]byte, error),
) error {
	data, err := build(ctx, sel)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
