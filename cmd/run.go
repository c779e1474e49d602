package cmd

import (
	"context"
	"errors"
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/gesture-cli/internal/script"
)

func newRunCmd(a *app) *cobra.Command {
	var failFast bool

	cmd := &cobra.Command{
		Use:   "run <script.yaml>...",
		Short: "Run gesture scripts, each in its own tab.",
		Long: `Loads every script, then runs them concurrently (bounded by browser.concurrency),
one tab per script. A JSON report per script is written to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scripts := make([]*script.Script, len(args))
			for i, path := range args {
				s, err := script.Load(path)
				if err != nil {
					return err
				}
				if s.Name == "" {
					s.Name = path
				}
				scripts[i] = s
			}

			reports, err := a.runScripts(cmd.Context(), scripts, failFast)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if encErr := enc.Encode(reports); encErr != nil {
				return errors.Join(err, encErr)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "cancel the remaining scripts after the first failure")
	return cmd
}

// runScripts runs each script in its own tab. Reports keep the input order; a script
// that never started has a report with no steps.
func (a *app) runScripts(ctx context.Context, scripts []*script.Script, failFast bool) ([]*script.Report, error) {
	provider := newTabProvider(a.cfg.Browser(), a.logger)
	defer shutdown(ctx, provider, a.logger)

	reports := make([]*script.Report, len(scripts))
	errs := make([]error, len(scripts))

	var g *errgroup.Group
	gctx := ctx
	if failFast {
		g, gctx = errgroup.WithContext(ctx)
	} else {
		g = new(errgroup.Group)
	}
	g.SetLimit(a.cfg.Browser().Concurrency)

	for i, s := range scripts {
		g.Go(func() error {
			report, err := a.runScript(gctx, provider, i, s)
			if report == nil {
				report = &script.Report{Script: s.Name, Total: len(s.Steps)}
			}
			reports[i] = report
			if err != nil {
				errs[i] = fmt.Errorf("script %s: %w", s.Name, err)
				if failFast {
					return errs[i]
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	return reports, errors.Join(errs...)
}

func (a *app) runScript(ctx context.Context, provider tabProvider, index int, s *script.Script) (*script.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tab, err := provider.NewTab(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open tab: %w", err)
	}
	defer tab.Close()

	logger := a.logger.With(zap.String("tab_id", tab.ID()), zap.String("script", s.Name))
	h := a.newHumanoid(tab, logger, index)
	runner := script.NewRunner(h, tab, a.cfg.Gesture(), a.cfg.Script(), logger)
	return runner.Run(ctx, s)
}
