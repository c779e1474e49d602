package cmd

import (
	"errors"
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
)

// moveResult is printed after a single gesture.
type moveResult struct {
	Selector string        `json:"selector,omitempty"`
	Target   *schemas.Point `json:"target,omitempty"`
	Position schemas.Point `json:"position"`
}

func newMoveCmd(a *app) *cobra.Command {
	var (
		url   string
		point string
	)

	cmd := &cobra.Command{
		Use:   "move [selector]",
		Short: "Perform one gesture to an element or a point.",
		Long: `Moves the pointer along a generated path to a random point inside the element
matched by selector, or to --point, applying the configured button actions.`,
		Example: `  gesture-cli move --url https://example.com "#submit" --end left_click
  gesture-cli move --point 300,200 --interpolation spline`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var selector string
			if len(args) == 1 {
				selector = args[0]
			}
			if (selector == "") == (point == "") {
				return errors.New("exactly one of a selector argument or --point is required")
			}
			var target *schemas.Point
			if point != "" {
				p, err := parsePoint(point)
				if err != nil {
					return err
				}
				target = &p
			}

			gesture, err := a.cfg.Gesture().Build()
			if err != nil {
				return err
			}

			provider := newTabProvider(a.cfg.Browser(), a.logger)
			defer shutdown(ctx, provider, a.logger)

			tab, err := provider.NewTab(ctx)
			if err != nil {
				return fmt.Errorf("failed to open tab: %w", err)
			}
			defer tab.Close()

			if url != "" {
				if err := tab.Navigate(ctx, url); err != nil {
					return fmt.Errorf("navigating to %s: %w", url, err)
				}
			}

			h := a.newHumanoid(tab, a.logger.With(zap.String("tab_id", tab.ID())), 0)
			if target != nil {
				err = h.MouseActionToPoint(ctx, gesture, *target)
			} else {
				err = h.MouseAction(ctx, gesture, selector)
			}
			if err != nil {
				return err
			}

			pos, err := h.CurrentPosition(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(moveResult{Selector: selector, Target: target, Position: pos})
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "", "page to load before the gesture")
	cmd.Flags().StringVarP(&point, "point", "p", "", "destination as x,y instead of a selector")
	addGestureFlags(cmd)
	return cmd
}
