package cmd

import (
	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
	"github.com/xkilldash9x/gesture-cli/internal/browser/humanoid"
)

// planOutput is a gesture rendered without a browser.
type planOutput struct {
	Interpolation string                   `json:"interpolation"`
	StartAction   string                   `json:"startAction"`
	EndAction     string                   `json:"endAction"`
	Steps         int                      `json:"steps"`
	Path          []schemas.Point          `json:"path"`
	Sequence      *schemas.ActionSequence  `json:"sequence"`
	Events        []schemas.MouseEventData `json:"events,omitempty"`
}

func newPlanCmd(a *app) *cobra.Command {
	var (
		from   string
		to     string
		events bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the path and action sequence for a gesture without a browser.",
		Example: `  gesture-cli plan --from 0,0 --to 400,300 --interpolation spline --seed 7
  gesture-cli plan --from 10,10 --to 50,80 --start left_hold --end left_release --events`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parsePoint(from)
			if err != nil {
				return err
			}
			end, err := parsePoint(to)
			if err != nil {
				return err
			}
			gesture, err := a.cfg.Gesture().Build()
			if err != nil {
				return err
			}

			h := a.newHumanoid(nil, a.logger, 0)
			path := h.Plan(start, end, gesture)
			seq := humanoid.BuildSequence(gesture, path)

			out := planOutput{
				Interpolation: gesture.Interpolation().String(),
				StartAction:   gesture.StartAction().String(),
				EndAction:     gesture.EndAction().String(),
				Steps:         gesture.Steps(),
				Path:          path,
				Sequence:      seq,
			}
			if events {
				out.Events, _ = seq.MouseEvents(schemas.PointerState{Pos: start})
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&from, "from", "0,0", "start point as x,y")
	cmd.Flags().StringVar(&to, "to", "", "end point as x,y")
	cmd.Flags().BoolVar(&events, "events", false, "also print the expanded mouse events")
	_ = cmd.MarkFlagRequired("to")
	addGestureFlags(cmd)
	return cmd
}
