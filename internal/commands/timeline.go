package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"suviet_server/config"
	"suviet_server/internal/portal"
	"suviet_server/internal/timeline"
)

func addTimeline(topLevel *cobra.Command, opts *rootOptions, cfg *config.PopupConfig) {
	var period string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show the events of one historical period.",
		Example: `
portalctl timeline
portalctl timeline --period tran
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := portal.NewClient(opts.APIBaseURL, cfg.APITimeout)

			periods, err := client.Periods(cmd.Context())
			if err != nil {
				return fmt.Errorf("load periods: %w", err)
			}
			events, err := client.Events(cmd.Context(), "")
			if err != nil {
				return fmt.Errorf("load events: %w", err)
			}

			// The terminal has nothing to scroll.
			selector := timeline.NewSelector(timeline.NavigatorFunc(func(string) {}))
			selector.SetData(periods, events)
			selector.SyncActive(period)

			printTimeline(cmd, selector.Snapshot())
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "period slug (defaults to the first period)")
	topLevel.AddCommand(cmd)
}

func printTimeline(cmd *cobra.Command, snap timeline.Snapshot) {
	out := cmd.OutOrStdout()
	bold := color.New(color.Bold)

	if snap.ActivePeriod == nil {
		fmt.Fprintf(out, "timeline is %s\n", snap.State)
		return
	}

	p := snap.ActivePeriod
	fmt.Fprintf(out, "%s (%s)\n", bold.Sprint(p.Name), p.Timeframe)
	if p.Description != "" {
		fmt.Fprintln(out, p.Description)
	}
	fmt.Fprintln(out)

	if len(snap.Events) == 0 {
		fmt.Fprintln(out, "no events")
	} else {
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.MaxColWidth = 60
		tbl.AddRow(bold.Sprint("Year"), bold.Sprint("Event"), bold.Sprint("Types"))
		for _, e := range snap.Events {
			names := make([]string, 0, len(e.EventTypes))
			for _, et := range e.EventTypes {
				names = append(names, et.Name)
			}
			tbl.AddRow(e.Year, e.Title, strings.Join(names, ", "))
		}
		tbl.RightAlign(0)
		fmt.Fprintln(out, tbl)
	}

	fmt.Fprintln(out)
	if snap.HasPrevious {
		fmt.Fprintf(out, "previous: %s\n", snap.PreviousSlug)
	}
	if snap.HasNext {
		fmt.Fprintf(out, "next: %s\n", snap.NextSlug)
	}
}
