package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"suviet_server/config"
	"suviet_server/internal/clock"
	"suviet_server/internal/popup"
)

// inlineScheduler runs callbacks immediately and remembers the last delay.
type inlineScheduler struct {
	delay time.Duration
}

func (s *inlineScheduler) AfterFunc(d time.Duration, f func()) {
	s.delay = d
	f()
}

func addPopup(topLevel *cobra.Command, opts *rootOptions, cfg *config.PopupConfig) {
	cmd := &cobra.Command{
		Use:   "popup",
		Short: "Check or change the popup notice state of the local visitor.",
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Resolve whether the popup would be shown now.",
		Example: `
portalctl popup status
portalctl popup status --api https://suviet.vn --store ~/.suviet
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPopupStatus(cmd, opts, cfg, clock.NewSystem())
		},
	}

	dismiss := &cobra.Command{
		Use:   "dismiss",
		Short: "Record a dismissal now, as closing the popup does.",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := popup.NewDiskStore(opts.StoreDir)
			now := config.GetCurrentTime()
			if err := popup.RecordDismissal(store, now); err != nil {
				return fmt.Errorf("record dismissal: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dismissed at %s (%s)\n",
				popup.FormatRecord(now), now.Format("2006-01-02 15:04 MST"))
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Forget the local dismissal record.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := popup.NewDiskStore(opts.StoreDir).Remove(popup.DismissalKey); err != nil {
				return fmt.Errorf("remove dismissal record: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "dismissal record cleared")
			return nil
		},
	}

	cmd.AddCommand(status, dismiss, reset)
	topLevel.AddCommand(cmd)
}

func runPopupStatus(cmd *cobra.Command, opts *rootOptions, cfg *config.PopupConfig, clk clock.Clock) error {
	out := cmd.OutOrStdout()
	bold := color.New(color.Bold)

	store := popup.NewDiskStore(opts.StoreDir)
	fetcher := popup.NewHTTPFetcher(opts.APIBaseURL, nil, cfg.DefaultCooldownHours)
	sched := &inlineScheduler{}
	gate := popup.NewGate(fetcher, store,
		popup.WithClock(clk),
		popup.WithScheduler(sched),
		popup.WithDelays(cfg.ShowDelay, cfg.HideDelay))

	state := gate.Resolve(cmd.Context())
	settings := gate.Settings()

	fmt.Fprintf(out, "%s %s\n", bold.Sprint("state:"), state)
	if state == popup.StateVisible {
		fmt.Fprintf(out, "%s show after %s\n", bold.Sprint("decision:"), sched.delay)
		fmt.Fprintf(out, "%s %s\n", bold.Sprint("title:"), settings.Title)
		return nil
	}

	fmt.Fprintf(out, "%s suppressed\n", bold.Sprint("decision:"))
	switch {
	case !settings.Enabled:
		fmt.Fprintln(out, "reason: popup disabled or settings unavailable")
	case settings.Content == "":
		fmt.Fprintln(out, "reason: popup has no content")
	default:
		last, err := popup.LastDismissed(store)
		if err == nil && last != nil {
			remaining := time.Duration(settings.CooldownHours*float64(time.Hour)) - clk.Now().Sub(*last)
			fmt.Fprintf(out, "reason: dismissed at %s, cooldown %gh, %s remaining\n",
				popup.FormatRecord(*last), settings.CooldownHours, remaining.Round(time.Minute))
		}
	}
	return nil
}
