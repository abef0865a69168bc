package system

import (
	"fmt"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/cli/blocks"
	"github.com/routineanchor/anchor/internal/cli/days"
	"github.com/routineanchor/anchor/internal/cli/reports"
	"github.com/routineanchor/anchor/internal/cli/settings"
	"github.com/routineanchor/anchor/internal/deeplink"
)

// buildRegistry binds each deep-link tab to the command that renders it.
// Both the open command and notification action callbacks dispatch
// through the same registry.
func buildRegistry(ctx *cli.Context) *deeplink.Registry {
	reg := deeplink.NewRegistry()

	dayTab := func(route deeplink.Route) error {
		switch route.Action {
		case deeplink.ActionComplete:
			cmd := blocks.BlockCompleteCmd{ID: route.BlockID}
			return cmd.Run(ctx)
		case deeplink.ActionSkip:
			cmd := blocks.BlockSkipCmd{ID: route.BlockID}
			return cmd.Run(ctx)
		case deeplink.ActionAddBlock:
			return fmt.Errorf("adding a block requires arguments, use 'anchor block add'")
		default:
			cmd := days.DayCmd{Date: "today"}
			return cmd.Run(ctx)
		}
	}
	reg.Register(deeplink.TabToday, dayTab)
	reg.Register(deeplink.TabSchedule, dayTab)

	reg.Register(deeplink.TabProgress, func(route deeplink.Route) error {
		cmd := reports.ProgressShowCmd{Date: "today"}
		return cmd.Run(ctx)
	})

	reg.Register(deeplink.TabSettings, func(route deeplink.Route) error {
		cmd := settings.SettingsCmd{List: true}
		return cmd.Run(ctx)
	})

	return reg
}

// OpenCmd resolves an anchor:// deep link and runs the matching command.
type OpenCmd struct {
	URI string `arg:"" help:"Deep link to open (anchor://<tab>[/<action>[/<block-id>]])."`
}

func (c *OpenCmd) Run(ctx *cli.Context) error {
	route, err := deeplink.Parse(c.URI)
	if err != nil {
		return err
	}
	return buildRegistry(ctx).Dispatch(route)
}

// NotifyActionCmd handles a notification action button press forwarded by
// the tray companion app.
type NotifyActionCmd struct {
	Action  string `arg:"" help:"Notification action name (complete, skip, view_summary)."`
	BlockID string `arg:"" optional:"" help:"Block the action applies to."`
}

func (c *NotifyActionCmd) Run(ctx *cli.Context) error {
	route, err := deeplink.FromNotificationAction(c.Action, c.BlockID)
	if err != nil {
		return err
	}
	return buildRegistry(ctx).Dispatch(route)
}
