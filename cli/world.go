package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rking788/warmind-advisors/models"
)

func newClanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clan <clan-id>",
		Short: "List every member of a clan on the --platform platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if platform == models.AnyPlatform {
				return fmt.Errorf("clan rosters need --platform xbox or playstation")
			}

			roster := client.GetClanRoster(cmd.Context(), args[0], platform)

			members := make([]Member, 0, len(roster))
			for _, member := range roster {
				members = append(members, Member{
					DisplayName:    member.DisplayName,
					Platform:       member.ID.Platform().String(),
					MembershipID:   member.ID.MembershipID(),
					MembershipType: member.MembershipType,
				})
			}

			return printResult(cmd.OutOrStdout(), members)
		},
	}
}

func newXurCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xur",
		Short: "List the exotics Xur is selling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stock, ok := client.GetXurVendorStock(cmd.Context())
			if !ok {
				return fmt.Errorf("xur inventory: %w", ErrUnavailable)
			}

			items := make([]XurItem, 0, len(stock))
			for _, item := range stock {
				kind := "weapon"
				if item.IsArmor {
					kind = "armor"
				}
				items = append(items, XurItem{ItemHash: item.ItemHash, Kind: kind})
			}

			return printResult(cmd.OutOrStdout(), items)
		},
	}
}

func newWeeklyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekly",
		Short: "Show this week's featured activities and modifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			program := client.GetWeeklyProgram(cmd.Context())
			if program == nil {
				return fmt.Errorf("weekly activities: %w", ErrUnavailable)
			}

			return printResult(cmd.OutOrStdout(), newWeekly(program))
		},
	}
}

func newRawCmd() *cobra.Command {
	var query []string

	cmd := &cobra.Command{
		Use:   "raw <path>",
		Short: "Print the Response object of any endpoint below the base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := url.Values{}
			for _, pair := range query {
				key, value, found := strings.Cut(pair, "=")
				if !found {
					return fmt.Errorf("query parameter %q is not key=value", pair)
				}
				values.Add(key, value)
			}

			response := client.GetRaw(cmd.Context(), args[0], values)
			if response == nil {
				return fmt.Errorf("%s: %w", args[0], ErrUnavailable)
			}

			return printResult(cmd.OutOrStdout(), response)
		},
	}

	cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "Query parameter as key=value, repeatable")

	return cmd
}
