package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rking788/warmind-advisors/bungie"
	"github.com/rking788/warmind-advisors/models"
)

// resolve turns the gamertag argument into an account on the --platform platform.
func resolve(ctx context.Context, gamertag string) (models.DestinyID, error) {
	id := client.ResolveIdentity(ctx, gamertag, platform)
	if id == nil {
		return models.DestinyID{}, fmt.Errorf("no Destiny account found for %q on %s", gamertag, platform)
	}

	return *id, nil
}

// character finds the requested character, or the last played one when characterID is empty.
func character(ctx context.Context, id models.DestinyID, characterID string) (*models.Character, error) {
	profile := client.GetProfile(ctx, id)
	if profile == nil {
		return nil, fmt.Errorf("profile for %s: %w", id, ErrUnavailable)
	}

	var char *models.Character
	if characterID == "" {
		char = profile.LastPlayedCharacter()
	} else {
		char = profile.Characters.FindCharacterFromID(characterID)
	}
	if char == nil {
		return nil, fmt.Errorf("no character %q for %s", characterID, id)
	}

	return char, nil
}

func newPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "player <gamertag>",
		Short: "Resolve a gamertag to a Destiny membership",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), newIdentity(args[0], id))
		},
	}
}

func newActivityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activity <gamertag>",
		Short: "Show the activity the player is in right now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			ref := client.GetCurrentActivity(cmd.Context(), id)
			if ref == nil {
				// Not playing
				return printResult(cmd.OutOrStdout(), nil)
			}

			return printResult(cmd.OutOrStdout(), newActivity(*ref))
		},
	}
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <gamertag>",
		Short: "Show the account's characters, grimoire score and triumphs progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var (
				profile  *models.Profile
				triumphs *int
				current  *models.ActivityReference
			)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				profile = client.GetProfile(ctx, id)
				if profile == nil {
					return fmt.Errorf("profile for %s: %w", id, ErrUnavailable)
				}
				return nil
			})
			g.Go(func() error {
				percent, ok, err := client.GetTriumphsProgress(ctx, id)
				if err != nil && !errors.Is(err, bungie.ErrEmptyRecordBook) {
					return err
				}
				if ok {
					triumphs = &percent
				}
				return nil
			})
			g.Go(func() error {
				current = client.GetCurrentActivity(ctx, id)
				return nil
			})
			if err := g.Wait(); err != nil {
				return err
			}

			result := newProfile(newIdentity(args[0], id), profile)
			result.Triumphs = triumphs
			if current != nil {
				activity := newActivity(*current)
				result.CurrentActivity = &activity
			}

			return printResult(cmd.OutOrStdout(), result)
		},
	}
}

func newInventoryCmd() *cobra.Command {
	var characterID string
	var equipped bool
	var itemHash uint

	cmd := &cobra.Command{
		Use:   "inventory <gamertag>",
		Short: "List the items carried by a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			char, err := character(cmd.Context(), id, characterID)
			if err != nil {
				return err
			}

			inventory := client.GetInventory(cmd.Context(), id, char.CharacterID)
			if inventory == nil {
				return fmt.Errorf("inventory for %s: %w", char.CharacterID, ErrUnavailable)
			}

			filters := make([]models.ItemFilter, 0, 2)
			if equipped {
				filters = append(filters, models.EquippedFilter)
			}
			if itemHash != 0 {
				filters = append(filters, models.ItemHashFilter(itemHash))
			}
			items := models.ItemList(inventory.Items).FilterItems(filters...).SortedByPower()

			return printResult(cmd.OutOrStdout(), newInventory(inventory, items))
		},
	}

	cmd.Flags().StringVar(&characterID, "character", "", "Character ID (default: last played)")
	cmd.Flags().BoolVar(&equipped, "equipped", false, "Only list equipped items")
	cmd.Flags().UintVar(&itemHash, "hash", 0, "Only list items with this item hash")

	return cmd
}

func newHistoryCmd() *cobra.Command {
	var characterID string

	cmd := &cobra.Command{
		Use:   "history <gamertag>",
		Short: "Show the most recent activity a character completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			char, err := character(cmd.Context(), id, characterID)
			if err != nil {
				return err
			}

			ref := client.GetLastCompletedActivity(cmd.Context(), char)
			if ref == nil {
				return fmt.Errorf("activity history for %s: %w", char.CharacterID, ErrUnavailable)
			}

			return printResult(cmd.OutOrStdout(), newActivity(*ref))
		},
	}

	cmd.Flags().StringVar(&characterID, "character", "", "Character ID (default: last played)")

	return cmd
}

func newRaidsCmd() *cobra.Command {
	var characterID string

	cmd := &cobra.Command{
		Use:   "raids <gamertag>",
		Short: "List the raids a character has completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			char, err := character(cmd.Context(), id, characterID)
			if err != nil {
				return err
			}

			raids, ok := client.GetRaidCompletions(cmd.Context(), char)
			if !ok {
				return fmt.Errorf("raid history for %s: %w", char.CharacterID, ErrUnavailable)
			}

			return printResult(cmd.OutOrStdout(), newActivities(raids))
		},
	}

	cmd.Flags().StringVar(&characterID, "character", "", "Character ID (default: last played)")

	return cmd
}

func newTriumphsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "triumphs <gamertag>",
		Short: "Show Age of Triumphs record book completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			percent, ok, err := client.GetTriumphsProgress(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("triumphs for %s: %w", id, ErrUnavailable)
			}

			return printResult(cmd.OutOrStdout(), map[string]int{"percent": percent})
		},
	}
}
