package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/catvote/internal/app"
	"github.com/five82/catvote/internal/breeds"
	"github.com/five82/catvote/internal/catapi"
)

func catsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "cats",
		Short: "Fetch a batch of candidate images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, flags, func(ctx context.Context, env *app.Env, out *printer) error {
				cats, err := env.Client.FetchCats(ctx)
				if err != nil {
					return fmt.Errorf("fetch cats: %w", err)
				}
				rows := make([][]string, 0, len(cats))
				for _, c := range cats {
					rows = append(rows, []string{c.ID, c.URL})
				}
				return out.table(cats, []string{"ID", "URL"}, rows, "No cats returned.")
			})
		},
	}
}

func breedsCmd(flags *rootFlags) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "breeds",
		Short: "List breeds sorted by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, flags, func(ctx context.Context, env *app.Env, out *printer) error {
				list, err := env.Client.FetchBreeds(ctx)
				if err != nil {
					return fmt.Errorf("fetch breeds: %w", err)
				}
				list = breeds.Filter(breeds.Sort(list), filter)
				rows := make([][]string, 0, len(list))
				for _, b := range list {
					rows = append(rows, []string{b.ID, b.Name})
				}
				return out.table(list, []string{"ID", "Name"}, rows, "No breeds found.")
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "only breeds whose name contains this text")
	return cmd
}

func breedCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "breed <id>",
		Short: "Show one breed with its images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, flags, func(ctx context.Context, env *app.Env, out *printer) error {
				b, err := env.Client.FetchBreedDetail(ctx, args[0])
				if err != nil {
					return fmt.Errorf("fetch breed %s: %w", args[0], err)
				}
				if out.json {
					return out.value(b)
				}
				return printBreed(out, *b)
			})
		},
	}
}

func printBreed(out *printer, b catapi.Breed) error {
	name := strings.TrimSpace(b.Name)
	if name == "" {
		name = breeds.UnknownName
	}
	desc := strings.TrimSpace(b.Description)
	if desc == "" {
		desc = breeds.NoDescription
	}

	rows := [][]string{{"Name", name}}
	if origin := strings.TrimSpace(b.Origin); origin != "" {
		rows = append(rows, []string{"Origin", origin})
	}
	rows = append(rows, []string{"Description", desc})
	if wiki := strings.TrimSpace(b.WikipediaURL); wiki != "" {
		rows = append(rows, []string{"Wikipedia", wiki})
	}
	if len(b.Images) == 0 {
		rows = append(rows, []string{"Images", breeds.NoImageMessage})
	}
	for i, img := range b.Images {
		rows = append(rows, []string{fmt.Sprintf("Image %d", i+1), img})
	}
	return out.table(b, []string{"Field", "Value"}, rows, "")
}

func voteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "vote <image-id> <image-url> <like|dislike|love>",
		Short: "Submit a vote for an image",
		Long:  `Submit a vote for an image. A love vote also saves the image as a favorite.`,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			vote, ok := catapi.ParseVote(args[2])
			if !ok {
				return fmt.Errorf("%w: %q", catapi.ErrInvalidVote, args[2])
			}
			req := catapi.VoteRequest{
				ImageID:  strings.TrimSpace(args[0]),
				ImageURL: strings.TrimSpace(args[1]),
				Vote:     vote,
			}
			if req.ImageID == "" {
				return catapi.ErrMissingID
			}
			return withEnv(cmd, flags, func(ctx context.Context, env *app.Env, out *printer) error {
				if err := env.Client.SubmitVote(ctx, req); err != nil {
					return fmt.Errorf("submit vote: %w", err)
				}
				env.Logger.Info().Str("image_id", req.ImageID).Str("vote", string(vote)).Msg("vote recorded")
				return out.message(fmt.Sprintf("Recorded %s for %s", vote, req.ImageID))
			})
		},
	}
}

func favoritesCmd(flags *rootFlags) *cobra.Command {
	var probe bool
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List favorite images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, flags, func(ctx context.Context, env *app.Env, out *printer) error {
				favs, err := env.Client.FetchFavorites(ctx)
				if err != nil {
					return fmt.Errorf("fetch favorites: %w", err)
				}
				headers := []string{"ID", "URL"}
				rows := make([][]string, 0, len(favs))
				for _, f := range favs {
					rows = append(rows, []string{f.ID, f.URL})
				}
				if probe {
					headers = append(headers, "Image")
					urls := make([]string, len(favs))
					for i, f := range favs {
						urls[i] = f.URL
					}
					for i, res := range catapi.ProbeAll(ctx, env.Client, urls, 0) {
						status := res.Info.Dimensions()
						if res.Err != nil {
							status = "broken"
						}
						rows[i] = append(rows[i], status)
					}
				}
				return out.table(favs, headers, rows, "No favorite cats yet!")
			})
		},
	}
	cmd.Flags().BoolVar(&probe, "probe", false, "check that each image loads and show its size")
	cmd.AddCommand(favoritesRemoveCmd(flags))
	return cmd
}

func favoritesRemoveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a favorite",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, flags, func(ctx context.Context, env *app.Env, out *printer) error {
				if err := env.Client.DeleteFavorite(ctx, args[0]); err != nil {
					return fmt.Errorf("remove favorite: %w", err)
				}
				return out.message("Removed favorite " + args[0])
			})
		},
	}
}
