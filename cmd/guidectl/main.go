// guidectl runs the resource pipeline and guide drafting from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anatolykoptev/go_guide/internal/app"
	"github.com/anatolykoptev/go_guide/internal/engine/guide"
	"github.com/anatolykoptev/go_guide/internal/engine/resources"
	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	jsonOutput bool
	domain     string
	kindFlag   string
	complexity string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "guidectl",
		Short:         "Find and rank learning resources for project ideas",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVarP(&domain, "domain", "d", "", "Engineering field (e.g. Electrical Engineering)")
	rootCmd.PersistentFlags().StringVarP(&kindFlag, "kind", "k", "video", "Resource kind: video or repository")
	rootCmd.PersistentFlags().StringVar(&complexity, "complexity", "", "Skill level: Beginner, Intermediate, Advanced")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "resources <subject>",
			Short: "Run the full pipeline and print ranked resources",
			Args:  cobra.MinimumNArgs(1),
			RunE:  runResources,
		},
		&cobra.Command{
			Use:   "strategies <subject>",
			Short: "Print the planned search strategies without running them",
			Args:  cobra.MinimumNArgs(1),
			RunE:  runStrategies,
		},
		&cobra.Command{
			Use:   "fallback <subject>",
			Short: "Print fallback links",
			Args:  cobra.MinimumNArgs(1),
			RunE:  runFallback,
		},
		&cobra.Command{
			Use:   "guide <subject>",
			Short: "Draft a project guide with ranked resources",
			Args:  cobra.MinimumNArgs(1),
			RunE:  runGuide,
		},
	)
	return rootCmd
}

func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, app.LoadConfig())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func request(args []string) (resources.Request, error) {
	kind, err := resources.ParseKind(strings.ToLower(kindFlag))
	if err != nil {
		return resources.Request{}, err
	}
	return resources.Request{
		Subject:    strings.Join(args, " "),
		Domain:     domain,
		Complexity: complexity,
		Kind:       kind,
	}, nil
}

func runResources(cmd *cobra.Command, args []string) error {
	req, err := request(args)
	if err != nil {
		return err
	}
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		rep, err := a.Resources.Rank(ctx, req)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(rep)
		}
		if rep.Fallback {
			fmt.Println("No qualifying results; search pages:")
			printLines(rep.Links)
			return nil
		}
		if req.Kind == resources.KindRepository {
			fmt.Print(resources.FormatRepos(rep.Candidates))
		} else {
			fmt.Print(resources.FormatVideos(rep.Candidates))
		}
		return nil
	})
}

func runStrategies(cmd *cobra.Command, args []string) error {
	req, err := request(args)
	if err != nil {
		return err
	}
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		strats, err := a.Resources.Strategies(req)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(strats)
		}
		for _, st := range strats {
			fmt.Printf("%-22s %-8s %s\n", st.Name, st.Provider, st.Query)
		}
		return nil
	})
}

func runFallback(cmd *cobra.Command, args []string) error {
	req, err := request(args)
	if err != nil {
		return err
	}
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		links, err := a.Resources.Fallback(ctx, req.Subject, req.Domain, req.Kind)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(links)
		}
		printLines(links)
		return nil
	})
}

func runGuide(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		g, err := a.Drafter.Draft(ctx, guide.Request{
			Subject:    strings.Join(args, " "),
			Field:      domain,
			Complexity: complexity,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(g)
		}
		fmt.Printf("# %s\n\n%s\n\n%s\n\n", g.Title, g.ShortDescription, g.DetailedDescription)
		fmt.Println("## Components")
		for _, c := range g.Components {
			fmt.Printf("- %s: %s (%s)\n", c.Name, c.Purpose, c.Specs)
		}
		fmt.Printf("\n## Frameworks\n%s\n", strings.Join(g.Frameworks, ", "))
		fmt.Printf("\nDifficulty: %s, estimated time: %s\n", g.DifficultyLevel, g.EstimatedTime)
		fmt.Println("\n## Videos")
		printLines(g.Videos)
		fmt.Println("\n## Repositories")
		printLines(g.Repositories)
		return nil
	})
}

func printLines(lines []string) {
	for _, l := range lines {
		fmt.Println(l)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
