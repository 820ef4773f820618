package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/meridius/solver-pi/internal/loader"
	"github.com/meridius/solver-pi/internal/survey"
)

var dbPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "survey",
		Short: "Planetary survey database",
		Long: `Manages the survey database backing the mission planner:
scanned planet imports, survey listings and saved plan history.`,
	}
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "survey.db", "Path to survey database")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "import <planets.json>",
			Short: "Import scanned planets into the database",
			Args:  cobra.ExactArgs(1),
			Run:   runImport,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List surveyed planets",
			Run:   runList,
		},
		&cobra.Command{
			Use:   "show <planet-id>",
			Short: "Show one planet's surveyed resources",
			Args:  cobra.ExactArgs(1),
			Run:   runShow,
		},
		&cobra.Command{
			Use:   "plans [plan-id]",
			Short: "List saved plans, or show one plan's work orders",
			Args:  cobra.MaximumNArgs(1),
			Run:   runPlans,
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore() *survey.Store {
	store, err := survey.Open(dbPath)
	if err != nil {
		color.Red("Error opening survey database: %v", err)
		os.Exit(1)
	}
	return store
}

func runImport(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	planets, err := loader.LoadPlanets(args[0])
	if err != nil {
		color.Red("Error loading planets: %v", err)
		os.Exit(1)
	}
	if err := store.SavePlanets(planets); err != nil {
		color.Red("Error saving planets: %v", err)
		os.Exit(1)
	}
	color.Green("✓ Imported %d planets from %s", len(planets), args[0])
}

func runList(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	summaries, err := store.PlanetSummaries()
	if err != nil {
		color.Red("Error listing planets: %v", err)
		os.Exit(1)
	}
	if len(summaries) == 0 {
		fmt.Println("No planets surveyed yet")
		return
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Planet", "Resources", "Scanned"}),
	)
	for _, s := range summaries {
		_ = table.Append([]string{s.ID, fmt.Sprintf("%d", s.Resources), humanize.Time(s.ScannedAt)})
	}
	_ = table.Render()
}

func runShow(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	planet, err := store.Planet(args[0])
	if err != nil {
		color.Red("Error loading planet: %v", err)
		os.Exit(1)
	}

	fmt.Printf("🪐 %s\n\n", planet.ID)
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Resource", "Abundance"}),
	)
	for _, ra := range planet.Resources {
		_ = table.Append([]string{string(ra.Resource), fmt.Sprintf("%d", ra.Abundance)})
	}
	_ = table.Render()
}

func runPlans(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if len(args) == 1 {
		showPlan(store, args[0])
		return
	}

	plans, err := store.Plans()
	if err != nil {
		color.Red("Error listing plans: %v", err)
		os.Exit(1)
	}
	if len(plans) == 0 {
		fmt.Println("No plans saved yet")
		return
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Plan", "Created", "Yield", "Characters"}),
	)
	for _, p := range plans {
		_ = table.Append([]string{
			p.ID,
			humanize.Time(p.CreatedAt),
			fmt.Sprintf("%d", p.TotalYield),
			fmt.Sprintf("%d", len(p.Orders)),
		})
	}
	_ = table.Render()
}

func showPlan(store *survey.Store, id string) {
	rec, err := store.Plan(id)
	if err != nil {
		color.Red("Error loading plan: %v", err)
		os.Exit(1)
	}

	fmt.Printf("📋 Plan %s (%s, yield %d)\n\n", rec.ID, humanize.Time(rec.CreatedAt), rec.TotalYield)
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Character", "Planet", "Resource", "Yield", "Status"}),
	)
	for _, co := range rec.Orders {
		for _, o := range co.Orders {
			_ = table.Append([]string{
				co.Character,
				o.Planet,
				string(o.Resource),
				fmt.Sprintf("%d", o.Yield),
				string(o.Status),
			})
		}
	}
	_ = table.Render()
}
