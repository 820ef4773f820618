package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/meridius/solver-pi/internal/loader"
	"github.com/meridius/solver-pi/internal/models"
	"github.com/meridius/solver-pi/internal/solver/mission"
	"github.com/meridius/solver-pi/internal/survey"
	"github.com/meridius/solver-pi/internal/viz"
)

var (
	planetsFile string
	configFile  string
	dbPath      string
	usePrior    bool
	savePlan    bool
	dotFile     string
	quiet       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mission",
		Short: "Planetary Interaction Mission Planner",
		Long: `A min-cost flow solver that assigns characters to planets so the
fleet collects the demanded resources at the highest total abundance,
preferring pairings from the previously accepted plan.`,
		Run: runSolver,
	}

	rootCmd.Flags().StringVarP(&planetsFile, "planets", "p", "examples/planets.json", "Path to scanned planets JSON")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "examples/mission.yaml", "Path to mission YAML config")
	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "", "Path to survey database")
	rootCmd.Flags().BoolVar(&usePrior, "prior", false, "Seed the prior plan from the latest saved plan (needs --db)")
	rootCmd.Flags().BoolVar(&savePlan, "save", false, "Save the accepted plan to the survey database (needs --db)")
	rootCmd.Flags().StringVar(&dotFile, "dot", "", "Write the solved network as Graphviz DOT to this file")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSolver(cmd *cobra.Command, args []string) {
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgYellow)

	if !quiet {
		banner := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2).
			Render("Planetary Interaction\nMission Planner")
		fmt.Println(banner)
		fmt.Println()
	}

	if (usePrior || savePlan) && dbPath == "" {
		color.Red("Error: --prior and --save need --db")
		os.Exit(1)
	}

	var store *survey.Store
	if dbPath != "" {
		var err error
		store, err = survey.Open(dbPath)
		if err != nil {
			color.Red("Error opening survey database: %v", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	// Load mission config
	cfg, err := loader.LoadMission(configFile)
	if err != nil {
		color.Red("Error loading mission config: %v", err)
		os.Exit(1)
	}
	characters := cfg.CharacterList()
	targets, err := cfg.ResolveTargets()
	if err != nil {
		color.Red("Error resolving targets: %v", err)
		os.Exit(1)
	}

	// Load planets
	planets, err := loadPlanets(cmd, store)
	if err != nil {
		color.Red("Error loading planets: %v", err)
		os.Exit(1)
	}

	if !quiet {
		infoColor.Printf("📦 Loaded %d planets, %d characters, %d targets\n", len(planets), len(characters), len(targets))
	}

	// Load prior plan
	var prior models.PriorPlan
	if usePrior {
		prior, err = store.LatestPrior()
		if err != nil {
			color.Red("Error loading prior plan: %v", err)
			os.Exit(1)
		}
		if !quiet {
			if prior == nil {
				infoColor.Println("📜 No saved plan yet, solving fresh")
			} else {
				infoColor.Printf("📜 Prior plan loaded for %d characters\n", len(prior))
			}
		}
	}

	if !quiet {
		infoColor.Println("🔄 Solving mission assignment...")
		fmt.Println()
	}

	solution, err := mission.NewSolver(characters, planets, targets, prior, cfg.SwitchingCost).Solve()
	if err != nil {
		color.Red("Error solving mission: %v", err)
		os.Exit(1)
	}

	printWorkOrders(solution)
	printSummary(solution, prior != nil)

	if savePlan {
		id, err := store.SavePlan(solution.Orders, solution.TotalYield)
		if err != nil {
			color.Red("Error saving plan: %v", err)
			os.Exit(1)
		}
		successColor.Printf("\n💾 Plan saved as %s\n", id)
	}

	if dotFile != "" {
		if err := writeDOTFile(dotFile, solution); err != nil {
			color.Red("Error writing DOT file: %v", err)
			os.Exit(1)
		}
		if !quiet {
			infoColor.Printf("🗺️  Network graph written to %s\n", dotFile)
		}
	}
}

// loadPlanets reads survey data from the database when one is attached,
// unless an explicit --planets flag points at a file.
func loadPlanets(cmd *cobra.Command, store *survey.Store) ([]models.Planet, error) {
	if store != nil && !cmd.Flags().Changed("planets") {
		return store.Planets()
	}
	return loader.LoadPlanets(planetsFile)
}

func printWorkOrders(solution *mission.Solution) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Character", "Planet", "Resource", "Yield", "Status"}),
	)

	for _, co := range solution.Orders {
		for _, o := range co.Orders {
			resource := string(o.Resource)
			if !o.Collected() {
				resource = "(none)"
			}
			row := []string{
				co.Character,
				o.Planet,
				resource,
				fmt.Sprintf("%d", o.Yield),
				formatStatus(o.Status),
			}
			_ = table.Append(row)
		}
	}

	_ = table.Render()
}

func printSummary(solution *mission.Solution, hadPrior bool) {
	successColor := color.New(color.FgGreen)
	errorColor := color.New(color.FgRed)

	fmt.Printf("\n⛏️  Total yield: %d across %d collections\n", solution.TotalYield, solution.UnitsAssigned)

	if hadPrior {
		kept, total := 0, 0
		for _, co := range solution.Orders {
			for _, o := range co.Orders {
				total++
				if o.Status == models.StatusUnchanged {
					kept++
				}
			}
		}
		fmt.Printf("♻️  Kept %d of %d assignments from the prior plan\n", kept, total)
	}

	fmt.Println("\n📋 Target verification:")
	for _, f := range solution.Fulfillment {
		if f.Met() {
			successColor.Printf("   ✅ %s: target=%d, delivered=%d\n", f.Resource, f.Target, f.Delivered)
		} else {
			errorColor.Printf("   ❌ %s: target=%d, delivered=%d (short by %d)\n",
				f.Resource, f.Target, f.Delivered, f.Target-f.Delivered)
		}
	}

	if solution.FullyMet() {
		successColor.Println("\n✅ All resource targets fulfilled!")
	} else {
		errorColor.Println("\n❌ Demand exceeds what the fleet can collect!")
	}
}

func formatStatus(status models.OrderStatus) string {
	switch status {
	case models.StatusUnchanged:
		return "✓ unchanged"
	case models.StatusNewCharacter:
		return "🆕 new character"
	case models.StatusPlanetSwitch:
		return "🚀 planet switch"
	case models.StatusResourceSwitch:
		return "🔄 resource switch"
	default:
		return string(status)
	}
}

func writeDOTFile(path string, solution *mission.Solution) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := viz.WriteDOT(f, solution.Net); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
