package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"serpentaware/internal/catalog"
	"serpentaware/internal/client"
	"serpentaware/internal/models"
	"serpentaware/internal/tui"
	"serpentaware/internal/view"
)

var initDataCmd = &cobra.Command{
	Use:   "init-data",
	Short: "Reset the server catalog to its dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := newClient().InitData(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(map[string]string{"message": msg})
		}
		fmt.Println(msg)
		return nil
	},
}

var snakeQuery struct {
	continent string
	danger    string
	search    string
}

var snakesCmd = &cobra.Command{
	Use:   "snakes",
	Short: "List species, optionally filtered",
	Example: `  serpentaware snakes --continent Asia
  serpentaware snakes --search cobra`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := catalog.Query{
			Continent:   models.Continent(snakeQuery.continent),
			DangerLevel: models.DangerLevel(snakeQuery.danger),
			Search:      snakeQuery.search,
		}
		snakes, err := newClient().Snakes(cmd.Context(), q)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(snakes)
		}
		fmt.Println(snakeTable(snakes))
		fmt.Println(view.CountLabel(len(snakes)))
		return nil
	},
}

func init() {
	f := snakesCmd.Flags()
	f.StringVar(&snakeQuery.continent, "continent", "", "Only species from this continent")
	f.StringVar(&snakeQuery.danger, "danger-level", "", "Only species with this danger level")
	f.StringVar(&snakeQuery.search, "search", "", "Match name, scientific name or country")
}

var snakeCmd = &cobra.Command{
	Use:   "snake <id>",
	Short: "Show one species",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newClient().Snake(cmd.Context(), args[0])
		if client.IsNotFound(err) {
			return fmt.Errorf("no snake with id %s", args[0])
		}
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(s)
		}
		fmt.Print(tui.RenderSnake(s))
		return nil
	},
}

var continentsCmd = &cobra.Command{
	Use:   "continents",
	Short: "Species count per continent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		counts, err := newClient().Continents(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(counts)
		}
		t := newTable("Continent", "Species")
		for _, c := range counts {
			t.Row(string(c.Continent), fmt.Sprint(c.Count))
		}
		fmt.Println(t)
		return nil
	},
}

var emergencyCmd = &cobra.Command{
	Use:   "emergency",
	Short: "Print the snakebite emergency guide",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := newClient().Emergency(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(infos)
		}
		fmt.Print(tui.RenderEmergency(infos))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Catalog totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newClient().Stats(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(st)
		}
		fmt.Printf("Total species:   %d\n", st.TotalSnakes)
		fmt.Printf("Venomous:        %d\n", st.VenomousSnakes)
		fmt.Printf("Deadly:          %d\n", st.DeadlySnakes)
		t := newTable("Continent", "Species")
		for _, c := range models.AllContinents {
			if n, ok := st.Continents[c]; ok {
				t.Row(string(c), fmt.Sprint(n))
			}
		}
		fmt.Println(t)
		return nil
	},
}

var reseed bool

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog in an interactive terminal UI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(cmd.Context(), newClient(), reseed)
	},
}

func init() {
	browseCmd.Flags().BoolVar(&reseed, "reseed", false, "Call init-data before loading")
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))).
		Headers(headers...)
}

func snakeTable(snakes []models.Snake) *table.Table {
	t := newTable("ID", "Name", "Scientific name", "Continent", "Danger")
	for _, s := range snakes {
		t.Row(s.ID, s.Name, s.ScientificName, string(s.Continent), string(s.DangerLevel))
	}
	return t
}
