package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mentahq/menta/internal/models"
)

var techCmd = &cobra.Command{
	Use:   "tech",
	Short: "Manage the technology catalog",
}

var techAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a technology to the catalog",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		name := strings.ToLower(strings.TrimSpace(args[0]))
		if name == "" {
			fmt.Println("Error: technology name must not be empty")
			return
		}

		tech := models.Technology{ID: uuid.New(), Name: name}
		if err := a.store.Technologies().Add(context.Background(), tech); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Added technology %q\n", name)
	}),
}

var techListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List technologies",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		techs, err := a.store.Technologies().ListAll(context.Background())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(techs) == 0 {
			fmt.Println("No technologies yet. Use 'menta tech add <name>' to create one.")
			return
		}
		for _, t := range techs {
			fmt.Println(t.Name)
		}
	}),
}

func init() {
	techCmd.AddCommand(techAddCmd)
	techCmd.AddCommand(techListCmd)
}
