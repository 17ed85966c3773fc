package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"staffhub_backend/internals/configs"
	database "staffhub_backend/internals/databases"
	"staffhub_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Database seeding utility",
	}

	var migrate bool
	rootCmd.PersistentFlags().BoolVar(&migrate, "migrate", false, "run schema auto-migration before seeding")

	connect := func() {
		database.ConnectDB()
		if migrate {
			if err := database.Migrate(database.DB); err != nil {
				log.Fatalf("❌ Migration failed: %v", err)
			}
		}
	}

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Seed users and holidays",
		Run: func(cmd *cobra.Command, args []string) {
			connect()
			seeds.RunAllSeeds(database.DB)
		},
	}

	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Seed user accounts only",
		Run: func(cmd *cobra.Command, args []string) {
			connect()
			seeds.RunUserSeeds(database.DB)
		},
	}

	holidaysCmd := &cobra.Command{
		Use:   "holidays",
		Short: "Seed the holiday calendar only",
		Run: func(cmd *cobra.Command, args []string) {
			connect()
			seeds.RunHolidaySeeds(database.DB)
		},
	}

	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(holidaysCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
