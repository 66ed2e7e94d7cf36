package cmd

import (
	"github.com/homedash/homedash-services/db"
	"github.com/homedash/homedash-services/internal/appconfig"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "init-db-migrate",
	Short: "Initialize tables and run database migrations",
	Long:  `This job ensures tables exist by running the embedded goose migrations.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Set the log level
		setLogging(logLevel)

		// Load the config file
		appCfg, err := appconfig.LoadConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}

		logger := log.With().Str("component", "db").Logger()
		dashboardDB, err := db.NewDashboardDB(appCfg.Database, &logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize DashboardDB")
		}
		defer dashboardDB.Close()

		// Run the migrations
		log.Info().Msgf("Running migrations...")
		if err := dashboardDB.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}

		log.Info().Msg("Migrations complete")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
