package cmd

import (
	"github.com/homedash/homedash-services/db"
	"github.com/homedash/homedash-services/internal/appconfig"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var wipeConfirmed bool

var wipeUsersCmd = &cobra.Command{
	Use:   "wipe-users",
	Short: "Delete every user and all their data",
	Long:  `Deletes all users. Groups and tiles cascade away with them. Requires --yes.`,
	Run: func(cmd *cobra.Command, args []string) {
		setLogging(logLevel)

		if !wipeConfirmed {
			log.Fatal().Msg("refusing to wipe users without --yes")
		}

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

		n, err := dashboardDB.WipeUsers()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to wipe users")
		}

		log.Info().Int64("users_deleted", n).Msg("All users wiped")
	},
}

func init() {
	rootCmd.AddCommand(wipeUsersCmd)
	wipeUsersCmd.Flags().BoolVar(&wipeConfirmed, "yes", false, "confirm the wipe")
}
