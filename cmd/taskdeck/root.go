package main

import "github.com/spf13/cobra"

var (
	// configDirFlag is set by the --config-dir flag.
	configDirFlag string

	// dataDirFlag is set by the --data-dir flag and overrides the config file.
	dataDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "Taskdeck is a personal task-list service",
	Long: `Taskdeck serves a personal task list over HTTP/JSON: tasks with
categories and due dates, a user-reorderable manual sequence, and sparse
partial updates, backed by SQLite.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "config directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default: from config or $(CWD)/.taskdeck-db)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
