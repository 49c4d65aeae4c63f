// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-school-hub",
	Short: "GoSchoolHub is a multi-tenant backend for school management",
	Long: `GoSchoolHub is a multi-tenant backend for school management
that resolves each school from the request subdomain and provides
tenant-scoped authentication, token refresh and school administration.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
