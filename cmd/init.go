package cmd

import (
	"github.com/spf13/cobra"

	"github.com/akramhany/repomind/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize repomind configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure repomind for your project and generates a .repomind.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
