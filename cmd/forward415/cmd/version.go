package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the forward415 CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("forward415 version %s\n", version)
		fmt.Println("Credit-exposure engine for FX forward books reported on Format 415")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
