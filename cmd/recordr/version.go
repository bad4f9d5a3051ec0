package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show RecordR version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("RecordR %s\n", Version)
	},
}
