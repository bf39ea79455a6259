package main

import (
	"github.com/spf13/cobra"
)

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "geovalidate",
		Short: "Validate vector geometry layers for topology, shape, and network defects",
	}
	root.AddCommand(validateCommand())
	return root
}
