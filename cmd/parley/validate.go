package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"parley/pkg/world"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the world for consistency",
	Long:  `Loads the world definition and reports choices that point at scenes which do not exist.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command) error {
	w := world.Default()
	if path, _ := cmd.Flags().GetString("world"); path != "" {
		var err error
		w, err = world.LoadFile(path)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Loaded %d scenes, start scene %q.\n", w.Len(), w.Start())

	dangling := w.DanglingTargets()
	if len(dangling) == 0 {
		fmt.Println("World is consistent! ✅")
		return nil
	}

	fmt.Println("Dangling choice targets (the engine falls back to the start scene):")
	for _, id := range dangling {
		fmt.Println("- " + id)
	}
	return nil
}
