package main

import (
	"fmt"
	"os"

	"github.com/dage/karaoke/internal/app"
	"github.com/dage/karaoke/internal/ui"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [dir]",
	Short: "Uploade un répertoire de sortie existant sur S3 et régénère le prompt",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dir := cfg.OutputDir
		if len(args) == 1 {
			dir = args[0]
		}
		if st, err := os.Stat(dir); err != nil || !st.IsDir() {
			return fmt.Errorf("répertoire de sortie introuvable : %s", dir)
		}

		a := app.New(cfg, ui.NewTerminal(), &flags)
		return a.EmitPromptFromDir(cmd.Context(), dir)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
