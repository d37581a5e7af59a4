package main

import (
	"fmt"
	"os"

	"github.com/dage/karaoke/internal/yt"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var tracksCmd = &cobra.Command{
	Use:   "tracks <url>",
	Short: "Liste les pistes de sous-titres disponibles pour une vidéo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		if !yt.IsYouTubeURL(url) {
			return fmt.Errorf("URL YouTube invalide : %s", url)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		dl, _, err := yt.InitYtDlp(ctx, cfg)
		if err != nil {
			return fmt.Errorf("yt init: %w", err)
		}

		raw, err := dl.ExtractRaw(ctx, url)
		if err != nil {
			return fmt.Errorf("extract raw: %w", err)
		}
		raw.PrintWarnings()

		meta, err := yt.ParseYTDLP(raw.JSON)
		if err != nil {
			return fmt.Errorf("parse ytdlp: %w", err)
		}

		fmt.Println(meta.Pretty())
		if !meta.HasCaptions() {
			fmt.Println("Aucune piste de sous-titres exploitable.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Langue", "Format", "Type"})
		for i, tr := range meta.Tracks {
			kind := "manuel"
			if tr.IsAuto() {
				kind = "auto"
			}
			t.AppendRow(table.Row{i + 1, tr.Lang, tr.Format, kind})
		}
		t.Render()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(tracksCmd)
}
