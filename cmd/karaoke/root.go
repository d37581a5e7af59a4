package main

import (
	"context"
	"fmt"

	"github.com/dage/karaoke/internal/app"
	"github.com/dage/karaoke/internal/config"
	"github.com/dage/karaoke/internal/ui"
	"github.com/spf13/cobra"
)

var flags app.CLIFlags

var rootCmd = &cobra.Command{
	Use:   "karaoke [url]",
	Short: "Extrait les timelines de paroles et l'audio d'une vidéo YouTube",
	Long: `karaoke télécharge les sous-titres automatiques d'une vidéo YouTube
(json3 de préférence, srv3 en repli), en dérive deux timelines TSV
(mots et phrases) alignées sur l'audio, extrait la piste en MP3 et
écrit un manifest. En option, le tout est uploadé sur S3 et un prompt
de "vibe coding" prêt à coller est généré.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			flags.URL = args[0]
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a := app.New(cfg, ui.NewTerminal(), &flags)
		return a.Run(cmd.Context())
	},
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateFormats(); err != nil {
		return nil, err
	}
	if warnings, err := cfg.ValidateYtDlpPresence(); err != nil {
		return nil, err
	} else {
		for _, w := range warnings {
			fmt.Printf("avertissement : %s\n", w)
		}
	}
	return cfg, nil
}

// Execute lance la CLI avec le contexte annulable fourni par main.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "chemin du fichier de configuration (défaut: karaoke.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.YtDlpPath, "yt-dlp-path", "", "chemin vers l'exécutable yt-dlp")

	rootCmd.Flags().StringVarP(&flags.Lang, "lang", "l", "", "code langue de la piste (défaut: config)")
	rootCmd.Flags().BoolVar(&flags.SkipAudio, "no-audio", false, "ne pas extraire l'audio")
	rootCmd.Flags().BoolVar(&flags.Upload, "upload", false, "uploader la sortie sur S3 même si s3.enabled est false")
}
