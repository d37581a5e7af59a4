package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dage/karaoke/internal/config"
	"github.com/dage/karaoke/internal/fsutil"
	"github.com/dage/karaoke/internal/manifest"
	"github.com/dage/karaoke/internal/timeline"
	"github.com/dage/karaoke/internal/ui"
	"github.com/dage/karaoke/internal/yt"
)

const (
	defaultUpdateTimeout  = 15 * time.Second
	defaultExtractTimeout = 2 * time.Minute
	defaultAudioTimeout   = 10 * time.Minute
	dirPerm               = 0o755
)

// CLIFlags contient les informations venant des flags de l'app
type CLIFlags struct {
	ConfigPath string
	URL        string
	Lang       string // override de config.Language
	YtDlpPath  string
	SkipAudio  bool
	Upload     bool // force l'upload S3 même si s3.enabled est false
}

// App orchestre les différentes dépendances (UI, YtDlp, FS...)
type App struct {
	cfg      *config.Config
	ui       ui.Interface
	flags    *CLIFlags
	ytClient yt.Interface // initialisé dans Run
}

// New construit l'application en initialisant les dépendances par défaut.
// Pour les tests, on préférera construire App en injectant des implémentations mock.
func New(cfg *config.Config, uiClient ui.Interface, flags *CLIFlags) *App {
	return &App{
		cfg:   cfg,
		ui:    uiClient,
		flags: flags,
	}
}

// Run exécute le flux principal : URL -> catalogue -> piste -> timelines ->
// audio -> manifest -> upload/prompt éventuels.
func (a *App) Run(ctx context.Context) error {
	// Récupération de l'URL : priorité flag > clipboard > prompt
	url := a.flags.URL
	if url == "" {
		u, err := a.ui.GetYtURL(ctx)
		if err != nil {
			return fmt.Errorf("get url: %w", err)
		}
		url = u
	} else if !yt.IsYouTubeURL(url) {
		return fmt.Errorf("URL YouTube invalide : %s", url)
	}

	// si l'utilisateur a passé --yt-dlp-path, l'appliquer et re-résoudre
	if a.flags.YtDlpPath != "" {
		a.cfg.YtDlp.Path = a.flags.YtDlpPath
		a.cfg.ResolveYtDlpPath()
	}

	// Init yt-dlp (CheckBinary + version)
	dl, version, err := yt.InitYtDlp(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("yt init: %w", err)
	}
	a.ytClient = dl

	// Update check (optionnel)
	if a.cfg.YtDlp.AutoUpdateCheck {
		if uerr := a.YtDlpUpdateCheck(ctx, defaultUpdateTimeout, version); uerr != nil {
			a.ui.PrintError(ctx, uerr.Error())
		}
	}

	// Extraction des métadonnées
	exCtx, exCancel := context.WithTimeout(ctx, defaultExtractTimeout)
	defer exCancel()

	raw, err := a.ytClient.ExtractRaw(exCtx, url)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("opération annulée")
		}
		return fmt.Errorf("extract raw: %w", err)
	}
	raw.PrintWarnings()

	meta, err := yt.ParseYTDLP(raw.JSON)
	if err != nil {
		return fmt.Errorf("parse ytdlp: %w", err)
	}
	a.ui.PrintInfo(ctx, meta.Pretty())

	outDir := a.cfg.OutputDir
	if a.cfg.SaveInSubdir {
		outDir = filepath.Join(outDir, fsutil.SanitizeFilename(meta.TitleOrID()))
	}
	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}

	lang := a.cfg.Language
	if a.flags.Lang != "" {
		lang = a.flags.Lang
	}

	// Sélection de la piste, téléchargement et parsing (avec repli de format)
	source, err := a.FetchTimelineSource(ctx, meta, lang)
	if err != nil {
		return err
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("Piste utilisée : %s", source.Track.String()))

	if a.cfg.SaveRawSubs {
		if err := SaveRawPayload(source, outDir); err != nil {
			return err
		}
	}

	// Transformation en timelines mots et phrases
	words, sentences := BuildTimelines(source.Cues, a.boundaryConfig())
	if len(words) == 0 {
		a.ui.PrintError(ctx, "attention : piste vide, timelines sans entrées")
	}

	wordsPath := filepath.Join(outDir, a.cfg.WordsFile)
	if err := timeline.WriteWords(wordsPath, words); err != nil {
		return err
	}
	sentencesPath := filepath.Join(outDir, a.cfg.SentencesFile)
	if err := timeline.WriteSentences(sentencesPath, sentences); err != nil {
		return err
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("Timelines écrites : %d mots, %d phrases", len(words), len(sentences)))

	// Extraction audio
	audioFile := ""
	if a.cfg.Audio.Enabled && !a.flags.SkipAudio {
		audioFile = a.cfg.Audio.Filename
		audioPath := filepath.Join(outDir, audioFile)
		a.ui.PrintInfo(ctx, "Téléchargement de l'audio...")

		auCtx, auCancel := context.WithTimeout(ctx, defaultAudioTimeout)
		err := a.ytClient.DownloadAudio(auCtx, url, audioPath)
		auCancel()
		if err != nil {
			return fmt.Errorf("download audio: %w", err)
		}
	}

	// Manifest
	m := &manifest.Manifest{
		OriginalURL: url,
		Words:       a.cfg.WordsFile,
		Sentences:   a.cfg.SentencesFile,
		AudioFile:   audioFile,
	}
	if err := m.Save(filepath.Join(outDir, "manifest.json")); err != nil {
		return err
	}

	// Upload + prompt (optionnels)
	if a.cfg.S3.Enabled || a.flags.Upload {
		assets, err := a.UploadOutput(ctx, outDir, m)
		if err != nil {
			return fmt.Errorf("upload S3: %w", err)
		}
		if a.cfg.Prompt.Generate {
			if err := a.EmitVibePrompt(ctx, assets, sentences); err != nil {
				return err
			}
		}
	}

	a.ui.PrintInfo(ctx, fmt.Sprintf("Terminé. Sortie dans %s", outDir))
	return nil
}
