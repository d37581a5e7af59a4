package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dage/karaoke/internal/captions"
	"github.com/dage/karaoke/internal/clipboard"
	"github.com/dage/karaoke/internal/fetch"
	"github.com/dage/karaoke/internal/fsutil"
	"github.com/dage/karaoke/internal/llm"
	"github.com/dage/karaoke/internal/manifest"
	"github.com/dage/karaoke/internal/prompt"
	"github.com/dage/karaoke/internal/s3up"
	"github.com/dage/karaoke/internal/timeline"
	"github.com/dage/karaoke/internal/updater"
	"github.com/dage/karaoke/pkg/model"
)

const (
	payloadTimeout  = 15 * time.Second
	payloadMaxBytes = int64(10_000_000)
)

// TimelineSource regroupe la piste retenue, son payload brut et les cues parsés.
type TimelineSource struct {
	Track   model.CaptionTrack
	Payload []byte
	Cues    []captions.RawCue
}

// FetchTimelineSource sélectionne la piste pour lang, télécharge son payload
// et le parse. Si le payload du format préféré est corrompu, on retente une
// fois avec le format de repli avant d'abandonner.
func (a *App) FetchTimelineSource(ctx context.Context, m *model.Meta, lang string) (*TimelineSource, error) {
	preferred, err := model.ParseFormat(a.cfg.PreferredFormat)
	if err != nil {
		return nil, err
	}
	fallback, err := model.ParseFormat(a.cfg.FallbackFormat)
	if err != nil {
		return nil, err
	}

	track, err := captions.SelectTrack(m.Tracks, lang, preferred, fallback)
	if err != nil {
		return nil, fmt.Errorf("sélection de piste : %w", err)
	}

	source, err := fetchAndParse(ctx, track)
	if err == nil {
		return source, nil
	}

	// payload corrompu : si la piste retenue était au format préféré, le
	// même transcript existe peut-être dans le format de repli
	var perr *captions.ParseError
	if !errors.As(err, &perr) || track.Format != preferred {
		return nil, err
	}
	alt, altErr := captions.SelectTrack(m.Tracks, lang, fallback, fallback)
	if altErr != nil || alt.Format == track.Format {
		return nil, err
	}
	fmt.Printf("avertissement : payload %s corrompu (%v), repli sur %s\n", track.Format, perr, alt.Format)

	return fetchAndParse(ctx, alt)
}

func fetchAndParse(ctx context.Context, track model.CaptionTrack) (*TimelineSource, error) {
	payload, err := fetch.FetchBytesWithTimeout(ctx, track.PayloadURL(), payloadTimeout, payloadMaxBytes)
	if err != nil {
		return nil, fmt.Errorf("téléchargement du payload %s : %w", track.Format, err)
	}

	cues, err := captions.Parse(payload, track.Format)
	if err != nil {
		return nil, err
	}

	return &TimelineSource{Track: track, Payload: payload, Cues: cues}, nil
}

// SaveRawPayload sauvegarde le payload brut téléchargé dans outDir.
func SaveRawPayload(source *TimelineSource, outDir string) error {
	if source == nil || len(source.Payload) == 0 {
		return fmt.Errorf("SaveRawPayload: pas de payload à sauvegarder")
	}
	path := filepath.Join(outDir, "youtube_autosubs.raw"+source.Track.Format.Extension())
	if err := fsutil.WriteFileAtomic(path, source.Payload, 0o644); err != nil {
		return fmt.Errorf("write raw payload %s: %w", path, err)
	}
	return nil
}

// BuildTimelines normalise les cues et produit les deux timelines.
func BuildTimelines(cues []captions.RawCue, cfg captions.BoundaryConfig) ([]model.WordEntry, []model.SentenceEntry) {
	events := captions.Normalize(cues)
	return captions.BuildWords(events), captions.BuildSentences(events, cfg)
}

func (a *App) boundaryConfig() captions.BoundaryConfig {
	return captions.BoundaryConfig{
		TerminalRunes: a.cfg.Sentence.TerminalRunes,
		GapMs:         a.cfg.Sentence.GapMs,
		MaxTokens:     a.cfg.Sentence.MaxTokens,
		Joiner:        a.cfg.Sentence.Joiner,
	}
}

// UploadOutput pousse le répertoire de sortie vers S3 et retourne les URL
// publiques des fichiers référencés par le manifest.
func (a *App) UploadOutput(ctx context.Context, outDir string, m *manifest.Manifest) (prompt.Assets, error) {
	var empty prompt.Assets

	up, err := s3up.NewUploader(ctx, a.cfg.S3.Bucket, a.cfg.S3.Region, a.cfg.S3.Prefix)
	if err != nil {
		return empty, err
	}

	remotePrefix := up.NewRemotePrefix()
	a.ui.PrintInfo(ctx, fmt.Sprintf("Upload vers s3 sous %s", remotePrefix))

	if _, err := up.UploadDir(ctx, outDir, remotePrefix); err != nil {
		return empty, err
	}

	assets := prompt.Assets{
		WordsURL:     up.PublicURL(remotePrefix + m.Words),
		SentencesURL: up.PublicURL(remotePrefix + m.Sentences),
	}
	if m.AudioFile != "" {
		assets.AudioURL = up.PublicURL(remotePrefix + m.AudioFile)
	}
	return assets, nil
}

// EmitVibePrompt compose le prompt final et le copie dans le presse-papier
// (ou l'affiche si la copie échoue ou est désactivée).
func (a *App) EmitVibePrompt(ctx context.Context, assets prompt.Assets, sentences []model.SentenceEntry) error {
	client := llm.NewClient(a.cfg.LLM.Endpoint, a.cfg.LLM.Model)
	brief := prompt.SongBrief(ctx, client, sentences)
	full := prompt.Build(assets, sentences, brief)

	if a.cfg.Prompt.CopyToClipboard {
		if err := clipboard.WriteAll(full); err == nil {
			a.ui.PrintInfo(ctx, "Prompt complet copié dans le presse-papier.")
			return nil
		}
		a.ui.PrintError(ctx, "copie dans le presse-papier impossible, affichage du prompt :")
	}
	fmt.Println(full)
	return nil
}

// EmitPromptFromDir reconstruit le prompt depuis un répertoire de sortie
// existant (commande upload) : relit le manifest et la timeline phrases.
func (a *App) EmitPromptFromDir(ctx context.Context, outDir string) error {
	m, err := manifest.Load(filepath.Join(outDir, "manifest.json"))
	if err != nil {
		return err
	}
	sentences, err := timeline.ReadSentences(filepath.Join(outDir, m.Sentences))
	if err != nil {
		return err
	}

	assets, err := a.UploadOutput(ctx, outDir, m)
	if err != nil {
		return fmt.Errorf("upload S3: %w", err)
	}
	if !a.cfg.Prompt.Generate {
		return nil
	}
	return a.EmitVibePrompt(ctx, assets, sentences)
}

// YtDlpUpdateCheck affiche l'état de mise à jour de yt-dlp.
func (a *App) YtDlpUpdateCheck(ctx context.Context, timeout time.Duration, version string) error {
	uc, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	check, err := updater.CheckYtDlpUpdate(uc, version)
	if err != nil {
		return fmt.Errorf("vérification de mise à jour a échoué : %v", err)
	}

	if check.IsUpToDate {
		a.ui.PrintInfo(ctx, fmt.Sprintf("✅ yt-dlp est à jour (%s)", check.CurrentVersion))
		return nil
	}

	a.ui.PrintInfo(ctx, "⚠️ Nouvelle version de yt-dlp disponible :")
	a.ui.PrintInfo(ctx, fmt.Sprintf("  Installée : %s", check.CurrentVersion))
	a.ui.PrintInfo(ctx, fmt.Sprintf("  Dernière  : %s", check.Latest.TagName))
	a.ui.PrintInfo(ctx, "Téléchargez-la ici :")
	a.ui.PrintInfo(ctx, check.Latest.DownloadURL)

	return nil
}
