// Package updater vérifie si le yt-dlp local est à jour par rapport à la
// dernière release GitHub. Vérification seule, l'installation reste manuelle.
package updater

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/dage/karaoke/pkg/github"
)

type rawRelease struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
	Assets      []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// ReleaseInfo contient les métadonnées de la dernière release yt-dlp et
// l'URL de téléchargement pour la plateforme courante.
type ReleaseInfo struct {
	TagName     string
	PublishedAt time.Time
	HTMLURL     string
	DownloadURL string
}

// UpdateCheck contient le résultat de la comparaison.
type UpdateCheck struct {
	CurrentVersion string
	Latest         *ReleaseInfo
	IsUpToDate     bool
}

// assetNameForPlatform retourne le nom d'asset yt-dlp attendu pour l'OS courant.
func assetNameForPlatform() string {
	switch runtime.GOOS {
	case "windows":
		return "yt-dlp.exe"
	case "darwin":
		return "yt-dlp_macos"
	default:
		return "yt-dlp"
	}
}

// GetLatestRelease récupère la dernière release yt-dlp depuis GitHub.
func GetLatestRelease(ctx context.Context) (*ReleaseInfo, error) {
	var raw rawRelease
	if err := github.FetchLatestRelease(ctx, "yt-dlp", "yt-dlp", &raw); err != nil {
		return nil, err
	}

	info := &ReleaseInfo{
		TagName:     raw.TagName,
		PublishedAt: raw.PublishedAt,
		HTMLURL:     raw.HTMLURL,
	}

	want := assetNameForPlatform()
	for _, a := range raw.Assets {
		if a.Name == want {
			info.DownloadURL = a.BrowserDownloadURL
			break
		}
	}
	if info.DownloadURL == "" {
		return nil, fmt.Errorf("asset %s introuvable dans la release %s", want, raw.TagName)
	}

	return info, nil
}

// CheckYtDlpUpdate compare la version locale et la version GitHub.
func CheckYtDlpUpdate(ctx context.Context, localVer string) (*UpdateCheck, error) {
	latest, err := GetLatestRelease(ctx)
	if err != nil {
		return nil, fmt.Errorf("impossible de récupérer la release GitHub : %w", err)
	}

	return &UpdateCheck{
		CurrentVersion: localVer,
		Latest:         latest,
		IsUpToDate:     localVer == latest.TagName,
	}, nil
}
