package yt

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// NewYtDlp construit une instance. Path doit être le chemin résolu vers l'exe
func NewYtDlp(name string, resolvedPath string, cfg YtDlpConfig) *YtDlp {
	return &YtDlp{
		Name:   name,
		Path:   resolvedPath,
		Config: cfg,
	}
}

func (y *YtDlp) exe() string {
	if y.Path != "" {
		return y.Path
	}
	return y.Name // fallback : résolution via PATH
}

// CheckBinary vérifie que le binaire existe et n'est pas un répertoire.
// Si aucun chemin n'est résolu, on laisse exec.LookPath trancher.
func (y *YtDlp) CheckBinary() error {
	if y == nil {
		return fmt.Errorf("yt-dlp non initialisé")
	}

	if y.Path == "" {
		if _, err := exec.LookPath(y.Name); err != nil {
			return fmt.Errorf("yt-dlp introuvable dans le PATH (%s) : %w", y.Name, err)
		}
		return nil
	}

	info, err := os.Stat(y.Path)
	if err != nil {
		return fmt.Errorf("yt-dlp introuvable (%s) à l'emplacement spécifié : %v", y.Path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("le chemin spécifié pour yt-dlp est un répertoire, pas un fichier exécutable")
	}
	return nil
}

// GetVersion exécute yt-dlp --version. CombinedOutput pour faciliter le
// diagnostic en cas d'échec.
func (y *YtDlp) GetVersion(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, y.exe(), "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("échec exécution yt-dlp --version : %w, output: %s", err, string(out))
	}
	return strings.TrimSpace(string(out)), nil
}

// ExtractRaw exécute `yt-dlp -j <url>` et renvoie la sortie JSON brute
// (catalogue des pistes de sous-titres inclus), plus les lignes non-JSON
// comme avertissements.
func (y *YtDlp) ExtractRaw(ctx context.Context, url string) (*ExtractedRaw, error) {
	start := time.Now()
	defer func() {
		fmt.Printf("Métadonnées extraites en %s\n", time.Since(start))
	}()

	args := y.Config.BuildMetadataArgs(url)
	cmd := exec.CommandContext(ctx, y.exe(), args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp dump json failed: %w, output: %s", err, string(out))
	}

	var jsonLine string
	var warnings []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") || strings.HasPrefix(line, "[") {
			jsonLine = line
		} else {
			warnings = append(warnings, line)
		}
	}
	if jsonLine == "" {
		return nil, fmt.Errorf("aucun JSON détecté dans la sortie: %s", string(out))
	}
	return &ExtractedRaw{
		JSON:     []byte(jsonLine),
		Warnings: warnings,
	}, nil
}

// DownloadAudio télécharge le meilleur flux audio de la vidéo et le convertit
// en mp3 vers targetPath (ex: "output/song.mp3"). Le postprocesseur yt-dlp
// impose un template sans extension.
func (y *YtDlp) DownloadAudio(ctx context.Context, url, targetPath string) error {
	template := strings.TrimSuffix(targetPath, ".mp3") + ".%(ext)s"
	args := y.Config.BuildAudioArgs(url, template)

	cmd := exec.CommandContext(ctx, y.exe(), args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("yt-dlp audio download failed: %w, output: %s", err, string(out))
	}

	// yt-dlp doit avoir produit le mp3 attendu
	if _, err := os.Stat(targetPath); err != nil {
		return fmt.Errorf("mp3 attendu introuvable après téléchargement: %s", targetPath)
	}
	return nil
}
