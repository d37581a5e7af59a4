package yt

// YtDlpConfig représente les flags ajoutables quand on utilise yt-dlp
type YtDlpConfig struct {
	NoWarnings bool // true => ajouter --no-warnings
	NoProgress bool
	NoUpdate   bool
	NoConfig   bool // true => --no-config pour ignorer les configs utilisateur
}

// NewYtDlpConfig initalise une configuration standard de yt-dlp, showWarning vient du yaml de config
func NewYtDlpConfig(showWarning bool) *YtDlpConfig {
	return &YtDlpConfig{
		NoWarnings: !showWarning,
		NoProgress: true,
		NoUpdate:   true,
		NoConfig:   true, // ignorer les configs extérieures, comportement prévisible
	}
}

// baseArgs : flags communs à toutes les invocations.
func (c *YtDlpConfig) baseArgs() []string {
	args := make([]string, 0, 8)
	// --no-config en tête pour éviter que des configs locales modifient le comportement
	if c.NoConfig {
		args = append(args, "--no-config")
	}
	if c.NoWarnings {
		args = append(args, "--no-warnings")
	}
	if c.NoProgress {
		args = append(args, "--no-progress")
	}
	if c.NoUpdate {
		args = append(args, "--no-update")
	}
	return args
}

// BuildMetadataArgs construit les arguments pour extraire le JSON de métadonnées
// (catalogue des pistes inclus) sans rien télécharger.
func (c *YtDlpConfig) BuildMetadataArgs(url string) []string {
	args := c.baseArgs()
	args = append(args, "-j", "--skip-download", url)
	return args
}

// BuildAudioArgs construit les arguments pour télécharger le meilleur flux
// audio et le convertir en mp3 (ffmpeg requis côté yt-dlp).
// outTemplate est le template de sortie sans extension, yt-dlp ajoute .mp3.
func (c *YtDlpConfig) BuildAudioArgs(url, outTemplate string) []string {
	args := c.baseArgs()
	args = append(args,
		"-f", "bestaudio/best",
		"-x", "--audio-format", "mp3",
		"--audio-quality", "192K",
		"--no-playlist",
		"--force-overwrites",
		"-o", outTemplate,
		url,
	)
	return args
}
