package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dage/karaoke/internal/assets"
	"github.com/dage/karaoke/internal/bootstrap"
	"github.com/dage/karaoke/internal/captions"
	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 1

// struct pour les paramètres de configuration
type Config struct {
	// Chemins
	OutputDir    string `yaml:"output_dir"`
	SaveInSubdir bool   `yaml:"save_in_subdir"` // sous-répertoire par vidéo (titre assaini)

	// Transcript
	Language        string `yaml:"language"`         // code langue de la piste cible
	PreferredFormat string `yaml:"preferred_format"` // json3 ou srv3
	FallbackFormat  string `yaml:"fallback_format"`
	SaveRawSubs     bool   `yaml:"save_raw_subs"` // conserver le payload brut téléchargé

	// Noms des fichiers timeline
	WordsFile     string `yaml:"words_file"`
	SentencesFile string `yaml:"sentences_file"`

	// Heuristique de frontière de phrase (voir captions.BoundaryConfig)
	Sentence struct {
		GapMs         int64  `yaml:"gap_ms"`
		TerminalRunes string `yaml:"terminal_runes"`
		MaxTokens     int    `yaml:"max_tokens"`
		Joiner        string `yaml:"joiner"`
	} `yaml:"sentence"`

	// Audio
	Audio struct {
		Enabled  bool   `yaml:"enabled"`
		Filename string `yaml:"filename"`
	} `yaml:"audio"`

	// yt-dlp
	YtDlp struct {
		Name            string `yaml:"name"`
		Path            string `yaml:"path"`
		ShowWarnings    bool   `yaml:"show_warnings"`
		AutoUpdateCheck bool   `yaml:"auto_update_check"`

		// ResolvedPath contient le chemin effectif vers l'exécutable
		ResolvedPath string `yaml:"-"`
	} `yaml:"yt_dlp"`

	// Upload S3 (credentials via env/.env, jamais dans ce fichier)
	S3 struct {
		Enabled bool   `yaml:"enabled"`
		Bucket  string `yaml:"bucket"`
		Region  string `yaml:"region"`
		Prefix  string `yaml:"prefix"`
	} `yaml:"s3"`

	// LLM (ping de connectivité et prompt)
	LLM struct {
		Endpoint string `yaml:"endpoint"`
		Model    string `yaml:"model"`
	} `yaml:"llm"`

	// Prompt "vibe" généré depuis les timelines
	Prompt struct {
		Generate        bool `yaml:"generate"`
		CopyToClipboard bool `yaml:"copy_to_clipboard"`
	} `yaml:"prompt"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// Configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	c.OutputDir = "output"

	c.Language = "th"
	c.PreferredFormat = "json3"
	c.FallbackFormat = "srv3"
	c.SaveRawSubs = false

	c.WordsFile = "youtube_autosubs.words.txt"
	c.SentencesFile = "youtube_autosubs.sentences.txt"

	c.Sentence.GapMs = captions.DefaultGapMs
	c.Sentence.TerminalRunes = captions.DefaultTerminalRunes
	c.Sentence.MaxTokens = captions.DefaultMaxTokens
	c.Sentence.Joiner = ""

	c.Audio.Enabled = true
	c.Audio.Filename = "song.mp3"

	c.YtDlp.Name = "yt-dlp"
	c.YtDlp.Path = ""
	c.YtDlp.ShowWarnings = false
	c.YtDlp.AutoUpdateCheck = false

	c.S3.Enabled = false
	c.S3.Prefix = "karaoke_"

	c.LLM.Endpoint = "https://openrouter.ai/api/v1"
	c.LLM.Model = "openai/gpt-5-chat"

	c.Prompt.Generate = true
	c.Prompt.CopyToClipboard = true

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets
func Load(path string) (*Config, error) {
	if path == "" {
		path = "karaoke.yaml"
	}

	// si le fichier n'existe pas -> le créer à partir de l'asset embarqué
	if err := bootstrap.EnsureConfigPresent(path, assets.Embedded, assets.DefaultConfigAsset); err != nil {
		return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
	}

	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	// On déserialise dans cfg initialisé : les champs absents conservent les valeurs par défaut.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	return cfg, nil
}

func (c *Config) normalizeConfig() {
	c.OutputDir = filepath.Clean(strings.TrimSpace(c.OutputDir))
	if c.OutputDir == "" || c.OutputDir == "." {
		c.OutputDir = "output"
	}

	c.Language = strings.ToLower(strings.TrimSpace(c.Language))
	if c.Language == "" {
		c.Language = "th"
	}

	c.PreferredFormat = strings.ToLower(strings.TrimSpace(c.PreferredFormat))
	if c.PreferredFormat == "" {
		c.PreferredFormat = "json3"
	}
	c.FallbackFormat = strings.ToLower(strings.TrimSpace(c.FallbackFormat))
	if c.FallbackFormat == "" {
		c.FallbackFormat = "srv3"
	}

	if strings.TrimSpace(c.WordsFile) == "" {
		c.WordsFile = "youtube_autosubs.words.txt"
	}
	if strings.TrimSpace(c.SentencesFile) == "" {
		c.SentencesFile = "youtube_autosubs.sentences.txt"
	}

	if c.Sentence.GapMs <= 0 {
		c.Sentence.GapMs = captions.DefaultGapMs
	}
	if c.Sentence.TerminalRunes == "" {
		c.Sentence.TerminalRunes = captions.DefaultTerminalRunes
	}
	if c.Sentence.MaxTokens <= 0 {
		c.Sentence.MaxTokens = captions.DefaultMaxTokens
	}

	if strings.TrimSpace(c.Audio.Filename) == "" {
		c.Audio.Filename = "song.mp3"
	}

	if strings.TrimSpace(c.S3.Prefix) == "" {
		c.S3.Prefix = "karaoke_"
	}

	c.LLM.Endpoint = strings.TrimRight(strings.TrimSpace(c.LLM.Endpoint), "/")
	if c.LLM.Endpoint == "" {
		c.LLM.Endpoint = "https://openrouter.ai/api/v1"
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		c.LLM.Model = "openai/gpt-5-chat"
	}

	// centraliser la résolution/normalisation de yt-dlp
	c.ResolveYtDlpPath()
}

// ResolveYtDlpPath normalise le nom et résout le chemin complet vers l'exécutable.
// Appeler après avoir modifié cfg.YtDlp.Name ou cfg.YtDlp.Path.
func (c *Config) ResolveYtDlpPath() {
	if c == nil {
		return
	}

	c.YtDlp.Name = strings.TrimSpace(c.YtDlp.Name)
	if c.YtDlp.Name == "" {
		c.YtDlp.Name = "yt-dlp"
	}

	// ajoute .exe si nécessaire
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(c.YtDlp.Name), ".exe") {
		c.YtDlp.Name = c.YtDlp.Name + ".exe"
	}

	// pas de chemin configuré -> résolution via PATH (ResolvedPath vide)
	exeName := c.YtDlp.Name
	cfgPath := strings.TrimSpace(c.YtDlp.Path)
	if cfgPath == "" {
		c.YtDlp.ResolvedPath = ""
		return
	}
	cleanPath := filepath.Clean(cfgPath)

	// si le chemin fourni finit déjà par l'exécutable -> on l'utilise
	if filepath.Base(cleanPath) == exeName {
		c.YtDlp.ResolvedPath = cleanPath
	} else {
		// sinon on considère cfgPath comme un répertoire et on y joint l'exe
		c.YtDlp.ResolvedPath = filepath.Join(cleanPath, exeName)
	}
}
