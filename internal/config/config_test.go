package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestLoadCreatesDefaultWhenMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "karaoke.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("le fichier de configuration n'a pas été créé : %v", err)
	}

	if cfg.Language != "th" {
		t.Errorf("Language = %q, attendu th", cfg.Language)
	}
	if cfg.PreferredFormat != "json3" || cfg.FallbackFormat != "srv3" {
		t.Errorf("formats = %q/%q, attendu json3/srv3", cfg.PreferredFormat, cfg.FallbackFormat)
	}
	if cfg.Sentence.GapMs != 2000 {
		t.Errorf("Sentence.GapMs = %d, attendu 2000", cfg.Sentence.GapMs)
	}
	if cfg.WordsFile != "youtube_autosubs.words.txt" {
		t.Errorf("WordsFile = %q", cfg.WordsFile)
	}
	if err := cfg.ValidateFormats(); err != nil {
		t.Errorf("ValidateFormats sur la config par défaut : %v", err)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "karaoke.yaml")

	data := "language: \"EN\"\nsentence:\n  gap_ms: 750\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// champ présent -> pris (et normalisé en minuscules)
	if cfg.Language != "en" {
		t.Errorf("Language = %q, attendu en", cfg.Language)
	}
	if cfg.Sentence.GapMs != 750 {
		t.Errorf("Sentence.GapMs = %d, attendu 750", cfg.Sentence.GapMs)
	}
	// champs absents -> défauts conservés
	if cfg.PreferredFormat != "json3" {
		t.Errorf("PreferredFormat = %q, attendu json3", cfg.PreferredFormat)
	}
	if cfg.Sentence.MaxTokens != 24 {
		t.Errorf("Sentence.MaxTokens = %d, attendu 24", cfg.Sentence.MaxTokens)
	}
	if cfg.Audio.Filename != "song.mp3" {
		t.Errorf("Audio.Filename = %q", cfg.Audio.Filename)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "karaoke.yaml")
	if err := os.WriteFile(path, []byte("output_dir: [broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("YAML invalide accepté")
	}
}

func TestResolveYtDlpPath(t *testing.T) {
	exe := "yt-dlp"
	if runtime.GOOS == "windows" {
		exe = "yt-dlp.exe"
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"vide", "", ""},
		{"répertoire", filepath.Join("tools", "bin"), filepath.Join("tools", "bin", exe)},
		{"chemin complet", filepath.Join("tools", exe), filepath.Join("tools", exe)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.YtDlp.Path = tc.path
			cfg.ResolveYtDlpPath()
			if cfg.YtDlp.ResolvedPath != tc.want {
				t.Errorf("ResolvedPath = %q, attendu %q", cfg.YtDlp.ResolvedPath, tc.want)
			}
		})
	}
}

func TestValidateFormatsRejectsNonCaption(t *testing.T) {
	cfg := defaultConfig()
	cfg.PreferredFormat = "mp3"
	if err := cfg.ValidateFormats(); err == nil || !strings.Contains(err.Error(), "sous-titres") {
		t.Errorf("mp3 accepté comme format de sous-titres (err=%v)", err)
	}

	cfg = defaultConfig()
	cfg.FallbackFormat = "vtt"
	if err := cfg.ValidateFormats(); err == nil {
		t.Error("format inconnu accepté")
	}
}
