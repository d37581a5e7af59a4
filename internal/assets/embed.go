// Package assets embarque les ressources statiques livrées avec le binaire.
package assets

import "embed"

const DefaultConfigAsset = "karaoke.example.yaml"

//go:embed karaoke.example.yaml
var Embedded embed.FS
