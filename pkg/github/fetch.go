// Package github interroge l'API publique GitHub (releases).
package github

import (
	"context"
	"fmt"
	"time"

	"github.com/dage/karaoke/internal/fetch"
)

const (
	releaseTimeout  = 10 * time.Second
	maxReleaseBytes = 4 << 20 // le JSON de release yt-dlp est volumineux (notes + assets)
)

// FetchLatestRelease interroge l'API GitHub pour la dernière release d'un
// dépôt et décode la réponse JSON dans dst.
func FetchLatestRelease(ctx context.Context, owner, repo string, dst interface{}) error {
	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", owner, repo)
	if err := fetch.FetchJSONInto(ctx, url, releaseTimeout, maxReleaseBytes, dst); err != nil {
		return fmt.Errorf("requête release GitHub %s/%s : %w", owner, repo, err)
	}
	return nil
}
