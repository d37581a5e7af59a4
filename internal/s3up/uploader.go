// Package s3up pousse un répertoire de sortie complet vers un bucket S3,
// sous un préfixe unique karaoke_<uuid>/. Les credentials viennent de
// l'environnement (ou d'un fichier .env via godotenv), jamais de la config.
package s3up

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
)

const (
	bucketEnvVar = "S3_BUCKET_NAME"
	regionEnvVar = "AWS_REGION"
)

// Uploader encapsule un client S3 et le bucket cible.
type Uploader struct {
	client *s3.Client
	bucket string
	region string
	prefix string // préfixe de base, ex: "karaoke_"
}

// NewUploader charge les credentials AWS (env + .env éventuel) et résout le
// bucket : paramètre explicite sinon S3_BUCKET_NAME.
func NewUploader(ctx context.Context, bucket, region, prefix string) (*Uploader, error) {
	// .env facultatif : on ignore son absence
	_ = godotenv.Load()

	if bucket == "" {
		bucket = strings.TrimSpace(os.Getenv(bucketEnvVar))
	}
	if bucket == "" {
		return nil, fmt.Errorf("bucket S3 non configuré : renseigner s3.bucket ou %s", bucketEnvVar)
	}
	if region == "" {
		region = strings.TrimSpace(os.Getenv(regionEnvVar))
	}
	if prefix == "" {
		prefix = "karaoke_"
	}

	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("échec de chargement de la configuration AWS : %w", err)
	}

	if region == "" {
		region = awsCfg.Region
	}

	return &Uploader{
		client: s3.NewFromConfig(awsCfg),
		bucket: bucket,
		region: region,
		prefix: prefix,
	}, nil
}

// PublicURL retourne l'URL publique virtual-hosted d'une clé uploadée.
func (u *Uploader) PublicURL(key string) string {
	if u.region != "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.bucket, key)
}

// NewRemotePrefix génère le préfixe distant unique d'un upload.
func (u *Uploader) NewRemotePrefix() string {
	return u.prefix + uuid.NewString() + "/"
}

// UploadDir pousse tous les fichiers réguliers de dir (non récursif, le
// répertoire de sortie est plat) sous remotePrefix.
// Retourne les clés S3 écrites, dans l'ordre d'upload.
func (u *Uploader) UploadDir(ctx context.Context, dir, remotePrefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("lecture du répertoire %s impossible : %w", dir, err)
	}

	var files []fs.DirEntry
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, e)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("aucun fichier à uploader dans %s", dir)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	uploader := manager.NewUploader(u.client)

	var keys []string
	for _, e := range files {
		key := remotePrefix + e.Name()
		if err := u.uploadFile(ctx, uploader, filepath.Join(dir, e.Name()), key); err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (u *Uploader) uploadFile(ctx context.Context, uploader *manager.Uploader, path, key string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("ouverture de %s impossible : %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat de %s impossible : %w", path, err)
	}

	bar := progressbar.DefaultBytes(info.Size(), filepath.Base(path))
	body := progressbar.NewReader(f, bar)

	if _, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   &body,
	}); err != nil {
		return fmt.Errorf("échec d'upload de %s vers s3://%s/%s : %w", path, u.bucket, key, err)
	}
	_ = bar.Finish()

	return nil
}
