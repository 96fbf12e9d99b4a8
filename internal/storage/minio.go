// Package storage gère l'upload des images produit vers MinIO.
package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"orvia_back_end/internal/config"

	"github.com/minio/minio-go/v7"
)

type Uploader struct {
	client *minio.Client
	cfg    *config.Config
}

func NewUploader(client *minio.Client, cfg *config.Config) *Uploader {
	return &Uploader{client: client, cfg: cfg}
}

// UploadFile pousse le fichier dans le bucket produits et retourne son URL.
func (u *Uploader) UploadFile(ctx context.Context, objectName string, file *multipart.FileHeader) (string, error) {
	if u.client == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	_, err = u.client.PutObject(ctx, u.cfg.MinioBucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if u.cfg.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, u.cfg.MinioEndpoint, u.cfg.MinioBucket, objectName), nil
}
