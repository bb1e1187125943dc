package aws

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ReportUploader envia os relatórios exportados para um bucket S3.
type ReportUploader struct {
	clients *clientCache
	profile string
	bucket  string
	prefix  string
}

// NewReportUploader cria o uploader. bucket aceita "nome" ou "nome/prefixo".
func NewReportUploader(profile, bucket string) *ReportUploader {
	bucket = strings.TrimPrefix(bucket, "s3://")
	name, prefix, _ := strings.Cut(bucket, "/")
	return &ReportUploader{
		clients: newClientCache(),
		profile: profile,
		bucket:  name,
		prefix:  strings.Trim(prefix, "/"),
	}
}

// objectKey monta a chave do objeto a partir do nome do arquivo local.
func (u *ReportUploader) objectKey(localPath string) string {
	return path.Join(u.prefix, filepath.Base(localPath))
}

func (u *ReportUploader) UploadReport(ctx context.Context, localPath string) (string, error) {
	client, err := u.clients.getServiceClient(ctx, u.profile, "s3")
	if err != nil {
		return "", err
	}
	s3Client := client.(*s3.Client)

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("error opening report: %w", err)
	}
	defer file.Close()

	key := u.objectKey(localPath)
	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType := mime.TypeByExtension(filepath.Ext(localPath)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s3Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("error uploading %s to bucket %s: %w", localPath, u.bucket, err)
	}
	return fmt.Sprintf("s3://%s/%s", u.bucket, key), nil
}
