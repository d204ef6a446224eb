package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
	projectID  string
}

func NewCloudStorageClient(ctx context.Context, bucketName, projectID string, credentialsPath string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
		projectID:  projectID,
	}, nil
}

// UploadItemPhoto stores a processed photo and its square thumbnail under the
// owner's namespace and returns both URLs.
func (c *CloudStorageClient) UploadItemPhoto(ctx context.Context, userID string, photo, thumbnail []byte) (string, string, error) {
	base := fmt.Sprintf("users/%s/items/%s-%s", userID, uuid.New().String(), time.Now().Format("20060102150405"))

	photoURL, err := c.upload(ctx, base+".jpg", "image/jpeg", bytes.NewReader(photo))
	if err != nil {
		return "", "", err
	}

	thumbURL, err := c.upload(ctx, base+"-thumb.jpg", "image/jpeg", bytes.NewReader(thumbnail))
	if err != nil {
		return "", "", err
	}

	return photoURL, thumbURL, nil
}

// UploadChatAttachment stores a chat image under the sender's namespace.
func (c *CloudStorageClient) UploadChatAttachment(ctx context.Context, userID string, data []byte) (string, error) {
	name := fmt.Sprintf("users/%s/chat/%s-%s.jpg", userID, uuid.New().String(), time.Now().Format("20060102150405"))
	return c.upload(ctx, name, "image/jpeg", bytes.NewReader(data))
}

func (c *CloudStorageClient) upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	obj := c.client.Bucket(c.bucketName).Object(objectName)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, r); err != nil {
		return "", fmt.Errorf("failed to copy file to GCS: %v", err)
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %v", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, objectName), nil
}

func (c *CloudStorageClient) DeleteFile(ctx context.Context, fileURL string) error {
	// Expected URL format: https://storage.googleapis.com/bucket-name/file-path
	const prefix = "https://storage.googleapis.com/"
	if !strings.HasPrefix(fileURL, prefix) {
		return fmt.Errorf("invalid GCS URL format")
	}

	path := fileURL[len(prefix):]
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] != c.bucketName {
		return fmt.Errorf("invalid GCS URL format or bucket mismatch")
	}

	obj := c.client.Bucket(c.bucketName).Object(parts[1])
	if err := obj.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}

	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
