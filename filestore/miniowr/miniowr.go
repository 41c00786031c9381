// Package miniowr implements filestore.FileStore on a MinIO (or any
// S3-compatible) bucket.
package miniowr

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/code19m/errx"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/crudkit-go/crudkit/filestore"
)

const codeNoSuchKey = "NoSuchKey"

// Client is a MinIO-backed FileStore bound to one bucket.
type Client struct {
	client *minio.Client
	bucket string
}

var _ filestore.FileStore = (*Client)(nil)

// New connects to the MinIO endpoint from cfg.
func New(cfg Config) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &Client{client: client, bucket: cfg.Bucket}, nil
}

// Upload stores the reader's content at path. The content is buffered to
// detect its type and size before the put.
func (c *Client) Upload(ctx context.Context, path string, reader io.Reader) (*filestore.FileInfo, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	contentType := http.DetectContentType(data)

	info, err := c.client.PutObject(ctx, c.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &filestore.FileInfo{
		Path:         path,
		Size:         info.Size,
		ContentType:  contentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
	}, nil
}

// Get retrieves the object at path together with its metadata.
func (c *Client) Get(ctx context.Context, path string) (*filestore.File, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, errx.Wrap(asFilestoreError(err))
	}

	return &filestore.File{
		Content: obj,
		Info: filestore.FileInfo{
			Path:         path,
			Size:         stat.Size,
			ContentType:  stat.ContentType,
			ETag:         stat.ETag,
			LastModified: stat.LastModified,
		},
	}, nil
}

// Delete removes the object at path.
func (c *Client) Delete(ctx context.Context, path string) error {
	if err := c.client.RemoveObject(ctx, c.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return errx.Wrap(asFilestoreError(err))
	}
	return nil
}

// Exists reports whether an object is stored at path.
func (c *Client) Exists(ctx context.Context, path string) (bool, error) {
	_, err := c.client.StatObject(ctx, c.bucket, path, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == codeNoSuchKey {
			return false, nil
		}
		return false, errx.Wrap(err)
	}
	return true, nil
}

// asFilestoreError maps MinIO error responses onto filestore error codes.
func asFilestoreError(err error) error {
	if minio.ToErrorResponse(err).Code == codeNoSuchKey {
		return errx.New("file not found", errx.WithCode(filestore.CodeFileNotFound))
	}
	return errx.Wrap(err)
}
