package backend

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// StorageClient implements the object storage boundary.
type StorageClient struct {
	client *Client
}

// Upload stores an object under path and returns its public URL.
func (s *StorageClient) Upload(ctx context.Context, path string, contents io.Reader) (string, error) {
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return "", fmt.Errorf("object path is required")
	}

	urlStr := s.client.storageURL + "/object/" + path
	respBody, statusCode, err := s.client.upload(ctx, urlStr, "application/octet-stream", contents)
	if err != nil {
		return "", err
	}
	if statusCode >= 400 {
		return "", parseError(respBody, statusCode)
	}
	return s.client.storageURL + "/object/public/" + path, nil
}
