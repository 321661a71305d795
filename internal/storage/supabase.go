// Package storage provides the object-storage client for post images.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pixelgram/internal/config"
	"pixelgram/internal/observability"

	"github.com/google/uuid"
)

// ObjectStore abstracts blob storage so services can be tested with fakes.
type ObjectStore interface {
	// Upload stores PNG bytes under a fresh object name and returns the
	// public URL of the stored object.
	Upload(ctx context.Context, png []byte) (string, error)
	// Delete removes the object behind a public URL. A missing object
	// counts as deleted.
	Delete(ctx context.Context, fileURL string) error
}

// SupabaseClient talks to the Supabase storage REST API.
type SupabaseClient struct {
	baseURL string
	apiKey  string
	bucket  string
	http    *http.Client
}

// NewSupabaseClient builds a storage client from configuration.
func NewSupabaseClient(cfg *config.Config) *SupabaseClient {
	return &SupabaseClient{
		baseURL: strings.TrimRight(cfg.StorageURL, "/"),
		apiKey:  cfg.StorageKey,
		bucket:  cfg.StorageBucket,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *SupabaseClient) authHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

func (c *SupabaseClient) Upload(ctx context.Context, png []byte) (string, error) {
	fileID := uuid.NewString() + ".png"
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, fileID)

	tl := observability.GetTraceLayer()
	ctx, span := tl.TraceUpstreamCall(ctx, "storage", "upload")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(png))
	if err != nil {
		observability.RecordStorageOp("upload", err)
		return "", err
	}
	c.authHeaders(req)
	req.Header.Set("Content-Type", "image/png")

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		observability.RecordStorageOp("upload", err)
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("upload failed: %s", strings.TrimSpace(string(body)))
		span.RecordError(err)
		observability.RecordStorageOp("upload", err)
		return "", err
	}

	observability.RecordStorageOp("upload", nil)
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, fileID), nil
}

func (c *SupabaseClient) Delete(ctx context.Context, fileURL string) error {
	prefix := "public/" + c.bucket + "/"
	idx := strings.Index(fileURL, prefix)
	if idx < 0 {
		return fmt.Errorf("invalid storage URL format: %s", fileURL)
	}
	fileID := fileURL[idx+len(prefix):]
	deleteURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, fileID)

	tl := observability.GetTraceLayer()
	ctx, span := tl.TraceUpstreamCall(ctx, "storage", "delete")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		observability.RecordStorageOp("delete", err)
		return err
	}
	c.authHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		observability.RecordStorageOp("delete", err)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	// A 404 means the object is already gone, which is the desired state.
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotFound {
		observability.RecordStorageOp("delete", nil)
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	err = fmt.Errorf("deletion failed: %s", strings.TrimSpace(string(body)))
	span.RecordError(err)
	observability.RecordStorageOp("delete", err)
	return err
}
