package model

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"traffic-classifier/core/storage"

	"github.com/minio/minio-go/v7"
)

// Decode reads a JSON forest artifact and validates it.
func Decode(r io.Reader) (*Forest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var forest Forest
	if err := dec.Decode(&forest); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}
	if err := forest.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact: %w", err)
	}

	sum := sha256.Sum256(data)
	forest.sha256 = hex.EncodeToString(sum[:])

	return &forest, nil
}

// LoadFile reads the artifact from the local filesystem.
func LoadFile(path string) (*Forest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer file.Close()

	forest, err := Decode(file)
	if err != nil {
		return nil, err
	}
	forest.source = path
	return forest, nil
}

// LoadObject reads the artifact from an object storage bucket.
func LoadObject(ctx context.Context, client storage.Client, bucket, key string) (*Forest, error) {
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch model %s/%s: %w", bucket, key, err)
	}
	defer obj.Close()

	forest, err := Decode(obj)
	if err != nil {
		return nil, err
	}
	forest.source = bucket + "/" + key
	return forest, nil
}

// Load reads the artifact from the source named in cfg.
// client may be nil when cfg.Source is SourceFile.
func Load(ctx context.Context, cfg Config, client storage.Client, bucket string) (*Forest, error) {
	switch cfg.Source {
	case SourceFile:
		return LoadFile(cfg.Path)
	case SourceStorage:
		if client == nil {
			return nil, fmt.Errorf("model source %q requires a storage client", cfg.Source)
		}
		return LoadObject(ctx, client, bucket, cfg.ObjectKey)
	default:
		return nil, fmt.Errorf("unknown model source %q", cfg.Source)
	}
}
