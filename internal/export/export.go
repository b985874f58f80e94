// Package export writes point-in-time catalog snapshots to a directory or an
// S3 bucket.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"serpentaware/internal/catalog"
	"serpentaware/internal/models"
)

// Snapshot is the exported document.
type Snapshot struct {
	GeneratedAt   time.Time              `json:"generated_at"`
	Snakes        []models.Snake         `json:"snakes"`
	EmergencyInfo []models.EmergencyInfo `json:"emergency_info"`
	Stats         models.Stats           `json:"stats"`
}

// Build derives a snapshot from d. Emergency records are ordered by priority.
func Build(d catalog.Dataset, now time.Time) Snapshot {
	d = d.Clone()
	catalog.SortEmergency(d.EmergencyInfo)
	return Snapshot{
		GeneratedAt:   now.UTC(),
		Snakes:        d.Snakes,
		EmergencyInfo: d.EmergencyInfo,
		Stats:         catalog.ComputeStats(d.Snakes),
	}
}

// Key names the object for a snapshot taken at t.
func Key(t time.Time) string {
	return "serpentaware-" + t.UTC().Format("20060102T150405Z") + ".json"
}

// Sink stores an encoded snapshot and reports where it went.
type Sink interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}

// Write encodes snap and hands it to sink under Key(snap.GeneratedAt).
func Write(ctx context.Context, sink Sink, snap Snapshot) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return sink.Put(ctx, Key(snap.GeneratedAt), data)
}

// FileSink writes snapshots into Dir.
type FileSink struct {
	Dir string
}

// Put writes through a temp file and renames, so readers never see a partial
// snapshot.
func (f FileSink) Put(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	tmp, err := os.CreateTemp(f.Dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close snapshot: %w", err)
	}
	dest := filepath.Join(f.Dir, key)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("rename snapshot: %w", err)
	}
	return dest, nil
}

// Target is where a command-line export goes: a directory or an S3 bucket.
type Target struct {
	Dir string
	S3  S3Config
}

// OpenSink picks the sink for t. Exactly one of Dir and S3.Bucket must be set.
func OpenSink(ctx context.Context, t Target) (Sink, error) {
	switch {
	case t.Dir != "" && t.S3.Bucket != "":
		return nil, fmt.Errorf("choose either a directory or an s3 bucket, not both")
	case t.Dir != "":
		return FileSink{Dir: t.Dir}, nil
	case t.S3.Bucket != "":
		return NewS3Sink(ctx, t.S3)
	default:
		return nil, fmt.Errorf("no export destination: set a directory or an s3 bucket")
	}
}
