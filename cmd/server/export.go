package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"serpentaware/internal/config"
	"serpentaware/internal/export"
	"serpentaware/internal/store"
)

var exportTarget export.Target

func addExportFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&exportTarget.Dir, "dir", "", "Write the snapshot into this directory")
	f.StringVar(&exportTarget.S3.Bucket, "s3-bucket", "", "Upload the snapshot to this S3 bucket")
	f.StringVar(&exportTarget.S3.Prefix, "s3-prefix", "", "Key prefix inside the bucket")
	f.StringVar(&exportTarget.S3.Region, "s3-region", "", "AWS region (default us-east-1)")
	f.StringVar(&exportTarget.S3.Endpoint, "s3-endpoint", "", "Custom S3 endpoint, e.g. MinIO")
	f.BoolVar(&exportTarget.S3.PathStyle, "s3-path-style", false, "Use path-style S3 addressing")
}

func exportStore(ctx context.Context, cfg config.Config, target export.Target) error {
	sink, err := export.OpenSink(ctx, target)
	if err != nil {
		return err
	}
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	d, err := st.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("read store: %w", err)
	}
	if len(d.Snakes) == 0 {
		return fmt.Errorf("store %s is empty; nothing to export", cfg.Store.Driver)
	}
	loc, err := export.Write(ctx, sink, export.Build(d, time.Now()))
	if err != nil {
		return err
	}
	fmt.Println("Snapshot written to", loc)
	return nil
}
