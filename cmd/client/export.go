package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"serpentaware/internal/catalog"
	"serpentaware/internal/export"
)

var exportTarget export.Target

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save a snapshot of the server catalog to a directory or S3",
	Example: `  serpentaware export --dir ./exports
  serpentaware export --s3-bucket my-bucket --s3-prefix snapshots`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sink, err := export.OpenSink(ctx, exportTarget)
		if err != nil {
			return err
		}

		c := newClient()
		var d catalog.Dataset
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			snakes, err := c.Snakes(gctx, catalog.Query{})
			d.Snakes = snakes
			return err
		})
		g.Go(func() error {
			infos, err := c.Emergency(gctx)
			d.EmergencyInfo = infos
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		loc, err := export.Write(ctx, sink, export.Build(d, time.Now()))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(map[string]string{"location": loc})
		}
		fmt.Println("Snapshot written to", loc)
		return nil
	},
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportTarget.Dir, "dir", "", "Write the snapshot into this directory")
	f.StringVar(&exportTarget.S3.Bucket, "s3-bucket", "", "Upload the snapshot to this S3 bucket")
	f.StringVar(&exportTarget.S3.Prefix, "s3-prefix", "", "Key prefix inside the bucket")
	f.StringVar(&exportTarget.S3.Region, "s3-region", "", "AWS region (default us-east-1)")
	f.StringVar(&exportTarget.S3.Endpoint, "s3-endpoint", "", "Custom S3 endpoint, e.g. MinIO")
	f.BoolVar(&exportTarget.S3.PathStyle, "s3-path-style", false, "Use path-style S3 addressing")
}
