package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/moethet/portfolio/internal/config"
	"github.com/moethet/portfolio/internal/content"
	"github.com/moethet/portfolio/internal/cv"
	"github.com/moethet/portfolio/pkg/storage"
)

func newCVUploadCmd(opts *rootOptions) *cobra.Command {
	var (
		key  string
		link time.Duration
	)

	cmd := &cobra.Command{
		Use:   "cv-upload <file.pdf>",
		Short: "Upload a résumé PDF to the configured CV bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read(opts.envFiles...)
			if err != nil {
				return err
			}
			if !cfg.CV.Storage.Enabled() {
				return errors.New("CV_S3_BUCKET is not set")
			}
			if key == "" {
				key = cfg.CV.Key
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if int64(len(data)) > cfg.CV.MaxSize {
				return fmt.Errorf("%w: %d bytes", cv.ErrTooLarge, len(data))
			}
			if !storage.IsMIME(data, cv.ContentType) {
				return fmt.Errorf("%s: %w", args[0], cv.ErrNotPDF)
			}

			store, err := storage.New(cfg.CV.Storage)
			if err != nil {
				return err
			}
			info, err := store.Put(cmd.Context(), key, bytes.NewReader(data), cv.ContentType)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "uploaded s3://%s/%s (%d bytes, etag %s)\n",
				store.Bucket(), info.Key, len(data), info.ETag)

			if link > 0 {
				url, err := store.URL(cmd.Context(), info.Key, content.CV.DownloadName, link)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "download link (valid %s): %s\n", link, url)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "object key (default CV_KEY)")
	cmd.Flags().DurationVar(&link, "link", 0, "also print a presigned download link valid for this long")
	return cmd
}
