// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads GeoNames dump archives so conversion can run
// from a clean checkout.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdiddy/cities-offline/internal/httputil"
	"github.com/pdiddy/cities-offline/pkg/types"
)

// datasetPattern matches GeoNames dump names such as cities15000,
// allCountries or a two-letter country code.
var datasetPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Result describes a fetched (or already present) archive.
type Result struct {
	Path    string
	URL     string
	Skipped bool
	Bytes   int64
}

// ArchiveURL returns the download URL for dataset under baseURL.
func ArchiveURL(baseURL, dataset string) string {
	return strings.TrimRight(baseURL, "/") + "/" + dataset + ".zip"
}

// ArchivePath returns where dataset is stored under dataDir.
func ArchivePath(dataDir, dataset string) string {
	return filepath.Join(dataDir, dataset+".zip")
}

// Dataset downloads cfg.Dataset into cfg.DataDir. An archive that already
// exists is left alone and reported as skipped. Progress is written to w.
func Dataset(ctx context.Context, client *http.Client, cfg types.FetchConfig, w io.Writer) (Result, error) {
	if w == nil {
		w = io.Discard
	}
	if cfg.Dataset == "" {
		cfg.Dataset = types.DefaultDataset
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = types.DefaultDumpBaseURL
	}
	if !datasetPattern.MatchString(cfg.Dataset) {
		return Result{}, fmt.Errorf("invalid dataset name %q", cfg.Dataset)
	}

	res := Result{
		Path: ArchivePath(cfg.DataDir, cfg.Dataset),
		URL:  ArchiveURL(cfg.BaseURL, cfg.Dataset),
	}

	if _, err := os.Stat(res.Path); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", res.Path)
		res.Skipped = true
		return res, nil
	}

	if cfg.DataDir != "" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return res, fmt.Errorf("creating data directory: %w", err)
		}
	}

	fmt.Fprintf(w, "downloading: %s\n", res.URL)
	n, err := downloadFile(ctx, client, res.URL, res.Path, cfg.HTTPConfig, w)
	if err != nil {
		return res, fmt.Errorf("downloading %s: %w", cfg.Dataset, err)
	}
	res.Bytes = n
	fmt.Fprintf(w, "saved: %s (%d bytes)\n", res.Path, n)
	return res, nil
}

// downloadFile fetches url to destPath through a temporary file in the
// same directory, renamed into place on success.
func downloadFile(ctx context.Context, client *http.Client, url, destPath string, cfg types.HTTPConfig, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries, w)
	if err != nil {
		return 0, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	n, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return n, nil
}
