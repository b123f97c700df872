//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const dataset = "cities15000"

var (
	archivePath  = filepath.Join(dataDir, dataset+".zip")
	artifactPath = filepath.Join(dataDir, "cities_offline.dat")
	reportPath   = filepath.Join(dataDir, "cities_offline.report.yaml")
)

// Fetch downloads the GeoNames cities15000 archive into data/.
func Fetch() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "fetch", "--dataset", dataset, "--data-dir", dataDir)
}

// Convert builds data/cities_offline.dat and its report from the archive.
func Convert() error {
	mg.SerialDeps(Build, Fetch)
	return sh.RunV(binPath, archivePath, "--output", artifactPath, "--report", reportPath)
}

// Verify checks the artifact produced by Convert.
func Verify() error {
	mg.Deps(Convert)
	return sh.RunV(binPath, "verify", artifactPath)
}
