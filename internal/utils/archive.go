package utils

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"clawdeye-installer/internal/models"
)

/**
 * Extract a .tgz archive into a destination directory
 * @param {string} archivePath - Path of the downloaded tarball
 * @param {string} destDir - Directory the tree is unpacked into (created if absent)
 * @description
 * - Existing files are overwritten, so re-running the installer acts as an update
 * - Entries escaping destDir are rejected
 * @throws
 * - ExtractionError wrapping the underlying failure
 */
func ExtractTarGz(archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return &models.ExtractionError{Archive: archivePath, Err: err}
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return &models.ExtractionError{Archive: archivePath, Err: err}
	}
	defer gzr.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return &models.ExtractionError{Archive: archivePath, Err: err}
	}

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &models.ExtractionError{Archive: archivePath, Err: err}
		}

		destPath, err := sanitizePath(destDir, header.Name)
		if err != nil {
			return &models.ExtractionError{Archive: archivePath, Err: err}
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(destPath, 0755); err != nil {
				return &models.ExtractionError{Archive: archivePath, Err: err}
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
				return &models.ExtractionError{Archive: archivePath, Err: err}
			}
			mode := os.FileMode(header.Mode & 0777)
			if mode == 0 {
				mode = 0644
			}
			out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
			if err != nil {
				return &models.ExtractionError{Archive: archivePath, Err: err}
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return &models.ExtractionError{Archive: archivePath, Err: err}
			}
			out.Close()
		case tar.TypeSymlink:
			os.Remove(destPath)
			if err := os.Symlink(header.Linkname, destPath); err != nil {
				return &models.ExtractionError{Archive: archivePath, Err: err}
			}
		}
	}
	return nil
}

func sanitizePath(destDir, name string) (string, error) {
	destPath := filepath.Join(destDir, filepath.Clean(name))
	if destPath != destDir && !strings.HasPrefix(destPath, destDir+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry '%s' escapes destination", name)
	}
	return destPath, nil
}
