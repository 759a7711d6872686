package utils

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"clawdeye-installer/internal/models"
)

var httpClient = &http.Client{Timeout: 10 * time.Minute}

/**
 * Fetch a small document from a URL
 * @param {string} urlStr - Full request URL
 * @returns {[]byte} Response body on status 200
 * @throws
 * - DownloadError with the URL and status on non-success responses
 */
func GetBytes(urlStr string) ([]byte, error) {
	rsp, err := httpClient.Get(urlStr)
	if err != nil {
		return nil, &models.DownloadError{URL: urlStr, Err: err}
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(rsp.Body, 4096))
		return nil, &models.DownloadError{
			URL:    urlStr,
			Status: rsp.StatusCode,
			Err:    fmt.Errorf("%s", string(body)),
		}
	}
	return io.ReadAll(rsp.Body)
}

/**
 * Download a file from a URL to a local path
 * @param {string} urlStr - Full download URL
 * @param {string} savePath - Destination file path; parent directories are created
 * @description
 * - Streams the response body to disk
 * - Non-success responses become a DownloadError carrying the URL
 */
func GetFile(urlStr string, savePath string) error {
	rsp, err := httpClient.Get(urlStr)
	if err != nil {
		return &models.DownloadError{URL: urlStr, Err: err}
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusOK {
		return &models.DownloadError{URL: urlStr, Status: rsp.StatusCode}
	}

	if err = os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return fmt.Errorf("GetFile('%s'): MkdirAll('%s') error: %v", urlStr, savePath, err)
	}
	out, err := os.Create(savePath)
	if err != nil {
		return fmt.Errorf("GetFile('%s'): create('%s') error: %v", urlStr, savePath, err)
	}
	defer out.Close()

	if _, err = io.Copy(out, rsp.Body); err != nil {
		return &models.DownloadError{URL: urlStr, Err: err}
	}
	return nil
}
