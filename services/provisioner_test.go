package services

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clawdeye-installer/internal/models"
)

/**
 * Test asset name and URL derivation
 * @description
 * - A tag must map deterministically to the asset name and to a download
 *   URL embedding both the repository and that exact asset
 */
func TestAssetNameAndURL(t *testing.T) {
	if got := AssetName("v1.2.3"); got != "clawdeye-v1.2.3.tgz" {
		t.Errorf("AssetName: expected 'clawdeye-v1.2.3.tgz', got '%s'", got)
	}

	url := DownloadURL("metamize/clawdeye", "v1.2.3")
	if !strings.Contains(url, "metamize/clawdeye") {
		t.Errorf("download URL does not embed the repository: %s", url)
	}
	if !strings.Contains(url, "clawdeye-v1.2.3.tgz") {
		t.Errorf("download URL does not embed the asset name: %s", url)
	}
	if !strings.Contains(url, "/releases/download/v1.2.3/") {
		t.Errorf("download URL does not embed the tag path: %s", url)
	}
}

func TestResolveLatestTag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/metamize/clawdeye/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tag_name": "v2.0.1", "name": "release 2.0.1"}`))
	}))
	defer server.Close()

	tag, err := ResolveLatestTag(server.URL, "metamize/clawdeye")
	if err != nil {
		t.Fatalf("ResolveLatestTag failed: %v", err)
	}
	if tag != "v2.0.1" {
		t.Errorf("expected tag 'v2.0.1', got '%s'", tag)
	}
}

/**
 * Test release resolution failure modes
 * @description
 * - A response without tag_name and an unreachable API must both surface
 *   as a ReleaseResolutionError
 */
func TestResolveLatestTagMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer server.Close()

	_, err := ResolveLatestTag(server.URL, "metamize/clawdeye")
	if err == nil {
		t.Fatal("expected an error for a response without tag_name")
	}
	var relErr *models.ReleaseResolutionError
	if !errors.As(err, &relErr) {
		t.Fatalf("expected ReleaseResolutionError, got %T: %v", err, err)
	}
	if relErr.Repository != "metamize/clawdeye" {
		t.Errorf("error does not carry the repository: %v", relErr)
	}
}

func TestResolveLatestTagAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "rate limited"}`))
	}))
	defer server.Close()

	_, err := ResolveLatestTag(server.URL, "metamize/clawdeye")
	var relErr *models.ReleaseResolutionError
	if !errors.As(err, &relErr) {
		t.Fatalf("expected ReleaseResolutionError, got %T: %v", err, err)
	}
	var dlErr *models.DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("expected wrapped DownloadError, got: %v", err)
	}
	if dlErr.Status != http.StatusForbidden {
		t.Errorf("expected status 403 in wrapped error, got %d", dlErr.Status)
	}
}
