package release

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"provision-host/internal/logger"
)

// release mirrors the fields of the GitHub release JSON that asset
// selection needs.
type release struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// Install fetches the GitHub release repo@tag, downloads the archive asset
// matching the running platform, extracts it, and places the tool's
// executable on the PATH (/usr/local/bin, falling back to ~/bin). It
// returns the installed path. This is the fallback route for catalog
// entries the OS package manager does not carry.
func Install(tool, repo, tag string) (string, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/releases/tags/%s", repo, tag)
	logger.Debug("[DEBUG] Fetching GitHub release from %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch release %s@%s: %w", repo, tag, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close release response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release fetch for %s@%s returned HTTP %d", repo, tag, resp.StatusCode)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", fmt.Errorf("failed to decode release JSON for %s@%s: %w", repo, tag, err)
	}
	logger.Debug("[DEBUG] Release %s has %d assets\n", rel.TagName, len(rel.Assets))

	assetURL, assetName := pickAsset(&rel, assetPatterns(runtime.GOOS, runtime.GOARCH))
	if assetURL == "" {
		return "", fmt.Errorf("no asset in %s@%s matches %s/%s", repo, tag, runtime.GOOS, runtime.GOARCH)
	}

	archive := filepath.Join(os.TempDir(), path.Base(assetURL))
	logger.Info("[INFO] Downloading %s to %s\n", assetName, archive)
	if err := download(assetURL, archive); err != nil {
		return "", err
	}

	installed, err := ExtractAndInstall(archive, os.TempDir(), tool)
	if err != nil {
		return "", fmt.Errorf("failed to install %s from %s: %w", tool, assetName, err)
	}
	logger.Info("[INFO] Installed %s from release asset %s\n", installed, assetName)
	return installed, nil
}

// assetPatterns returns the substrings an asset filename may use to label
// the given platform, most specific first. Release authors are wildly
// inconsistent here (linux_amd64, x86_64-unknown-linux, macOS, aarch64),
// so each OS/arch pair carries its common aliases.
func assetPatterns(goos, goarch string) []string {
	archAliases := map[string][]string{
		"amd64": {"amd64", "x86_64"},
		"arm64": {"arm64", "aarch64"},
	}
	osAliases := map[string][]string{
		"linux":  {"linux"},
		"darwin": {"darwin", "macos", "apple-darwin"},
	}

	arches, ok := archAliases[goarch]
	if !ok {
		arches = []string{goarch}
	}
	oses, ok := osAliases[goos]
	if !ok {
		oses = []string{goos}
	}

	var patterns []string
	for _, o := range oses {
		for _, a := range arches {
			patterns = append(patterns, o+"_"+a, o+"-"+a, a+"-"+o, a+"_"+o)
		}
	}
	// Bare OS names last, for assets labeled only by OS (e.g. yq_linux.tar.gz).
	patterns = append(patterns, oses...)
	return patterns
}

// pickAsset returns the download URL and name of the first asset that
// matches a platform pattern and carries a supported archive suffix.
// Patterns are tried in order, so more specific matches win.
func pickAsset(rel *release, patterns []string) (url, name string) {
	for _, pattern := range patterns {
		for _, asset := range rel.Assets {
			lower := strings.ToLower(asset.Name)
			if strings.Contains(lower, pattern) && isArchive(lower) {
				logger.Debug("[DEBUG] Asset %s matches pattern %s\n", asset.Name, pattern)
				return asset.BrowserDownloadURL, asset.Name
			}
		}
	}
	return "", ""
}

// download fetches url into destPath.
func download(url, destPath string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close download body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download of %s returned HTTP %d", url, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close %s: %v\n", destPath, cerr)
		}
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	logger.Debug("[DEBUG] Downloaded %s to %s\n", url, destPath)
	return nil
}
