package reconciler

import (
	"path"
	"strconv"
	"strings"

	"github.com/m-mizutani/octopages/pkg/domain/model"
)

// archiveExtensions are container and compression suffixes. They stack, as in
// ".tar.xz", so all of them are removed.
var archiveExtensions = map[string]struct{}{
	".zip": {}, ".tar": {}, ".tgz": {}, ".tbz2": {}, ".txz": {},
	".gz": {}, ".zst": {}, ".xz": {}, ".bz2": {}, ".lz4": {}, ".7z": {}, ".rar": {},
}

// TrimArchiveExt removes every archive and compression extension and then
// one extension of the payload itself, so "game-web.pck.zip" becomes
// "game-web".
func TrimArchiveExt(name string) string {
	for {
		ext := path.Ext(name)
		if _, ok := archiveExtensions[strings.ToLower(ext)]; !ok {
			break
		}
		name = strings.TrimSuffix(name, ext)
	}

	// "game-v1.2-web" has no extension even though path.Ext finds ".2-web".
	if ext := path.Ext(name); isPlainExt(ext) {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

func isPlainExt(ext string) bool {
	if len(ext) < 2 {
		return false
	}
	letters := false
	for _, c := range ext[1:] {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			letters = true
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return letters
}

// MatchAsset reports whether a release asset carries the build named
// artifactName, e.g. "game-v1.2-web.zip" for "web".
func MatchAsset(assetName, artifactName string) bool {
	if artifactName == "" {
		return false
	}
	return strings.HasSuffix(TrimArchiveExt(assetName), "-"+artifactName)
}

// selectLatestRelease picks the most recently published non-draft release,
// pre-releases included, and its asset for the configured artifact. Nil
// when no release qualifies or the latest one has no matching asset.
func selectLatestRelease(cfg Config, releases []*model.Release, site *model.SiteModel) *model.LatestRelease {
	var latest *model.Release
	for _, release := range releases {
		if release == nil || release.Draft {
			continue
		}
		if err := release.Validate(); err != nil {
			site.Warn("release:"+strconv.FormatInt(release.ID, 10), "%s", err.Error())
			continue
		}

		if latest == nil ||
			release.PublishedAt.After(latest.PublishedAt) ||
			(release.PublishedAt.Equal(latest.PublishedAt) && release.ID > latest.ID) {
			latest = release
		}
	}

	if latest == nil {
		return nil
	}

	for _, asset := range latest.Assets {
		if asset != nil && MatchAsset(asset.Name, cfg.ArtifactName) {
			return &model.LatestRelease{Release: latest, Asset: asset}
		}
	}

	site.Warn("release:"+latest.TagName, "no asset matches artifact %q", cfg.ArtifactName)
	return nil
}
