package yaml_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/docassist"
	"github.com/fwojciec/docassist/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSiteProfile(t *testing.T) {
	t.Parallel()

	t.Run("empty document yields the default profile", func(t *testing.T) {
		t.Parallel()

		profile, err := yaml.DecodeSiteProfile(strings.NewReader(""))

		require.NoError(t, err)
		assert.Equal(t, docassist.DefaultSiteProfile(), profile)
	})

	t.Run("overrides selected fields", func(t *testing.T) {
		t.Parallel()

		src := `
content_selector: main article
excluded_selector: nav
strip_images: false
title_suffixes:
  - " | Example Docs"
exclude_markers: [cookie, logout]
external_links: drop
`

		profile, err := yaml.DecodeSiteProfile(strings.NewReader(src))

		require.NoError(t, err)
		assert.Equal(t, "main article", profile.ContentSelector)
		assert.Equal(t, "nav", profile.ExcludedSelector)
		assert.False(t, profile.StripImages)
		assert.Equal(t, []string{" | Example Docs"}, profile.TitleSuffixes)
		assert.Equal(t, []string{"cookie", "logout"}, profile.ExcludeMarkers)
		assert.Equal(t, docassist.ExternalDrop, profile.ExternalLinks)
		assert.Equal(t, docassist.DefaultWaitCondition, profile.WaitCondition)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.DecodeSiteProfile(strings.NewReader("content_selectr: main\n"))

		assert.Equal(t, docassist.EINVALID, docassist.ErrorCode(err))
	})

	t.Run("rejects unknown link policy", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.DecodeSiteProfile(strings.NewReader("external_links: follow\n"))

		assert.Equal(t, docassist.EINVALID, docassist.ErrorCode(err))
	})
}

func TestLoadSiteProfile(t *testing.T) {
	t.Parallel()

	t.Run("reads profile from file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "site.yaml")
		require.NoError(t, os.WriteFile(path, []byte("wait_condition: \"() => true\"\n"), 0644))

		profile, err := yaml.LoadSiteProfile(path)

		require.NoError(t, err)
		assert.Equal(t, "() => true", profile.WaitCondition)
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadSiteProfile(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})
}
