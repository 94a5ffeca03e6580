package testutil_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/octopages/pkg/utils/testutil"
)

func TestGetEnvOrSkip(t *testing.T) {
	t.Setenv("OCTOPAGES_TEST_ENV_VAR", "test_value")
	gt.V(t, testutil.GetEnvOrSkip(t, "OCTOPAGES_TEST_ENV_VAR")).Equal("test_value")
}

func TestArchives(t *testing.T) {
	files := testutil.Files{"index.html": "<html>", "assets/": ""}

	gt.V(t, string(testutil.ZipArchive(t, files)[:2])).Equal("PK")
	gt.True(t, len(testutil.TarArchive(t, files, nil)) >= 1024)
	gt.V(t, testutil.TarGzArchive(t, files)[:2]).Equal([]byte{0x1f, 0x8b})
	gt.V(t, testutil.TarZstdArchive(t, files)[:4]).Equal([]byte{0x28, 0xb5, 0x2f, 0xfd})
}
