package videos

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTempFileSanitizesOriginalName(t *testing.T) {
	src := strings.NewReader("payload")
	path, err := saveTempFile(src, "../../etc/passwd.mp4")
	require.NoError(t, err)
	defer os.Remove(path)

	assert.Equal(t, os.TempDir(), filepath.Dir(path), "имя пользователя не влияет на каталог")
	assert.True(t, strings.HasPrefix(filepath.Base(path), "videotube_"))
	assert.Equal(t, ".mp4", filepath.Ext(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(content))
}

func TestSaveTempFileUniqueNames(t *testing.T) {
	first, err := saveTempFile(strings.NewReader("a"), "clip.mp4")
	require.NoError(t, err)
	defer os.Remove(first)

	second, err := saveTempFile(strings.NewReader("b"), "clip.mp4")
	require.NoError(t, err)
	defer os.Remove(second)

	assert.NotEqual(t, first, second, "одинаковые исходные имена не сталкиваются")
}
