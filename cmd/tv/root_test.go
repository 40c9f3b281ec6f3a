package tv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tvfind/tv/internal/config"
)

func TestResolveCableDirPrefersFlag(t *testing.T) {
	assert.Equal(t, "/flag/cable", resolveCableDir("/flag/cable", "/config/cable"))
}

func TestResolveCableDirFallsBackToConfig(t *testing.T) {
	assert.Equal(t, "/config/cable", resolveCableDir("", "/config/cable"))
}

func TestResolveCableDirFallsBackToDataDir(t *testing.T) {
	assert.Equal(t, filepath.Join(config.DataDir(), "cable"), resolveCableDir("", ""))
}
