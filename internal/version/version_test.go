package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, Commit, info.Commit)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Contains(t, info.Platform, runtime.GOOS)
	assert.Contains(t, info.Platform, runtime.GOARCH)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "1.2.3",
		Commit:    "abcdef1234567890",
		Date:      "2026-01-01",
		GoVersion: "go1.24",
		Platform:  "linux/amd64",
	}

	s := info.String()
	assert.True(t, strings.HasPrefix(s, "swarm 1.2.3"))
	assert.Contains(t, s, "abcdef12")
	assert.NotContains(t, s, "abcdef123", "commit should be shortened to 8 chars")
	assert.Contains(t, s, "linux/amd64")
}

func TestInfoShort(t *testing.T) {
	info := Info{Version: "1.2.3"}
	assert.Equal(t, "1.2.3", info.Short())
}
