package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString_ContainsAllFields(t *testing.T) {
	s := String()

	assert.Contains(t, s, "paprika-mcp")
	assert.Contains(t, s, Version)
	assert.Contains(t, s, Commit)
	assert.Contains(t, s, Date)
}

func TestShort_ReturnsVersionOnly(t *testing.T) {
	assert.Equal(t, Version, Short())
}

func TestGetInfo_PopulatesRuntimeFields(t *testing.T) {
	info := GetInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Arch)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}
