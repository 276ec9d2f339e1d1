package contracts

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, DataFormatVersion, info.DataFormat)
}

func TestGetVersionString(t *testing.T) {
	assert.Equal(t, "analyzer v"+Version, GetVersionString("analyzer"))
	assert.Contains(t, GetFullVersionString("generator"), "generator v"+Version)
	assert.Contains(t, GetFullVersionString("generator"), "data format: v1")
}
