package util

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func createTestFile(t *testing.T, perm os.FileMode, uid int, gid int) string {
	if os.Geteuid() != 0 {
		t.Skip("changing file ownership requires root")
	}
	filePath := filepath.Join(t.TempDir(), "testfile")
	err := os.WriteFile(filePath, []byte("#!/bin/sh\n"), perm)
	require.NoError(t, err)
	require.NoError(t, os.Chown(filePath, uid, gid))
	require.NoError(t, os.Chmod(filePath, perm))
	return filePath
}

func TestFileHasPermissionsUserIsRoot(t *testing.T) {
	// GIVEN
	filePath := createTestFile(t, 0o700, 0, 1000)

	// WHEN
	result, err := CheckFilePermissionsForExecution(filePath)

	// THEN
	assert.True(t, result)
	assert.NoError(t, err)
}

func TestFileHasPermissionsGroupIsRootAndHasWrite(t *testing.T) {
	// GIVEN
	filePath := createTestFile(t, 0o770, 0, 0)

	// WHEN
	result, err := CheckFilePermissionsForExecution(filePath)

	// THEN
	assert.True(t, result)
	assert.NoError(t, err)
}

func TestFileHasPermissionsGroupOtherThanRootHasWritePermission(t *testing.T) {
	// GIVEN
	filePath := createTestFile(t, 0o770, 0, 1000)

	// WHEN
	result, err := CheckFilePermissionsForExecution(filePath)

	// THEN
	assert.False(t, result)
	assert.Error(t, err)
}

func TestFileHasPermissionsOtherHasWritePermission(t *testing.T) {
	// GIVEN
	filePath := createTestFile(t, 0o702, 0, 0)

	// WHEN
	result, err := CheckFilePermissionsForExecution(filePath)

	// THEN
	assert.False(t, result)
	assert.Error(t, err)
}

func TestFileNotFound(t *testing.T) {
	// WHEN
	result, err := CheckFilePermissionsForExecution(filepath.Join(t.TempDir(), "missing"))

	// THEN
	assert.False(t, result)
	assert.Error(t, err)
}

func TestReadIntFromFile(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "temp1_input")
	require.NoError(t, os.WriteFile(filePath, []byte("42500\n"), 0o644))

	// WHEN
	value, err := ReadIntFromFile(filePath)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 42500, value)
}

func TestReadIntFromFile_Empty(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "temp1_input")
	require.NoError(t, os.WriteFile(filePath, []byte(""), 0o644))

	// WHEN
	_, err := ReadIntFromFile(filePath)

	// THEN
	assert.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "nested", "config.yml")

	// WHEN
	err := WriteFileAtomic(filePath, []byte("version: 1\n"))

	// THEN
	require.NoError(t, err)
	content, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(content))
}
