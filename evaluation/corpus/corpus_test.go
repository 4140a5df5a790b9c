//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/internal/bleu"
)

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestReadLines verifies line splitting, CRLF handling and the trailing newline rule.
func TestReadLines(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("a b\r\n\nc\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a b", "", "c"}, lines)

	lines, err = ReadLines(strings.NewReader("no newline"))
	require.NoError(t, err)
	assert.Equal(t, []string{"no newline"}, lines)

	lines, err = ReadLines(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

// TestLoad_SingleReferenceFile verifies loading a candidate with one reference file.
func TestLoad_SingleReferenceFile(t *testing.T) {
	dir := t.TempDir()
	cand := writeFile(t, dir, "cand.txt", "the cat\non the mat\n")
	ref := writeFile(t, dir, "ref.txt", "the cat sat\non a mat\n")

	c, err := Load(context.Background(), cand, ref)
	require.NoError(t, err)
	assert.Equal(t, []string{"the cat", "on the mat"}, c.Candidate.Lines)
	require.Len(t, c.References, 1)
	assert.Equal(t, [][]string{{"the cat sat", "on a mat"}}, c.ReferenceLines())
	assert.Equal(t, []string{ref}, c.ReferencePaths())
}

// TestLoad_ReferenceDirectory verifies sorted directory enumeration, hidden file skipping and patterns.
func TestLoad_ReferenceDirectory(t *testing.T) {
	dir := t.TempDir()
	cand := writeFile(t, dir, "cand.txt", "a\n")
	refDir := filepath.Join(dir, "refs")
	writeFile(t, refDir, "ref2.txt", "b\n")
	writeFile(t, refDir, "ref1.txt", "a\n")
	writeFile(t, refDir, ".hidden", "x\ny\n")
	writeFile(t, refDir, "notes.md", "n\n")
	require.NoError(t, os.MkdirAll(filepath.Join(refDir, "sub"), 0o755))

	c, err := Load(context.Background(), cand, refDir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(refDir, "notes.md"),
		filepath.Join(refDir, "ref1.txt"),
		filepath.Join(refDir, "ref2.txt"),
	}, c.ReferencePaths())

	c, err = Load(context.Background(), cand, refDir, WithPattern("*.txt"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"b"}}, c.ReferenceLines())
}

// TestLoad_RecursivePattern verifies doublestar patterns reaching into subdirectories.
func TestLoad_RecursivePattern(t *testing.T) {
	dir := t.TempDir()
	cand := writeFile(t, dir, "cand.txt", "a\n")
	refDir := filepath.Join(dir, "refs")
	writeFile(t, refDir, "en/ref.txt", "a\n")
	writeFile(t, refDir, "top.txt", "b\n")

	c, err := Load(context.Background(), cand, refDir, WithPattern("**/*.txt"))
	require.NoError(t, err)
	assert.Len(t, c.References, 2)
}

// TestLoad_NoReferenceFiles verifies that an empty match set is an error.
func TestLoad_NoReferenceFiles(t *testing.T) {
	dir := t.TempDir()
	cand := writeFile(t, dir, "cand.txt", "a\n")
	refDir := filepath.Join(dir, "refs")
	writeFile(t, refDir, "ref.md", "a\n")

	_, err := Load(context.Background(), cand, refDir, WithPattern("*.txt"))
	assert.True(t, errors.Is(err, ErrNoFiles))
}

// TestLoad_Misaligned verifies that every misaligned reference is reported.
func TestLoad_Misaligned(t *testing.T) {
	dir := t.TempDir()
	cand := writeFile(t, dir, "cand.txt", "a\nb\n")
	refDir := filepath.Join(dir, "refs")
	writeFile(t, refDir, "ref1.txt", "a\n")
	writeFile(t, refDir, "ref2.txt", "a\nb\n")
	writeFile(t, refDir, "ref3.txt", "a\nb\nc\n")

	_, err := Load(context.Background(), cand, refDir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, bleu.ErrMisalignedCorpus))
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)
	assert.Contains(t, err.Error(), "ref1.txt")
	assert.Contains(t, err.Error(), "ref3.txt")
}

// TestLoad_MissingFiles verifies errors for missing candidate and reference paths.
func TestLoad_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	cand := writeFile(t, dir, "cand.txt", "a\n")

	_, err := Load(context.Background(), filepath.Join(dir, "missing.txt"), cand)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Load(context.Background(), cand, filepath.Join(dir, "missing"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

// TestLoad_NilContext verifies that nil contexts return an error.
func TestLoad_NilContext(t *testing.T) {
	_, err := Load(nil, "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context is nil")
}
