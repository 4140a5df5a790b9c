//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

// Package corpus loads line-aligned candidate and reference text files.
package corpus

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/internal/bleu"
	"trpc.group/trpc-go/trpc-bleu-go/log"
)

// DefaultPattern matches every file directly inside a reference directory.
const DefaultPattern = "*"

// maxLineSize bounds a single line read from a corpus file.
const maxLineSize = 16 * 1024 * 1024

// ErrNoFiles reports a directory without matching files.
var ErrNoFiles = errors.New("no matching files")

// File is a text file read as one sentence per line.
type File struct {
	// Path is the file the lines were read from.
	Path string
	// Lines holds the raw lines without line terminators.
	Lines []string
}

// Corpora holds a candidate file and its aligned reference files.
type Corpora struct {
	// Candidate is the candidate translation file.
	Candidate File
	// References are the reference translation files in enumeration order.
	References []File
}

// ReferenceLines returns the lines of every reference in enumeration order.
func (c *Corpora) ReferenceLines() [][]string {
	out := make([][]string, len(c.References))
	for i, ref := range c.References {
		out[i] = ref.Lines
	}
	return out
}

// ReferencePaths returns the path of every reference in enumeration order.
func (c *Corpora) ReferencePaths() []string {
	out := make([]string, len(c.References))
	for i, ref := range c.References {
		out[i] = ref.Path
	}
	return out
}

// ReadLines reads r as one sentence per line.
// A trailing newline does not produce an extra empty line.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// LoadFile reads a UTF-8 text file as one sentence per line.
func LoadFile(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()
	lines, err := ReadLines(f)
	if err != nil {
		return File{}, fmt.Errorf("read corpus %s: %w", path, err)
	}
	log.Tracef("corpus: read %d lines from %s", len(lines), path)
	return File{Path: path, Lines: lines}, nil
}

// ResolvePaths resolves path into corpus files.
// A regular file resolves to itself; a directory contributes every
// non-hidden regular file matching pattern, sorted by name.
func ResolvePaths(path, pattern string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := doublestar.Glob(os.DirFS(path), pattern)
	if err != nil {
		return nil, fmt.Errorf("searching files with pattern '%s': %w", pattern, err)
	}
	var paths []string
	for _, match := range matches {
		if isHidden(match) {
			continue
		}
		full := filepath.Join(path, match)
		stat, err := os.Stat(full)
		if err != nil || !stat.Mode().IsRegular() {
			continue
		}
		paths = append(paths, full)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s matching '%s'", ErrNoFiles, path, pattern)
	}
	sort.Strings(paths)
	return paths, nil
}

// isHidden reports whether any element of a slash-separated relative path starts with a dot.
func isHidden(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// LoadReferences reads every reference file resolved from path and pattern.
// Read failures of individual files are reported together.
func LoadReferences(path, pattern string) ([]File, error) {
	paths, err := ResolvePaths(path, pattern)
	if err != nil {
		return nil, err
	}
	refs := make([]File, 0, len(paths))
	var errs error
	for _, p := range paths {
		ref, err := LoadFile(p)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		refs = append(refs, ref)
	}
	if errs != nil {
		return nil, errs
	}
	return refs, nil
}

// Load reads the candidate file and the references and checks that every
// reference has exactly one line per candidate line.
// All misaligned references are reported together.
func Load(ctx context.Context, candidatePath, referencePath string, opt ...Option) (*Corpora, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}
	opts := newOptions(opt...)
	candidate, err := LoadFile(candidatePath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	refs, err := LoadReferences(referencePath, opts.pattern)
	if err != nil {
		return nil, err
	}
	corpora := &Corpora{Candidate: candidate, References: refs}
	if err := corpora.CheckAlignment(); err != nil {
		return nil, err
	}
	log.Debugf("corpus: %d candidate lines, %d references", len(candidate.Lines), len(refs))
	return corpora, nil
}

// CheckAlignment returns a multierror with one entry per reference whose
// line count differs from the candidate. Each entry matches bleu.ErrMisalignedCorpus.
func (c *Corpora) CheckAlignment() error {
	var errs error
	for i, ref := range c.References {
		if len(ref.Lines) == len(c.Candidate.Lines) {
			continue
		}
		errs = multierror.Append(errs, fmt.Errorf("reference %s: %w", ref.Path, &bleu.MisalignedCorpusError{
			Reference:    i,
			CandidateLen: len(c.Candidate.Lines),
			ReferenceLen: len(ref.Lines),
		}))
	}
	return errs
}
