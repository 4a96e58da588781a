/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package fileutils

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/sap/go-generics/slices"
)

const (
	FileTypeRegular uint = 1 << iota
	FileTypeDir
	FileTypeSymlink
	FileTypeOther
	FileTypeAny = FileTypeRegular | FileTypeDir | FileTypeSymlink | FileTypeOther
)

const maxDepthLimit = 10000

// FindOptions filter the result of Find().
type FindOptions struct {
	// Pattern matched against the base name of entries (using path.Match()); must not contain slashes; empty matches anything.
	NamePattern string
	// Logically or'ed combination of the FileType constants; zero means FileTypeAny.
	FileType uint
	// Maximum depth to descend (1 means direct entries of dir only); zero means no limit.
	MaxDepth uint
}

func fileTypeFromMode(mode fs.FileMode) uint {
	switch {
	case mode&fs.ModeType == 0:
		return FileTypeRegular
	case mode&fs.ModeDir != 0:
		return FileTypeDir
	case mode&fs.ModeSymlink != 0:
		return FileTypeSymlink
	default:
		return FileTypeOther
	}
}

// Search fsys for all entries under dir matching the given options.
// The returned paths are relative to fsys (cleaned, with no leading dot) and sorted lexically.
// An empty dir is treated like '.'; a non-existing dir yields an empty result.
func Find(fsys fs.FS, dir string, options FindOptions) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	dir = path.Clean(dir)
	if options.NamePattern == "" {
		options.NamePattern = "*"
	} else if strings.Contains(options.NamePattern, "/") {
		return nil, fmt.Errorf("invalid name pattern %q; must not contain slashes", options.NamePattern)
	}
	if _, err := path.Match(options.NamePattern, ""); err != nil {
		return nil, err
	}
	if options.FileType == 0 {
		options.FileType = FileTypeAny
	} else if options.FileType&FileTypeAny != options.FileType {
		return nil, fmt.Errorf("invalid file type %d", options.FileType)
	}
	if options.MaxDepth == 0 {
		options.MaxDepth = maxDepthLimit
	} else if options.MaxDepth > maxDepthLimit {
		return nil, fmt.Errorf("invalid maximum depth; must not exceed %d", maxDepthLimit)
	}

	var result []string
	err := fs.WalkDir(fsys, dir, func(entryPath string, entry fs.DirEntry, err error) error {
		if err != nil {
			if entryPath == dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if entryPath == dir {
			return nil
		}
		if depth(dir, entryPath) > options.MaxDepth {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		// the pattern was validated above
		if match, _ := path.Match(options.NamePattern, entry.Name()); match && fileTypeFromMode(entry.Type())&options.FileType != 0 {
			result = append(result, entryPath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Sort(result), nil
}

// Read all regular files under dir (see Find()); the keys of the returned map are relative to dir.
func ReadFiles(fsys fs.FS, dir string, options FindOptions) (map[string][]byte, error) {
	options.FileType = FileTypeRegular
	files, err := Find(fsys, dir, options)
	if err != nil {
		return nil, err
	}
	result := make(map[string][]byte, len(files))
	for _, file := range files {
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, err
		}
		result[relativePath(dir, file)] = raw
	}
	return result, nil
}

func depth(dir string, entryPath string) uint {
	return uint(strings.Count(relativePath(dir, entryPath), "/") + 1)
}

func relativePath(dir string, entryPath string) string {
	if dir == "." || dir == "" {
		return entryPath
	}
	return strings.TrimPrefix(entryPath, path.Clean(dir)+"/")
}
