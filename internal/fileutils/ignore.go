/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package fileutils

import (
	"bufio"
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/go-git/go-git/plumbing/format/gitignore"
)

// Read an ignore file (in .gitignore syntax) from fsys. Patterns are scoped to the directory containing the file.
// If the file does not exist, a nil matcher is returned.
func ReadIgnore(fsys fs.FS, ignorePath string) (gitignore.Matcher, error) {
	var patterns []gitignore.Pattern

	ignoreFile, err := fsys.Open(ignorePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer ignoreFile.Close()

	var domain []string
	if dir := path.Dir(path.Clean(ignorePath)); dir != "." {
		domain = strings.Split(dir, "/")
	}
	scanner := bufio.NewScanner(ignoreFile)
	for scanner.Scan() {
		s := scanner.Text()
		if !strings.HasPrefix(s, "#") && len(strings.TrimSpace(s)) > 0 {
			patterns = append(patterns, gitignore.ParsePattern(s, domain))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return gitignore.NewMatcher(patterns), nil
}

// Check whether the given slash separated path is ignored by matcher; a nil matcher ignores nothing.
func IsIgnored(matcher gitignore.Matcher, filePath string, isDir bool) bool {
	if matcher == nil {
		return false
	}
	return matcher.Match(strings.Split(path.Clean(filePath), "/"), isDir)
}
