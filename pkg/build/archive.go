/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package build

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sap/go-generics/maps"
	"github.com/sap/go-generics/slices"

	"github.com/sap/manifest-enricher/internal/fileutils"
	"github.com/sap/manifest-enricher/pkg/project"
)

const (
	dockerfileName   = "Dockerfile"
	dockerignoreName = ".dockerignore"
	deploymentsDir   = "/deployments/"
)

var archiveModTime = time.Unix(0, 0).UTC()

// DirArchiver implements Archiver by packaging the image's context directory.
// The resulting archive is deterministic; the root Dockerfile entry always holds the effective Dockerfile
// (the custom one, if configured, otherwise a generated one).
type DirArchiver struct {
	// File system to read context directories from; defaults to the local file system.
	fsys func(dir string) fs.FS
}

var _ Archiver = &DirArchiver{}

// Create a new DirArchiver reading from the local file system.
func NewDirArchiver() *DirArchiver {
	return &DirArchiver{fsys: os.DirFS}
}

// Create a new DirArchiver reading context directories through the given function.
func NewDirArchiverWithFS(fsys func(dir string) fs.FS) *DirArchiver {
	return &DirArchiver{fsys: fsys}
}

func (a *DirArchiver) Archive(ctx context.Context, image project.ImageConfiguration) ([]byte, error) {
	config := image.Build
	if config == nil {
		return nil, fmt.Errorf("image %s has no build configuration", image.Name)
	}

	var contextFS fs.FS
	if config.ContextDir != "" {
		contextFS = a.fsys(config.ContextDir)
	} else if config.Dockerfile != "" {
		return nil, fmt.Errorf("image %s: custom dockerfile requires a context directory", image.Name)
	}

	var dockerfile []byte
	if config.Dockerfile != "" {
		raw, err := fs.ReadFile(contextFS, path.Clean(config.Dockerfile))
		if err != nil {
			return nil, errors.Wrapf(err, "error reading dockerfile of image %s", image.Name)
		}
		dockerfile = raw
	} else {
		raw, err := GenerateDockerfile(config, contextFS != nil)
		if err != nil {
			return nil, errors.Wrapf(err, "error generating dockerfile of image %s", image.Name)
		}
		dockerfile = raw
	}

	buf := &bytes.Buffer{}
	writer := tar.NewWriter(buf)
	if err := writeFile(writer, dockerfileName, dockerfile); err != nil {
		return nil, err
	}
	if contextFS != nil {
		ignore, err := fileutils.ReadIgnore(contextFS, dockerignoreName)
		if err != nil {
			return nil, errors.Wrapf(err, "error reading %s of image %s", dockerignoreName, image.Name)
		}
		files, err := fileutils.Find(contextFS, ".", fileutils.FindOptions{FileType: fileutils.FileTypeRegular})
		if err != nil {
			return nil, errors.Wrapf(err, "error reading context directory of image %s", image.Name)
		}
		for _, file := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if file == dockerfileName || fileutils.IsIgnored(ignore, file, false) {
				continue
			}
			raw, err := fs.ReadFile(contextFS, file)
			if err != nil {
				return nil, err
			}
			if err := writeFile(writer, file, raw); err != nil {
				return nil, err
			}
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Generate a Dockerfile from the given build configuration.
// Labels and environment variables are sorted by key; the context is copied to /deployments/ if withContext is set.
func GenerateDockerfile(config *project.BuildImageConfiguration, withContext bool) ([]byte, error) {
	if config.From == "" {
		return nil, fmt.Errorf("no base image specified")
	}
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "FROM %s\n", config.From)
	for _, key := range slices.Sort(maps.Keys(config.Labels)) {
		fmt.Fprintf(buf, "LABEL %s=%s\n", quoteKey(key), strconv.Quote(config.Labels[key]))
	}
	for _, key := range slices.Sort(maps.Keys(config.Env)) {
		fmt.Fprintf(buf, "ENV %s=%s\n", key, strconv.Quote(config.Env[key]))
	}
	if len(config.Ports) > 0 {
		fmt.Fprintf(buf, "EXPOSE %s\n", strings.Join(config.Ports, " "))
	}
	if withContext {
		fmt.Fprintf(buf, "COPY . %s\n", deploymentsDir)
	}
	if len(config.Cmd) > 0 {
		cmd := slices.Collect(config.Cmd, strconv.Quote)
		fmt.Fprintf(buf, "CMD [%s]\n", strings.Join(cmd, ", "))
	}
	return buf.Bytes(), nil
}

func quoteKey(key string) string {
	if strings.ContainsAny(key, " \t=\"") {
		return strconv.Quote(key)
	}
	return key
}

func writeFile(writer *tar.Writer, name string, data []byte) error {
	header := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(data)),
		ModTime:  archiveModTime,
	}
	if err := writer.WriteHeader(header); err != nil {
		return err
	}
	_, err := writer.Write(data)
	return err
}
