package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	"github.com/rios0rios0/repopublish/internal/domain/repositories"
)

// maxFileSize caps the files read into a snapshot; anything larger is not
// editor content.
const maxFileSize = 1 << 20

// DirectoryWorkspaceRepository reads a project directory into a file set.
// Ignored directory names are skipped at any depth; binary and oversized
// files are left out.
type DirectoryWorkspaceRepository struct {
	fs     billy.Filesystem
	ignore []string
}

// NewDirectoryWorkspaceRepository creates a loader rooted at settings.Dir.
func NewDirectoryWorkspaceRepository(settings entities.ProjectSettings) repositories.WorkspaceRepository {
	return NewFilesystemWorkspaceRepository(osfs.New(settings.Dir), settings.Ignore)
}

// NewFilesystemWorkspaceRepository creates a loader on any billy filesystem.
func NewFilesystemWorkspaceRepository(fs billy.Filesystem, ignore []string) *DirectoryWorkspaceRepository {
	return &DirectoryWorkspaceRepository{fs: fs, ignore: ignore}
}

func (r *DirectoryWorkspaceRepository) LoadFiles(ctx context.Context) (entities.ProjectFileSet, error) {
	files := entities.ProjectFileSet{}

	err := util.Walk(r.fs, "/", func(walkPath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if info.IsDir() {
			if walkPath != "/" && slices.Contains(r.ignore, info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		name := filepath.ToSlash(strings.TrimPrefix(walkPath, "/"))
		if info.Size() > maxFileSize {
			logger.Debugf("Skipping %q: %d bytes", name, info.Size())
			return nil
		}

		content, readErr := util.ReadFile(r.fs, walkPath)
		if readErr != nil {
			return fmt.Errorf("read %q: %w", name, readErr)
		}
		if !utf8.Valid(content) {
			logger.Debugf("Skipping binary file %q", name)
			return nil
		}

		files[name] = string(content)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", r.fs.Root(), err)
	}

	return files, nil
}
