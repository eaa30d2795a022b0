package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aidanlsb/sitedates/internal/atomicfile"
	"github.com/aidanlsb/sitedates/internal/paths"
)

// CopyResult summarizes a passthrough copy.
type CopyResult struct {
	Files   int      `json:"files"`
	Bytes   int64    `json:"bytes"`
	Missing []string `json:"missing,omitempty"`
}

// CopyPassthrough copies each entry (a file or directory relative to root)
// into output unchanged. Entries that do not exist are reported in Missing
// rather than failing the copy.
func CopyPassthrough(ctx context.Context, root, output string, entries []string) (CopyResult, error) {
	var result CopyResult
	for _, entry := range entries {
		src := filepath.Join(root, filepath.FromSlash(entry))
		info, err := os.Stat(src)
		if errors.Is(err, fs.ErrNotExist) {
			result.Missing = append(result.Missing, entry)
			continue
		}
		if err != nil {
			return result, fmt.Errorf("passthrough %s: %w", entry, err)
		}
		if err := paths.ValidateWithinRoot(root, src); err != nil {
			return result, fmt.Errorf("passthrough %s: %w", entry, err)
		}

		if !info.IsDir() {
			if err := copyOne(&result, src, filepath.Join(output, filepath.FromSlash(entry))); err != nil {
				return result, err
			}
			continue
		}

		err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			return copyOne(&result, path, filepath.Join(output, rel))
		})
		if err != nil {
			return result, fmt.Errorf("passthrough %s: %w", entry, err)
		}
	}
	return result, nil
}

func copyOne(result *CopyResult, src, dst string) error {
	n, err := atomicfile.CopyFile(src, dst)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	result.Files++
	result.Bytes += n
	return nil
}
