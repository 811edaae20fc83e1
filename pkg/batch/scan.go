package batch

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// ScanResult classifies the XML files found under the two roots. All
// three slices hold slash-separated relative paths in sorted order.
type ScanResult struct {
	// Pairs are paths present under both roots
	Pairs []string

	// OldOnly are paths present only under the old root
	OldOnly []string

	// NewOnly are paths present only under the new root
	NewOnly []string
}

// Scan walks both roots and pairs XML files by relative path
func Scan(ctx context.Context, oldRoot, newRoot string, exclude []string) (*ScanResult, error) {
	oldFiles, err := listXML(ctx, oldRoot, exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to scan old root: %w", err)
	}
	newFiles, err := listXML(ctx, newRoot, exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to scan new root: %w", err)
	}

	result := &ScanResult{}
	for rel := range oldFiles {
		if newFiles[rel] {
			result.Pairs = append(result.Pairs, rel)
		} else {
			result.OldOnly = append(result.OldOnly, rel)
		}
	}
	for rel := range newFiles {
		if !oldFiles[rel] {
			result.NewOnly = append(result.NewOnly, rel)
		}
	}

	sort.Strings(result.Pairs)
	sort.Strings(result.OldOnly)
	sort.Strings(result.NewOnly)

	return result, nil
}

// listXML collects the relative paths of all XML files under root,
// skipping excluded ones
func listXML(ctx context.Context, root string, exclude []string) (map[string]bool, error) {
	files := make(map[string]bool)

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(p), ".xml") {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if excluded(rel, exclude) {
			return nil
		}

		files[rel] = true
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// excluded checks if a relative path matches one of the exclude patterns.
// Patterns support:
//   - Simple glob patterns applied to the file name: *.bak.xml, old_*
//   - Directory patterns: vendor/, testdata/
//   - Path patterns: fixtures/*.xml
//   - Any-depth patterns: **/generated.xml
func excluded(relativePath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	normalizedPath := filepath.ToSlash(relativePath)
	baseName := path.Base(normalizedPath)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		normalizedPattern := filepath.ToSlash(pattern)

		// Directory pattern, matches the path at any level
		if strings.HasSuffix(normalizedPattern, "/") {
			dirPattern := strings.TrimSuffix(normalizedPattern, "/")
			if strings.HasPrefix(normalizedPath, dirPattern+"/") ||
				strings.Contains(normalizedPath, "/"+dirPattern+"/") {
				return true
			}
			continue
		}

		// Any-depth pattern, matches the suffix at any level
		if suffix, ok := strings.CutPrefix(normalizedPattern, "**/"); ok {
			if matchGlob(baseName, suffix) ||
				normalizedPath == suffix ||
				strings.HasSuffix(normalizedPath, "/"+suffix) {
				return true
			}
			continue
		}

		// Pattern with a separator applies to the full relative path
		if strings.Contains(normalizedPattern, "/") {
			if matchGlob(normalizedPath, normalizedPattern) ||
				strings.HasSuffix(normalizedPath, "/"+normalizedPattern) {
				return true
			}
			continue
		}

		// Bare pattern applies to the file name only
		if matchGlob(baseName, normalizedPattern) {
			return true
		}
	}

	return false
}

// matchGlob performs glob matching on slash-separated paths
func matchGlob(name, pattern string) bool {
	matched, _ := path.Match(pattern, name)
	return matched
}
