package complete

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// pathScanParallelism bounds the number of PATH directories read at once.
const pathScanParallelism = 4

// scanPath returns the executable names in the PATH directories that start
// with prefix, sorted and deduplicated. Directories are scanned in parallel;
// unreadable ones are skipped, matching how a shell resolves programs.
func (e *Engine) scanPath(prefix string) []string {
	dirs := filepath.SplitList(os.Getenv("PATH"))
	if len(dirs) == 0 {
		return nil
	}

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{})
	)

	var g errgroup.Group
	g.SetLimit(pathScanParallelism)
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		g.Go(func() error {
			var matched []string
			for _, name := range e.executablesIn(dir) {
				if strings.HasPrefix(name, prefix) {
					matched = append(matched, name)
				}
			}
			if len(matched) == 0 {
				return nil
			}
			mu.Lock()
			for _, name := range matched {
				seen[name] = struct{}{}
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// executablesIn lists the executable entries of one directory, serving
// repeat lookups from the cache while the directory is unchanged.
// Symlinks are followed so links to programs complete too.
func (e *Engine) executablesIn(dir string) []string {
	info, err := os.Stat(dir)
	if err != nil {
		return nil
	}
	if names, ok := e.paths.lookup(dir, info.ModTime()); ok {
		return names
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fi, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		mode := fi.Mode()
		if mode.IsRegular() && mode.Perm()&0111 != 0 {
			names = append(names, entry.Name())
		}
	}

	e.paths.store(dir, info.ModTime(), names)
	return names
}
