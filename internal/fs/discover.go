package fs

import (
	"cmp"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrNotRegular is reported for paths that are neither directories nor
// regular files (devices, sockets, fifos).
var ErrNotRegular = errors.New("not a regular file")

// Warning describes a path that discovery skipped.
type Warning struct {
	Action string // "cannot stat", "cannot opendir", ...
	Path   string
	Err    error
}

// DiscoverOptions controls how directories are expanded.
type DiscoverOptions struct {
	// RecurseMore descends into nested directories. Directories named
	// directly are always expanded one level.
	RecurseMore bool
	// Warn receives every skipped path. May be nil.
	Warn func(Warning)
}

var statFn = os.Stat

// Discover expands paths into the list of regular files to page, in
// discovery order. Failures are reported through opts.Warn and never abort.
func Discover(paths []string, opts DiscoverOptions) []string {
	d := discoverer{
		opts:    opts,
		visited: make(map[string]struct{}),
	}
	for _, path := range paths {
		d.add(path, true)
	}
	return d.files
}

// DiscoverTree expands root with unlimited recursion.
func DiscoverTree(root string, warn func(Warning)) []string {
	return Discover([]string{root}, DiscoverOptions{RecurseMore: true, Warn: warn})
}

type discoverer struct {
	opts    DiscoverOptions
	files   []string
	visited map[string]struct{}
}

func (d *discoverer) warn(action, path string, err error) {
	if d.opts.Warn != nil {
		d.opts.Warn(Warning{Action: action, Path: path, Err: err})
	}
}

func (d *discoverer) add(path string, recurse bool) {
	info, err := statFn(path)
	if err != nil {
		d.warn("cannot stat", path, err)
		return
	}

	switch {
	case info.IsDir():
		if !recurse {
			d.warn("-r not specified; omitting directory", path, nil)
			return
		}
		d.addDir(path)
	case !info.Mode().IsRegular():
		d.warn("cannot read", path, ErrNotRegular)
	default:
		d.files = append(d.files, path)
	}
}

func (d *discoverer) addDir(path string) {
	key := path
	if real, err := filepath.EvalSymlinks(path); err == nil {
		key = real
	}
	if _, seen := d.visited[key]; seen {
		return
	}
	d.visited[key] = struct{}{}

	entries, err := os.ReadDir(path)
	if err != nil && len(entries) == 0 {
		d.warn("cannot opendir", path, err)
		return
	}
	for _, entry := range entries {
		d.add(joinPath(path, entry.Name()), d.opts.RecurseMore)
	}
	if err != nil {
		d.warn("stopping readdir", path, err)
	}
}

// joinPath keeps the caller's spelling of dir (no Clean), adding a separator
// only when dir does not already end with one.
func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

// SortNewestFirst orders paths by basename in descending byte order, so files
// named YYYYMMDD... come most recent first. Equal basenames keep their order.
func SortNewestFirst(paths []string) {
	slices.SortStableFunc(paths, func(a, b string) int {
		return cmp.Compare(filepath.Base(b), filepath.Base(a))
	})
}
