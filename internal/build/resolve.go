package build

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gerunddev/vimwiki/ast"
	"github.com/gerunddev/vimwiki/render"
)

// pageIndex holds every page of the wiki by slash separated path without
// extension, and every directory containing one
type pageIndex struct {
	pages map[string]bool
	dirs  map[string]bool
}

func newPageIndex(files []string, ext string) pageIndex {
	idx := pageIndex{pages: map[string]bool{}, dirs: map[string]bool{".": true}}
	for _, f := range files {
		p := strings.TrimSuffix(filepath.ToSlash(f), ext)
		idx.pages[p] = true
		for d := path.Dir(p); d != "." && !idx.dirs[d]; d = path.Dir(d) {
			idx.dirs[d] = true
		}
	}
	return idx
}

// existsFrom reports link targets as they are seen from a page in dir.
// Links into other wikis are assumed to exist.
func (idx pageIndex) existsFrom(dir, diaryDir string) func(ast.Link) bool {
	if diaryDir == "" {
		diaryDir = "diary"
	}
	return func(l ast.Link) bool {
		var target string
		switch l.Kind {
		case ast.WikiLink:
			if render.IsURL(l.Target) {
				return true
			}
			if strings.HasPrefix(l.Target, "/") {
				target = path.Clean(strings.TrimPrefix(l.Target, "/"))
			} else {
				target = path.Join(dir, l.Target)
			}
		case ast.DiaryLink:
			target = path.Join(diaryDir, l.Target)
		default:
			return true
		}

		if strings.HasSuffix(l.Target, "/") {
			return idx.dirs[target]
		}
		return idx.pages[target]
	}
}

// ExistsOnDisk reports wiki link targets as seen from a single page in
// pageDir, checking the file system instead of an index. Root relative,
// diary and interwiki links are assumed to exist.
func ExistsOnDisk(pageDir, ext string) func(ast.Link) bool {
	return func(l ast.Link) bool {
		if l.Kind != ast.WikiLink || l.Target == "" || render.IsURL(l.Target) || strings.HasPrefix(l.Target, "/") {
			return true
		}
		target := filepath.Join(pageDir, filepath.FromSlash(l.Target))
		if strings.HasSuffix(l.Target, "/") {
			info, err := os.Stat(target)
			return err == nil && info.IsDir()
		}
		_, err := os.Stat(target + ext)
		return err == nil
	}
}
