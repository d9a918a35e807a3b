package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/specgate/specgate/internal/domain"
)

var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	"vendor":       true,
	"dist":         true,
	"bin":          true,
}

var sourceExts = map[string]bool{
	".go": true,
	".py": true,
	".js": true,
	".ts": true,
}

// TreeScanner implements domain.SourceScanner by walking the generated
// project directory.
type TreeScanner struct{}

func New() *TreeScanner {
	return &TreeScanner{}
}

func (s *TreeScanner) Scan(rootPath string, excludePaths ...string) (*domain.SourceTree, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, err
	}

	extraSkip := make(map[string]bool, len(excludePaths))
	for _, p := range excludePaths {
		extraSkip[strings.TrimSuffix(p, "/")] = true
	}

	tree := &domain.SourceTree{RootPath: absPath}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] || extraSkip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, _ := filepath.Rel(absPath, path)
		relPath = filepath.ToSlash(relPath)
		tree.AllFiles = append(tree.AllFiles, relPath)

		if sourceExts[filepath.Ext(d.Name())] {
			tree.SourceFiles = append(tree.SourceFiles, relPath)
		}
		return nil
	})

	return tree, err
}

// LanguageOf maps a file path to the language label used by the parser
// and the fast checker.
func LanguageOf(path string) string {
	switch filepath.Ext(path) {
	case ".go":
		return "go"
	case ".py":
		return "python"
	case ".js":
		return "javascript"
	case ".ts":
		return "typescript"
	default:
		return ""
	}
}
