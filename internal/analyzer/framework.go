package analyzer

import (
	"path/filepath"
	"strings"

	"github.com/symscope/symscope/internal/model"
)

// frameworkMarkers maps import-path prefixes to framework names, per
// language. First match wins.
var frameworkMarkers = map[string][]struct {
	prefix    string
	framework string
}{
	"python": {
		{"django", "django"},
		{"flask", "flask"},
		{"fastapi", "fastapi"},
	},
	"php": {
		{"Illuminate\\", "laravel"},
		{"Symfony\\", "symfony"},
	},
	"java": {
		{"org.springframework", "spring"},
		{"jakarta.ws.rs", "jaxrs"},
		{"javax.ws.rs", "jaxrs"},
	},
}

// DetectFramework inspects a file's imports for well-known web
// framework packages. Returns the framework name or empty.
func DetectFramework(result *model.ParseResult) string {
	markers := frameworkMarkers[result.Language]
	for _, imp := range result.Imports {
		for _, m := range markers {
			if strings.HasPrefix(imp.Module, m.prefix) {
				return m.framework
			}
		}
	}
	return ""
}

// DetectFileRole classifies a file as "test" or "source" from its path.
func DetectFileRole(path string) string {
	base := strings.ToLower(filepath.Base(path))
	dir := filepath.ToSlash(strings.ToLower(filepath.Dir(path)))
	switch {
	case strings.HasPrefix(base, "test_"),
		strings.HasSuffix(base, "_test.py"),
		strings.HasSuffix(base, "test.php"),
		strings.HasSuffix(base, "test.java"):
		return "test"
	case strings.Contains(dir+"/", "/tests/"), strings.Contains(dir+"/", "/test/"):
		return "test"
	}
	return "source"
}
