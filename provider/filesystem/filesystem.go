// Package filesystem implements a catalog provider backed by a directory
// tree: directories become Catalog documents with child links, JSON files
// are served as structured STAC documents, and anything else is passed
// through as a raw asset.
package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/robert-malhotra/go-stac-search/provider"
	"github.com/robert-malhotra/go-stac-search/pkg/stac"
)

// FileSystem serves STAC documents from a local directory tree.
type FileSystem struct {
	root string
}

// New constructs a filesystem provider rooted at settings.Dir.
func New(settings provider.Settings) (provider.Provider, error) {
	if settings.Dir == "" {
		return nil, fmt.Errorf("filesystem provider requires a dir setting")
	}
	info, err := os.Stat(settings.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", provider.ErrConnection, settings.Dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("filesystem provider root %s is not a directory", settings.Dir)
	}
	return &FileSystem{root: settings.Dir}, nil
}

// GetDataPath implements provider.Provider.
func (p *FileSystem) GetDataPath(ctx context.Context, baseURL, path, relativePath string) (provider.Result, error) {
	if err := ctx.Err(); err != nil {
		return provider.Result{}, err
	}

	// Clean against path traversal before joining under the root.
	clean := filepath.Clean("/" + strings.TrimPrefix(relativePath, "/"))
	target := filepath.Join(p.root, clean)

	info, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return provider.Result{}, fmt.Errorf("%w: %s", provider.ErrNotFound, relativePath)
	}
	if err != nil {
		return provider.Result{}, &provider.QueryError{Err: err}
	}

	if info.IsDir() {
		return p.describeDir(baseURL, path, target)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return provider.Result{}, &provider.QueryError{Err: err}
	}

	ext := strings.ToLower(filepath.Ext(target))
	if ext == ".json" || ext == ".geojson" {
		return provider.StructuredResult(data), nil
	}

	mediaType := mime.TypeByExtension(ext)
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}
	return provider.AssetResult(data, mediaType), nil
}

// describeDir renders a directory as a Catalog document whose links point
// at the directory's children under the public base URL.
func (p *FileSystem) describeDir(baseURL, path, target string) (provider.Result, error) {
	entries, err := os.ReadDir(target)
	if err != nil {
		return provider.Result{}, &provider.QueryError{Err: err}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	doc := map[string]any{
		"type":  stac.CatalogType,
		"id":    filepath.Base(target),
		"links": dirLinks(baseURL, path, entries),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return provider.Result{}, &provider.QueryError{Err: err}
	}
	return provider.StructuredResult(data), nil
}

func dirLinks(baseURL, path string, entries []os.DirEntry) []map[string]any {
	links := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		href := joinHref(baseURL, path, entry.Name())
		switch {
		case entry.IsDir():
			links = append(links, map[string]any{
				"rel":  stac.RelChild,
				"href": href,
				"type": "application/json",
			})
		case isJSONName(entry.Name()):
			links = append(links, map[string]any{
				"rel":  stac.RelItem,
				"href": href,
				"type": "application/geo+json",
			})
		default:
			links = append(links, map[string]any{
				"rel":  "enclosure",
				"href": href,
			})
		}
	}
	return links
}

func isJSONName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".json" || ext == ".geojson"
}

func joinHref(baseURL, path, name string) string {
	base := strings.TrimSuffix(baseURL, "/")
	path = strings.Trim(path, "/")
	if path == "" {
		return base + "/" + name
	}
	return base + "/" + path + "/" + name
}
