package search

import (
	"context"
	"strings"

	"github.com/robert-malhotra/go-stac-search/pkg/stac"
)

// flatten walks the link graph rooted at the given links and returns every
// Feature reachable through child/item edges, in discovery order.
//
// The first round drops root/self/parent backlinks; subsequent rounds only
// follow child and item links collected from resolved container nodes.
// Leaves reached through multiple paths appear multiple times - the result
// is the raw candidate superset, not a deduplicated set. Containers are
// tracked in a visited set so cyclic catalogs terminate instead of
// recursing forever, and traversal depth is bounded by the engine's
// maxDepth.
func (e *Engine) flatten(ctx context.Context, links []*stac.Link) ([]*stac.Item, error) {
	var items []*stac.Item

	frontier := make([]*stac.Link, 0, len(links))
	for _, link := range links {
		if !link.IsBacklink() {
			frontier = append(frontier, link)
		}
	}

	visited := make(map[string]bool)
	for depth := 0; len(frontier) > 0; depth++ {
		if depth >= e.maxDepth {
			e.logger.Warn("catalog traversal depth bound reached", "depth", depth, "pending", len(frontier))
			break
		}

		var next []*stac.Link
		for _, link := range frontier {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			path := e.relativePath(link.Href)
			resolved, err := e.ResolvePath(ctx, path)
			if err != nil {
				return nil, err
			}
			if resolved.IsAsset() {
				// Raw assets are not catalog nodes; nothing to descend.
				continue
			}

			if item, ok := resolved.Node.(*stac.Item); ok {
				items = append(items, item)
				continue
			}

			// Containers are expanded once; revisiting one means the
			// catalog has a cycle.
			if visited[path] {
				e.logger.Debug("skipping already expanded catalog node", "path", path)
				continue
			}
			visited[path] = true

			for _, child := range resolved.Node.NodeLinks() {
				if child.IsTraversal() {
					next = append(next, child)
				}
			}
		}
		frontier = next
	}

	return items, nil
}

// relativePath converts a link href into a catalog path relative to the
// service /stac base.
func (e *Engine) relativePath(href string) string {
	if rest, ok := strings.CutPrefix(href, e.baseURL); ok {
		return strings.Trim(rest, "/")
	}
	// Foreign absolute hrefs still resolve when they carry a /stac/ segment.
	if idx := strings.Index(href, "/stac/"); idx >= 0 {
		return strings.Trim(href[idx+len("/stac/"):], "/")
	}
	return strings.Trim(href, "/")
}
