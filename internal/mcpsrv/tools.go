// Package mcpsrv exposes the lattice as read-only MCP tools.
package mcpsrv

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"taglattice/internal/db"
)

// RegisterReadTools adds all read-only lattice tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store *db.DB) {
	s.AddTool(searchTool(), searchHandler(store))
	s.AddTool(typeaheadTool(), typeaheadHandler(store))
	s.AddTool(nodeTool(), nodeHandler(store))
	s.AddTool(childrenTool(), childrenHandler(store))
	s.AddTool(parentsTool(), parentsHandler(store))
	s.AddTool(subtreeTool(), subtreeHandler(store))
	s.AddTool(breadcrumbTool(), breadcrumbHandler(store))
	s.AddTool(relatedTool(), relatedHandler(store))
	s.AddTool(randomTagsTool(), randomTagsHandler(store))
	s.AddTool(statsTool(), statsHandler(store))
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search tags and categories by name. Exact matches rank above prefix matches, which rank above full-text matches."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of hits (default 20)"),
		),
	)
}

func searchHandler(store *db.DB) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}
		limit := req.GetInt("limit", 20)

		hits, err := store.Search(query, limit)
		if err != nil {
			return toolError(err)
		}
		if len(hits) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, h := range hits {
			fmt.Fprintf(&sb, "%s  %s  score=%.0f", h.Slug, h.Text, h.Score)
			if h.BestPath != "" {
				fmt.Fprintf(&sb, "  (%s)", h.BestPath)
			}
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- typeahead ---

func typeaheadTool() mcp.Tool {
	return mcp.NewTool("typeahead",
		mcp.WithDescription("Complete a partial tag name. Returns nodes whose slug starts with the given prefix."),
		mcp.WithString("prefix",
			mcp.Description("Partial name to complete"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of completions (default 10)"),
		),
	)
}

func typeaheadHandler(store *db.DB) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		prefix := req.GetString("prefix", "")
		if prefix == "" {
			return toolError(fmt.Errorf("prefix is required"))
		}
		limit := req.GetInt("limit", 10)

		nodes, err := store.Typeahead(prefix, limit)
		if err != nil {
			return toolError(err)
		}
		return formatNodes(nodes)
	}
}

// --- node ---

func nodeTool() mcp.Tool {
	return mcp.NewTool("node",
		mcp.WithDescription("Show one node: its slug, display text, kind, aliases, and every path from a root."),
		mcp.WithString("slug",
			mcp.Description("Node slug (e.g. katana)"),
			mcp.Required(),
		),
	)
}

func nodeHandler(store *db.DB) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		node, err := requireNode(store, req)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		kind := "category"
		if node.IsTag {
			kind = "tag"
		}
		fmt.Fprintf(&sb, "%s  %s  [%s]\n", node.Slug, node.Text, kind)

		aliases, err := store.AliasesForNode(node.ID)
		if err != nil {
			return toolError(err)
		}
		for _, a := range aliases {
			fmt.Fprintf(&sb, "alias: %s\n", a.Text)
		}

		paths, err := store.GetAllPaths(node.ID)
		if err != nil {
			return toolError(err)
		}
		for _, p := range paths {
			fmt.Fprintf(&sb, "path: %s\n", p)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- children ---

func childrenTool() mcp.Tool {
	return mcp.NewTool("children",
		mcp.WithDescription("List the direct children of a node, or the root categories when no slug is given."),
		mcp.WithString("slug",
			mcp.Description("Parent slug. Omit to list roots."),
		),
	)
}

func childrenHandler(store *db.DB) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug := req.GetString("slug", "")
		if slug == "" {
			roots, err := store.GetRoots(-1)
			if err != nil {
				return toolError(err)
			}
			return formatNodes(roots)
		}

		node, err := requireNode(store, req)
		if err != nil {
			return toolError(err)
		}
		children, err := store.GetChildren(node.ID)
		if err != nil {
			return toolError(err)
		}
		return formatNodes(children)
	}
}

// --- parents ---

func parentsTool() mcp.Tool {
	return mcp.NewTool("parents",
		mcp.WithDescription("List the direct parents of a node."),
		mcp.WithString("slug",
			mcp.Description("Child slug"),
			mcp.Required(),
		),
	)
}

func parentsHandler(store *db.DB) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		node, err := requireNode(store, req)
		if err != nil {
			return toolError(err)
		}
		parents, err := store.GetParents(node.ID)
		if err != nil {
			return toolError(err)
		}
		return formatNodes(parents)
	}
}

// --- subtree ---

func subtreeTool() mcp.Tool {
	return mcp.NewTool("subtree",
		mcp.WithDescription("List every descendant of a node, deduplicated and sorted by name."),
		mcp.WithString("slug",
			mcp.Description("Ancestor slug"),
			mcp.Required(),
		),
		mcp.WithNumber("depth",
			mcp.Description("How many levels down to walk (default 50)"),
		),
	)
}

func subtreeHandler(store *db.DB) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		node, err := requireNode(store, req)
		if err != nil {
			return toolError(err)
		}
		depth := req.GetInt("depth", 0)

		descendants, err := store.GetSubtree(node.ID, depth)
		if err != nil {
			return toolError(err)
		}
		return formatNodes(descendants)
	}
}

// --- breadcrumb ---

func breadcrumbTool() mcp.Tool {
	return mcp.NewTool("breadcrumb",
		mcp.WithDescription("Show the ancestry chain of a node from a root down to the node itself."),
		mcp.WithString("slug",
			mcp.Description("Node slug"),
			mcp.Required(),
		),
	)
}

func breadcrumbHandler(store *db.DB) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		node, err := requireNode(store, req)
		if err != nil {
			return toolError(err)
		}
		crumb, err := store.GetBreadcrumb(node.ID)
		if err != nil {
			return toolError(err)
		}

		parts := make([]string, len(crumb))
		for i, n := range crumb {
			parts[i] = n.Text
		}
		return mcp.NewToolResultText(strings.Join(parts, " > ")), nil
	}
}

// --- related ---

func relatedTool() mcp.Tool {
	return mcp.NewTool("related",
		mcp.WithDescription("List nodes near a node in the lattice: its siblings and close cousins."),
		mcp.WithString("slug",
			mcp.Description("Node slug"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 20)"),
		),
	)
}

func relatedHandler(store *db.DB) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		node, err := requireNode(store, req)
		if err != nil {
			return toolError(err)
		}
		limit := req.GetInt("limit", 20)

		related, err := store.GetRelatedSimple(node.ID, limit)
		if err != nil {
			return toolError(err)
		}
		return formatNodes(related)
	}
}

// --- random_tags ---

func randomTagsTool() mcp.Tool {
	return mcp.NewTool("random_tags",
		mcp.WithDescription("Return a random sample of tags, useful for discovery."),
		mcp.WithNumber("count",
			mcp.Description("How many tags to return (default 10)"),
		),
	)
}

func randomTagsHandler(store *db.DB) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		count := req.GetInt("count", 10)
		tags, err := store.GetRandomTags(count)
		if err != nil {
			return toolError(err)
		}
		return formatNodes(tags)
	}
}

// --- stats ---

func statsTool() mcp.Tool {
	return mcp.NewTool("stats",
		mcp.WithDescription("Summarize the lattice: node, edge, alias, and path counts."),
	)
}

func statsHandler(store *db.DB) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := store.GetStats()
		if err != nil {
			return toolError(err)
		}
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// --- helpers ---

func requireNode(store *db.DB, req mcp.CallToolRequest) (*db.Node, error) {
	slug := req.GetString("slug", "")
	if slug == "" {
		return nil, fmt.Errorf("slug is required")
	}
	node, err := store.GetNodeBySlug(slug)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("no node with slug %q", slug)
	}
	return node, nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatNodes(nodes []db.Node) (*mcp.CallToolResult, error) {
	if len(nodes) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, n := range nodes {
		marker := ""
		if n.IsTag {
			marker = "  [tag]"
		}
		fmt.Fprintf(&sb, "%s  %s%s\n", n.Slug, n.Text, marker)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
