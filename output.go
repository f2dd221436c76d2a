package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

var separator = strings.Repeat("-", 60)

// printHeader announces what the run is about to do.
func printHeader(w io.Writer, root string, cfg Config) {
	fmt.Fprintf(w, "Replacing URLs in directory '%s'...\n", root)
	fmt.Fprintf(w, "From: %s\n", quoteList(cfg.Search))
	fmt.Fprintf(w, "To: '%s'\n", cfg.Replacement)
	fmt.Fprintf(w, "Ignoring directories: %s\n", quoteList(cfg.ExcludeDirs))
	fmt.Fprintln(w, separator)
}

// printModified reports one successfully rewritten file.
func printModified(w io.Writer, path string) {
	fmt.Fprintf(w, "  -> Saved changes to: %s\n", path)
}

// printTotals closes the run with the two counters.
func printTotals(w io.Writer, summary Summary) {
	fmt.Fprintln(w, separator)
	fmt.Fprint(w, formatTotals(summary))
}

// formatTotals is the summary block shared by the console, clipboard and PDF outputs.
func formatTotals(summary Summary) string {
	var builder strings.Builder
	builder.WriteString("Replacement complete!\n")
	builder.WriteString(fmt.Sprintf("Total files processed: %d\n", summary.Processed))
	builder.WriteString(fmt.Sprintf("Total files modified: %d\n", summary.Changed))
	if failed := summary.Failed(); len(failed) > 0 {
		builder.WriteString(fmt.Sprintf("Files with errors: %d\n", len(failed)))
	}
	return builder.String()
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("'%s'", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// Node represents an entry in the modified-files tree.
type Node struct {
	Name     string
	IsDir    bool
	Children []*Node
}

// buildTree constructs a tree of the given paths below rootPath, creating
// intermediate directory nodes as needed. Paths outside rootPath are ignored.
func buildTree(paths []string, rootPath string) *Node {
	cleanRootPath := filepath.Clean(rootPath)
	root := &Node{Name: filepath.Base(cleanRootPath), IsDir: true}
	dirs := map[string]*Node{"": root}

	for _, p := range paths {
		rel, err := filepath.Rel(cleanRootPath, filepath.Clean(p))
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")

		parent := root
		key := ""
		for _, dirName := range parts[:len(parts)-1] {
			key = key + "/" + dirName
			node, ok := dirs[key]
			if !ok {
				node = &Node{Name: dirName, IsDir: true}
				parent.Children = append(parent.Children, node)
				dirs[key] = node
			}
			parent = node
		}
		parent.Children = append(parent.Children, &Node{Name: parts[len(parts)-1]})
	}

	sortChildren(root)
	return root
}

// sortChildren recursively sorts the children of a node alphabetically.
func sortChildren(node *Node) {
	if !node.IsDir || len(node.Children) == 0 {
		return
	}
	sort.Slice(node.Children, func(i, j int) bool {
		return node.Children[i].Name < node.Children[j].Name
	})
	for _, child := range node.Children {
		sortChildren(child)
	}
}

// printTree generates the string representation of the tree.
func printTree(root *Node) string {
	var builder strings.Builder
	builder.WriteString(root.Name)
	builder.WriteString("\n")
	printNode(&builder, root.Children, "")
	return builder.String()
}

func printNode(builder *strings.Builder, children []*Node, prefix string) {
	for i, node := range children {
		connector := "├── "
		newPrefix := prefix + "│   "
		if i == len(children)-1 {
			connector = "└── "
			newPrefix = prefix + "    "
		}

		builder.WriteString(prefix)
		builder.WriteString(connector)
		builder.WriteString(node.Name)
		builder.WriteString("\n")

		if node.IsDir && len(node.Children) > 0 {
			printNode(builder, node.Children, newPrefix)
		}
	}
}
