package dispatchers

import (
	"sort"
	"strings"
)

// levenshtein calculates the edit distance between two strings.
func levenshtein(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(a)][len(b)]
}

type candidate struct {
	name     string
	distance int
}

// SimilarChildren returns up to maxResults child names of node within
// a small edit distance of input, closest first.
func SimilarChildren(input string, node *Node, maxResults int) []string {
	if node == nil {
		return nil
	}

	const maxDistance = 3

	var candidates []candidate
	for _, name := range node.ChildNames() {
		dist := levenshtein(input, name)
		if dist > 0 && dist <= maxDistance {
			candidates = append(candidates, candidate{name: name, distance: dist})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	result := make([]string, len(candidates))
	for i, c := range candidates {
		result[i] = c.name
	}
	return result
}

// CommandPaths recursively collects every command path below node,
// one space-joined string per command, in declaration order.
func CommandPaths(node *Node, prefix string) []string {
	if node == nil {
		return nil
	}

	var paths []string
	for _, name := range node.ChildNames() {
		child, _ := node.Child(name)
		full := name
		if prefix != "" {
			full = prefix + " " + name
		}
		paths = append(paths, full)
		paths = append(paths, CommandPaths(child, full)...)
	}
	return paths
}
