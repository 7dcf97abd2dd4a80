package inference

import (
	"sort"

	"github.com/Harshitk-cp/bayes/internal/domain"
)

// Ancestors returns every variable reachable from v by following parent
// edges. v itself is excluded.
func Ancestors(net domain.Network, v string) []string {
	return reach(v, net.Parents)
}

// Descendants returns every variable reachable from v by following child
// edges. v itself is excluded.
func Descendants(net domain.Network, v string) []string {
	return reach(v, net.Children)
}

// NonDescendants returns all variables except v and its descendants.
func NonDescendants(net domain.Network, v string) []string {
	excluded := toSet(Descendants(net, v))
	excluded[v] = true

	var out []string
	for _, name := range net.Variables() {
		if !excluded[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// reach walks a worklist from the neighbours of start. The visited set keeps
// each node queued at most once.
func reach(start string, next func(string) []string) []string {
	visited := map[string]bool{start: true}
	queue := make([]string, 0)
	for _, n := range next(start) {
		if !visited[n] {
			visited[n] = true
			queue = append(queue, n)
		}
	}

	for i := 0; i < len(queue); i++ {
		for _, n := range next(queue[i]) {
			if visited[n] {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}

	sort.Strings(queue)
	return queue
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
