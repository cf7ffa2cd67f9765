package keyword

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Complete returns up to limit entries of candidates that contain the characters of
// prefix in order (case-insensitive), closest first. Ties keep candidate order.
func Complete(prefix string, candidates []string, limit int) []string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || limit <= 0 {
		return nil
	}

	ranks := fuzzy.RankFindFold(prefix, candidates)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]string, 0, min(limit, len(ranks)))
	seen := make(map[string]struct{}, len(ranks))
	for _, r := range ranks {
		if _, dup := seen[r.Target]; dup {
			continue
		}
		seen[r.Target] = struct{}{}
		out = append(out, r.Target)
		if len(out) == limit {
			break
		}
	}
	return out
}
