package typeschema

import (
	"slices"

	"github.com/agnivade/levenshtein"
)

// knownTypes lists the `type` tags understood by derivation.
var knownTypes = []string{"array", "boolean", "integer", "null", "number", "object", "string"}

// closestStrings returns the candidates at the smallest edit distance from a,
// provided that distance is at most minDistance.
func closestStrings(minDistance int, a string, candidates []string) []string {
	closest := []string{}
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(a, c)
		switch {
		case dist < minDistance:
			closest = []string{c}
			minDistance = dist
		case dist == minDistance:
			closest = append(closest, c)
		}
	}
	slices.Sort(closest)
	return closest
}
