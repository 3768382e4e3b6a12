package sprint

import "strings"

// normalizeTag strips hyphens, underscores, and whitespace and lowercases,
// so "cel-1", "cel_1", and "CEL 1" all compare equal to "cel1".
func normalizeTag(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch r {
		case '-', '_', ' ', '\t':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchTag matches a task's labels against a set of candidate goal tags.
// For each label, in the task's label order, an exact case-insensitive
// comparison is tried first, then a separator-insensitive one. The first
// label that matches any candidate wins; the returned tag is always one
// of the candidates. Returns false if no label matches.
func MatchTag(taskLabels []string, candidateTags []string) (string, bool) {
	for _, label := range taskLabels {
		for _, tag := range candidateTags {
			if strings.EqualFold(label, tag) {
				return tag, true
			}
		}
		normalized := normalizeTag(label)
		for _, tag := range candidateTags {
			if normalized == normalizeTag(tag) {
				return tag, true
			}
		}
	}
	return "", false
}
