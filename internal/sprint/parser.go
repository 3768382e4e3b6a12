package sprint

import (
	"regexp"
	"strconv"
	"strings"
)

// Default label prefixes for parsed declarations.
const (
	DefaultGoalPrefix     = "cel"
	DefaultSideGoalPrefix = "extra"
)

// ParseResult holds the declarations extracted from one sprint description.
type ParseResult struct {
	Goals     []Declaration
	SideGoals []Declaration
}

var (
	numberedItemRe = regexp.MustCompile(`^\d+[.)\s]`)
	dashItemRe     = regexp.MustCompile(`^[-*]\s`)
	listMarkerRe   = regexp.MustCompile(`^[\d]+[.)\s]+|^[-*]\s+`)
	clientTagRe    = regexp.MustCompile(`\[([^\]]+)\]`)
	clientCleanRe  = regexp.MustCompile(`\s*\[[^\]]+\]\s*`)
)

// Section-header phrases, matched case-insensitively as substrings.
// Both the Polish and English spellings used in our sprint descriptions.
var (
	goalHeaderPhrases     = []string{"cele główne", "cele sprintu", "sprint goals"}
	sideGoalHeaderPhrases = []string{"cele poboczne", "side goals", "poboczn"}

	// headerModePhrases decide whether a description uses explicit headers
	// at all. Deliberately narrower than the per-line side-goal match: a
	// bare "poboczn" fragment does not switch the whole description into
	// header mode.
	headerModePhrases = []string{"cele główne", "cele sprintu", "sprint goals", "cele poboczne", "side goals"}
)

// ParseDescription extracts goals and side goals from a free-text sprint
// description. Two formats are supported and auto-detected per call:
//
// With explicit headers, list items belong to the most recently seen
// section header:
//
//	## Cele główne
//	1. [KLIENT] Opis celu
//
//	## Cele poboczne
//	- [KLIENT] Opis celu pobocznego
//
// Without headers, the list marker decides: numbered items (1. 2) 3 )
// are goals, dash/asterisk items are side goals.
//
// A bracketed client tag may appear anywhere in an item line. Lines that
// are neither list items nor recognized headers are dropped without
// affecting the ID counters; this silent drop is intentional and matches
// the long-standing behavior the review data depends on.
//
// Each declaration gets a 1-based sequential ID within its section and a
// tag of prefix+ID (cel1, extra2, ...). Pass empty prefixes to use the
// defaults.
func ParseDescription(description, goalPrefix, sideGoalPrefix string) ParseResult {
	if goalPrefix == "" {
		goalPrefix = DefaultGoalPrefix
	}
	if sideGoalPrefix == "" {
		sideGoalPrefix = DefaultSideGoalPrefix
	}

	result := ParseResult{}
	if strings.TrimSpace(description) == "" {
		return result
	}

	lines := strings.Split(strings.TrimSpace(description), "\n")

	hasHeaders := false
	for _, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		if containsAny(lower, headerModePhrases) {
			hasHeaders = true
			break
		}
	}

	const (
		sectionNone = iota
		sectionGoals
		sectionSideGoals
	)

	current := sectionNone
	goalCount := 0
	sideGoalCount := 0

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case containsAny(lower, goalHeaderPhrases):
			current = sectionGoals
			continue
		case containsAny(lower, sideGoalHeaderPhrases):
			current = sectionSideGoals
			continue
		case strings.HasPrefix(line, "##") || strings.HasPrefix(line, "**"):
			// Unrecognized header resets the section.
			current = sectionNone
			continue
		}

		isNumbered := numberedItemRe.MatchString(line)
		isDash := dashItemRe.MatchString(line)
		if !isNumbered && !isDash {
			continue
		}

		target := sectionNone
		if hasHeaders {
			target = current
		} else if isNumbered {
			target = sectionGoals
		} else {
			target = sectionSideGoals
		}
		if target == sectionNone {
			continue
		}

		cleaned := listMarkerRe.ReplaceAllString(line, "")
		if cleaned == "" {
			continue
		}

		client, title := parseClient(cleaned)

		switch target {
		case sectionGoals:
			goalCount++
			result.Goals = append(result.Goals, Declaration{
				ID:     goalCount,
				Title:  title,
				Client: client,
				Tag:    goalPrefix + strconv.Itoa(goalCount),
			})
		case sectionSideGoals:
			sideGoalCount++
			result.SideGoals = append(result.SideGoals, Declaration{
				ID:     sideGoalCount,
				Title:  title,
				Client: client,
				Tag:    sideGoalPrefix + strconv.Itoa(sideGoalCount),
			})
		}
	}

	return result
}

// parseClient extracts a bracketed client tag from anywhere in the text.
// "[KLIENT] opis", "opis [KLIENT]", and "opis [KLIENT] celu" all yield
// client "KLIENT" with the bracketed part removed from the title.
func parseClient(text string) (client *string, title string) {
	text = strings.TrimSpace(text)
	match := clientTagRe.FindStringSubmatch(text)
	if match == nil {
		return nil, text
	}

	name := strings.TrimSpace(match[1])
	cleaned := strings.TrimSpace(clientCleanRe.ReplaceAllString(text, " "))
	return &name, cleaned
}

// ExtractNextSprintPlans pulls the "next sprint" section out of a sprint
// description: everything after a header mentioning the next sprint or
// plans, up to the next unrelated header.
func ExtractNextSprintPlans(description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}

	inSection := false
	var plans []string

	for _, raw := range strings.Split(strings.TrimSpace(description), "\n") {
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)

		if containsAny(lower, []string{"następny sprint", "next sprint", "plany"}) {
			inSection = true
			continue
		}

		if inSection && (strings.HasPrefix(line, "##") || strings.HasPrefix(line, "**")) {
			if !containsAny(lower, []string{"następny", "next", "plany"}) {
				break
			}
		}

		if inSection {
			plans = append(plans, raw)
		}
	}

	return strings.TrimSpace(strings.Join(plans, "\n"))
}

func containsAny(s string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}
