package compat

import (
	"regexp"
	"sort"
	"strings"

	"evalgo.org/vcfcompat/models"
)

var (
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	frequency     = regexp.MustCompile(`@.*$`)
	xeonTier      = regexp.MustCompile(`(Gold|Silver|Platinum)\s+(\d{2})`)
)

// CleanCPU strips "(R)"-style annotations and the "@ 2.10GHz" suffix from a
// raw CPU description and collapses whitespace.
func CleanCPU(raw string) string {
	cleaned := parenthetical.ReplaceAllString(raw, "")
	cleaned = frequency.ReplaceAllString(cleaned, "")
	return strings.Join(strings.Fields(cleaned), " ")
}

// ExtractFamily returns the CPU family label of a raw CPU description, e.g.
// "Intel Xeon Gold 62" for "Intel(R) Xeon(R) Gold 6230 CPU @ 2.10GHz", or
// "" when no Xeon tier is recognized.
func ExtractFamily(raw string) string {
	return familyOf(CleanCPU(raw))
}

func familyOf(cleaned string) string {
	m := xeonTier.FindStringSubmatch(cleaned)
	if m == nil {
		return ""
	}
	return "Intel Xeon " + m[1] + " " + m[2]
}

// GroupFamilies returns the CPU family labels observed in a model group.
//
// A group with a single distinct cleaned CPU always yields exactly one
// label, which is "" when the CPU is not recognized. A group with several
// distinct CPUs yields only the recognized labels.
func GroupFamilies(hosts []models.HostRecord) []string {
	distinct := map[string]struct{}{}
	for _, h := range hosts {
		distinct[CleanCPU(h.CPU)] = struct{}{}
	}
	if len(distinct) == 0 {
		return nil
	}

	cleaned := make([]string, 0, len(distinct))
	for c := range distinct {
		cleaned = append(cleaned, c)
	}
	sort.Strings(cleaned)

	if len(cleaned) == 1 {
		return []string{familyOf(cleaned[0])}
	}

	var families []string
	seen := map[string]bool{}
	for _, c := range cleaned {
		family := familyOf(c)
		if family == "" || seen[family] {
			continue
		}
		seen[family] = true
		families = append(families, family)
	}
	return families
}
