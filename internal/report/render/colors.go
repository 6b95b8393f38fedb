package render

import (
	"hash/fnv"
	"strings"
)

// palette is the fixed fallback color set for labels with no keyword match.
// Indexing is hash-derived so an unseen label always maps to the same color.
var palette = []string{
	"#4F46E5", // indigo
	"#0891B2", // cyan
	"#059669", // emerald
	"#D97706", // amber
	"#DC2626", // red
	"#7C3AED", // violet
	"#DB2777", // pink
	"#65A30D", // lime
}

type keywordColor struct {
	keyword string
	color   string
}

// keywordColors maps well-known status, priority, category and leave-type
// keywords to their conventional colors. Ordered so multi-keyword labels
// resolve the same way on every call.
var keywordColors = []keywordColor{
	{"approved", "#059669"},
	{"completed", "#059669"},
	{"present", "#059669"},
	{"unpaid", "#6B7280"},
	{"paid", "#059669"},
	{"pending", "#D97706"},
	{"progress", "#0891B2"},
	{"review", "#0891B2"},
	{"rejected", "#DC2626"},
	{"overdue", "#DC2626"},
	{"absent", "#DC2626"},
	{"cancelled", "#6B7280"},
	{"high", "#DC2626"},
	{"medium", "#D97706"},
	{"low", "#059669"},
	{"casual", "#4F46E5"},
	{"sick", "#DC2626"},
	{"earned", "#059669"},
	{"maternity", "#DB2777"},
	{"paternity", "#0891B2"},
	{"travel", "#0891B2"},
	{"food", "#D97706"},
	{"lodging", "#7C3AED"},
	{"fuel", "#65A30D"},
}

// colorFor assigns a display color to a category, status or leave-type
// label. The mapping is deterministic for any input, including labels never
// seen before.
func colorFor(label string) string {
	needle := strings.ToLower(strings.TrimSpace(label))
	for _, kc := range keywordColors {
		if strings.Contains(needle, kc.keyword) {
			return kc.color
		}
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(needle))
	return palette[h.Sum32()%uint32(len(palette))]
}
