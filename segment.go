package main

const (
	SegmentChampions          = "Champions"
	SegmentLoyal              = "Loyal"
	SegmentPotentialLoyalists = "Potential Loyalists"
	SegmentAtRisk             = "At Risk"
	SegmentLost               = "Lost"
	SegmentOthers             = "Others"
)

// SegmentNames lists every segment label in display priority order.
var SegmentNames = []string{
	SegmentChampions,
	SegmentLoyal,
	SegmentPotentialLoyalists,
	SegmentAtRisk,
	SegmentLost,
	SegmentOthers,
}

// SegmentColors drives chart and dashboard coloring.
var SegmentColors = map[string]string{
	SegmentChampions:          "#2ecc71",
	SegmentLoyal:              "#3498db",
	SegmentPotentialLoyalists: "#f39c12",
	SegmentAtRisk:             "#e67e22",
	SegmentLost:               "#e74c3c",
	SegmentOthers:             "#95a5a6",
}

// SegmentFor maps a score triple to its marketing segment. Rules are checked
// in priority order, first match wins; the final branch makes the function
// total over every possible triple.
func SegmentFor(r, f, m int) string {
	switch {
	case r == 5 && f == 5 && m == 5:
		return SegmentChampions
	case r >= 4 && f >= 4 && m >= 4:
		return SegmentLoyal
	case r == 5 && f <= 2 && m >= 3:
		return SegmentPotentialLoyalists
	case r <= 2 && f >= 4 && m >= 4:
		return SegmentAtRisk
	case r == 1 && f == 1:
		return SegmentLost
	default:
		return SegmentOthers
	}
}
