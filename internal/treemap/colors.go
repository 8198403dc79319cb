package treemap

// Color buckets a P&L percentage into an 8-band diverging green/red scale.
// Coloring is independent of the layout geometry.
func Color(plPct float64) string {
	switch {
	case plPct >= 50:
		return "#15803d"
	case plPct >= 20:
		return "#16a34a"
	case plPct >= 5:
		return "#22c55e"
	case plPct >= 0:
		return "#86efac"
	case plPct >= -5:
		return "#fca5a5"
	case plPct >= -20:
		return "#f87171"
	case plPct >= -50:
		return "#ef4444"
	default:
		return "#b91c1c"
	}
}
