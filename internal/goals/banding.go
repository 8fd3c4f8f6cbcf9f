package goals

// Completion bands are a shared contract: every component rendering a
// rate must use the same thresholds.

// CompletionColor maps a completion rate (0-100) to a color band.
func CompletionColor(rate int) string {
	switch {
	case rate >= 100:
		return "perfect"
	case rate >= 75:
		return "good"
	case rate >= 50:
		return "ok"
	case rate >= 25:
		return "low"
	case rate > 0:
		return "poor"
	default:
		return "none"
	}
}

// CompletionStatus maps a completion rate (0-100) to a short status token.
func CompletionStatus(rate int) string {
	switch {
	case rate >= 100:
		return "🎉"
	case rate >= 75:
		return "😄"
	case rate >= 50:
		return "🙂"
	case rate >= 25:
		return "😐"
	case rate > 0:
		return "😕"
	default:
		return "💤"
	}
}
