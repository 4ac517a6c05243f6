package renderer

import "fmt"

// Progress is current/total clamped to [0,1]. No steps means no progress.
func Progress(current, total int) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(current) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// ProgressLabel formats progress as "done/total".
func ProgressLabel(current, total int) string {
	done := min(max(current, 0), max(total, 0))
	return fmt.Sprintf("%d/%d", done, total)
}
