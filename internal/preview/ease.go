package preview

import (
	"github.com/tanema/gween/ease"

	"github.com/roach88/basc/internal/timeline"
)

// Ease returns the easing function used to preview curve. The named CSS
// curves are approximated by polynomial eases; unknown curves are linear.
func Ease(curve timeline.Curve) ease.TweenFunc {
	switch curve {
	case timeline.Ease:
		return ease.OutCubic
	case timeline.EaseIn:
		return ease.InQuad
	case timeline.EaseOut:
		return ease.OutQuad
	case timeline.EaseInOut:
		return ease.InOutQuad
	default:
		return ease.Linear
	}
}
