package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderAllocation renders the budget allocation bar like [████░░░░]  45%.
// The bar turns green only when the schedule allocates exactly 100%; a
// partial schedule is yellow so an unfinished plan stands out.
func RenderAllocation(pct int, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 2 {
		width = 2
	}

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleYellow
	if pct == 100 {
		style = StyleGreen
	} else if pct == 0 {
		style = StyleDim
	}

	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}
