package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smartject/smartject/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ProposalStatusStyle returns the style for a proposal status badge.
func ProposalStatusStyle(st domain.ProposalStatus) lipgloss.Style {
	switch st {
	case domain.ProposalAccepted:
		return StyleGreen
	case domain.ProposalSubmitted:
		return StyleBlue
	case domain.ProposalRejected, domain.ProposalWithdrawn:
		return StyleRed
	default:
		return StyleDim
	}
}

// MilestoneStatusStyle returns the style for a milestone status badge.
func MilestoneStatusStyle(st domain.MilestoneStatus) lipgloss.Style {
	switch st {
	case domain.MilestoneApproved:
		return StyleGreen
	case domain.MilestoneInReview:
		return StylePurple
	case domain.MilestoneInProgress:
		return StyleYellow
	default:
		return StyleDim
	}
}

// ContractStatusStyle returns the style for a contract status badge.
func ContractStatusStyle(st domain.ContractStatus) lipgloss.Style {
	switch st {
	case domain.ContractActive:
		return StyleGreen
	case domain.ContractPendingSignatures:
		return StyleYellow
	case domain.ContractCancelled:
		return StyleRed
	default:
		return StyleBlue
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
