// Package status maps backend order and payment statuses onto display
// labels and tones for the templates.
package status

import "strings"

// Tone drives the badge styling in templates.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

// Badge is the view model for a status pill.
type Badge struct {
	Label string
	Tone  Tone
}

// Order maps a backend order status onto a badge. Unknown statuses
// render as-is with a neutral tone rather than breaking the page.
func Order(raw string) Badge {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PENDING":
		return Badge{Label: "Pending", Tone: ToneWarning}
	case "COMPLETED":
		return Badge{Label: "Completed", Tone: ToneSuccess}
	case "CANCELLED":
		return Badge{Label: "Cancelled", Tone: ToneDanger}
	case "":
		return Badge{Label: "Unknown", Tone: ToneNeutral}
	default:
		return Badge{Label: raw, Tone: ToneNeutral}
	}
}

// Payment maps a checkout payment status onto a badge.
func Payment(raw string) Badge {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SUCCESS", "PAID", "APPROVED":
		return Badge{Label: "Paid", Tone: ToneSuccess}
	case "FAILED", "DECLINED":
		return Badge{Label: "Failed", Tone: ToneDanger}
	case "":
		return Badge{Label: "Unknown", Tone: ToneNeutral}
	default:
		return Badge{Label: raw, Tone: ToneNeutral}
	}
}

// Stock maps a stock quantity onto a badge for product tables.
func Stock(quantity int) Badge {
	switch {
	case quantity <= 0:
		return Badge{Label: "Out of stock", Tone: ToneDanger}
	case quantity <= 5:
		return Badge{Label: "Low stock", Tone: ToneWarning}
	default:
		return Badge{Label: "In stock", Tone: ToneSuccess}
	}
}
