package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconWarning   = "" // nf-fa-warning
	IconChevron   = "" // nf-fa-chevron_right
	IconLightbulb = "" // nf-fa-lightbulb_o
	IconShield    = "" // nf-fa-shield
)

// Scanner glyphs drawn on the sweep row.
const (
	ScannerHead  = "┃"
	ScannerTrail = "░"
	TrailWidth   = 6
)
