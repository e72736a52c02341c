package terminal

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"

	checkMark = "✅"
	crossMark = "❌"
)

func (p *Player) colorize(s, color string) string {
	if !p.color || color == "" {
		return s
	}
	return color + s + colorReset
}
