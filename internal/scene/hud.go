package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"rainroad/internal/weather"
)

// Title renders the one-line HUD shown in the window title.
func Title(s *weather.System, c *Cruise) string {
	var b strings.Builder
	b.WriteString("rainroad | ")
	if tr, ok := s.Transition(); ok {
		fmt.Fprintf(&b, "%s -> %s %d%%", tr.From, tr.To, int(math.Floor(tr.Progress*100)))
	} else {
		b.WriteString(s.Current().String())
	}
	w := s.Wind()
	fmt.Fprintf(&b, " | wind %.0f%%", w.Intensity*100)
	if c != nil {
		fmt.Fprintf(&b, " | %.0f km/h | %s", c.Speed, humanize.SIWithDigits(c.Distance, 1, "m"))
	}
	fmt.Fprintf(&b, " | %ds", int(s.Elapsed()))
	return b.String()
}
