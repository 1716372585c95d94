package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// DefaultWidth is the number of columns between the brackets
const DefaultWidth = 70

// Bar draws a single-line text progress bar, redrawing in place with a carriage return:
//
//	[=================>                    ] 45%
type Bar struct {
	mu    sync.Mutex
	out   io.Writer
	width int
	last  string
}

// NewBar creates a progress bar writing to out
func NewBar(out io.Writer) *Bar {
	return &Bar{out: out, width: DefaultWidth}
}

// Render returns the bar text for a fraction in [0, 1]; values outside are clamped
func Render(fraction float64, width int) string {
	fraction = max(0, min(1, fraction))
	filled := int(fraction * float64(width))

	var sb strings.Builder
	sb.Grow(width + 8)
	sb.WriteByte('[')
	for i := 0; i < width; i++ {
		switch {
		case i < filled:
			sb.WriteByte('=')
		case i == filled:
			sb.WriteByte('>')
		default:
			sb.WriteByte(' ')
		}
	}
	fmt.Fprintf(&sb, "] %d%%", int(fraction*100.0))
	return sb.String()
}

// Update redraws the bar. Repeated identical frames are skipped.
// Safe to call from multiple goroutines.
func (b *Bar) Update(fraction float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	line := Render(fraction, b.width)
	if line == b.last {
		return
	}
	b.last = line
	fmt.Fprintf(b.out, "%s\r", line)
}

// Finish moves the cursor past the bar
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintln(b.out)
}
