package lantern

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/phanxgames/lantern/geom"
)

// debugStats holds per-draw timing and command metrics.
// Only populated in debug mode.
type debugStats struct {
	traverseTime  time.Duration
	sortTime      time.Duration
	submitTime    time.Duration
	commandCount  int
	drawableCount int
}

// debugOutput is where debug diagnostics go.
var debugOutput io.Writer = os.Stderr

// debugLog prints timing and command stats of one camera draw.
func debugLog(stats debugStats) {
	if !globalDebug {
		return
	}
	total := stats.traverseTime + stats.sortTime + stats.submitTime
	_, _ = fmt.Fprintf(debugOutput,
		"[lantern] traverse: %v | sort: %v | submit: %v | total: %v\n",
		stats.traverseTime, stats.sortTime, stats.submitTime, total)
	_, _ = fmt.Fprintf(debugOutput,
		"[lantern] commands: %d | drawables: %d\n",
		stats.commandCount, stats.drawableCount)
}

// debugCheckDisposed panics with a descriptive message when a disposed object
// is used in a tree operation. Only called in debug mode.
func debugCheckDisposed(o *Object, op string) {
	if o.disposed {
		panic(fmt.Sprintf("lantern debug: %s on disposed object %q", op, o.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(o *Object) {
	depth := 0
	for p := o; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(debugOutput, "[lantern] warning: tree depth %d exceeds %d (object %q)\n",
			depth, debugMaxTreeDepth, o.Name)
	}
}

// DebugMatrix prints m row by row, prefixed by label. It prints
// nothing unless debug mode is enabled.
func DebugMatrix(label string, m geom.Mat4) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(debugOutput, "[lantern] %s %s\n", label, m)
}
