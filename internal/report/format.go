package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/genricoloni/mpris-remote/internal/domain"
)

// detailKeys are printed under the verbose status header, in this order
var detailKeys = []string{"artist", "title", "album"}

// Verbose holds the five reads that make up a verbose status report
type Verbose struct {
	Status     domain.Status
	Length     int
	Current    int
	PositionMS int64
	Metadata   domain.Metadata
}

// Bool renders a flag as "true" or "false" followed by a newline
func Bool(b bool) string {
	return strconv.FormatBool(b) + "\n"
}

// Int renders n followed by a newline
func Int(n int64) string {
	return strconv.FormatInt(n, 10) + "\n"
}

// Line renders s followed by a newline
func Line(s string) string {
	return s + "\n"
}

// PlayStatus renders the four-line status report
func PlayStatus(s domain.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "playing: %s\n", s.State)
	fmt.Fprintf(&b, "random/shuffle: %t\n", s.Shuffle)
	fmt.Fprintf(&b, "repeat track: %t\n", s.RepeatTrack)
	fmt.Fprintf(&b, "repeat list: %t\n", s.RepeatList)
	return b.String()
}

// Dump renders "key: value" lines in record order
func Dump(m domain.Metadata) string {
	var b strings.Builder
	for _, e := range m {
		fmt.Fprintf(&b, "%s: %s\n", e.Key, Value(e.Value))
	}
	return b.String()
}

// DumpAll renders each record followed by a blank line
func DumpAll(records []domain.Metadata) string {
	var b strings.Builder
	for _, m := range records {
		b.WriteString(Dump(m))
		b.WriteString("\n")
	}
	return b.String()
}

// Value renders a metadata value. String lists are joined with ", ".
func Value(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []string:
		return strings.Join(x, ", ")
	default:
		return fmt.Sprint(x)
	}
}

// Clock renders whole seconds as m:ss. Minutes are not padded.
func Clock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// VerboseStatus renders the multi-line status report.
// It is empty when there is no current track.
func VerboseStatus(v Verbose) string {
	if v.Length == 0 || len(v.Metadata) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s %d/%d] @ %s/%s",
		v.Status.State, v.Current+1, v.Length, Clock(v.PositionMS/1000), Clock(trackSeconds(v.Metadata)))
	if n, ok := v.Metadata.Get("tracknumber"); ok {
		fmt.Fprintf(&b, " - #%s", Value(n))
	}
	b.WriteString("\n")

	for _, key := range detailKeys {
		if val, ok := v.Metadata.Get(key); ok {
			fmt.Fprintf(&b, "  %s: %s\n", key, Value(val))
		}
	}

	fmt.Fprintf(&b, "[repeat %s] [random %s] [loop %s]\n",
		onOff(v.Status.RepeatTrack), onOff(v.Status.Shuffle), onOff(v.Status.RepeatList))
	return b.String()
}

// Caps renders one capability name per line
func Caps(c domain.Caps) string {
	var b strings.Builder
	for _, name := range c.Names() {
		b.WriteString(name)
		b.WriteString("\n")
	}
	return b.String()
}

// Version renders major.minor followed by a newline
func Version(v domain.Version) string {
	return fmt.Sprintf("%d.%d\n", v.Major, v.Minor)
}

// trackSeconds reads the track length from "time" (seconds), falling back to
// "mtime" (milliseconds)
func trackSeconds(m domain.Metadata) int64 {
	if n, ok := m.Int("time"); ok {
		return n
	}
	if n, ok := m.Int("mtime"); ok {
		return n / 1000
	}
	return 0
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
