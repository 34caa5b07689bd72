package schedule

import "fmt"

// TimeOptions lists every selectable open/start time: 00:00 through 23:45
// in 15-minute steps.
func TimeOptions() []string {
	out := make([]string, 0, 96)
	for i := 0; i < 96; i++ {
		out = append(out, fmt.Sprintf("%02d:%02d", i/4, (i%4)*15))
	}
	return out
}
