package core

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatScore renders a score with thousand separators ("1,234,567").
func FormatScore(score int64) string {
	neg := score < 0
	if neg {
		score = -score
	}
	digits := strconv.FormatInt(score, 10)

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	sb.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

// FormatTime renders seconds as MM:SS. Negative input renders as 00:00.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// TruncateAddress shortens a long player address to prefix...suffix.
func TruncateAddress(addr string, prefix, suffix int) string {
	if len(addr) <= prefix+suffix {
		return addr
	}
	return addr[:prefix] + "..." + addr[len(addr)-suffix:]
}
