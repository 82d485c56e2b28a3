package invoice

import (
	"math/big"
	"regexp"
	"strings"
)

var (
	digitRun   = regexp.MustCompile(`[0-9]+`)
	everyDigit = regexp.MustCompile(`[0-9]`)
)

// IncrementString advances the first run of digits in s by one and keeps its
// zero padding, e.g. "INV-0007" becomes "INV-0008" and "099" becomes "100".
//
// All digits are removed from s and the incremented number is appended to
// what remains, so "A1B2" becomes "AB2". A string without digits is treated
// as ending in "0": "INV-" becomes "INV-1" and "" becomes "1".
func IncrementString(s string) string {
	run := digitRun.FindString(s)
	if run == "" {
		run = "0"
	}

	n, ok := new(big.Int).SetString(run, 10)
	if !ok {
		n = new(big.Int)
	}
	next := n.Add(n, big.NewInt(1)).String()
	if pad := len(run) - len(next); pad > 0 {
		next = strings.Repeat("0", pad) + next
	}

	return everyDigit.ReplaceAllString(s, "") + next
}
