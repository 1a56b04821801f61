package search

import (
	"strconv"
	"strings"
)

// Choose maps a menu selection token to a zero-based index into n ordered
// matches. An empty token picks the first match; a digit token k selects
// match k for 1 <= k <= n. Anything else is rejected so the caller can
// re-prompt. Choose never touches the terminal itself.
func Choose(token string, n int) (int, bool) {
	token = strings.TrimSpace(token)

	if token == "" {
		return 0, n > 0
	}

	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, false
		}
	}

	k, err := strconv.Atoi(token)
	if err != nil || k < 1 || k > n {
		return 0, false
	}

	return k - 1, true
}
