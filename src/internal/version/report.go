package version

import (
	"regexp"
	"strings"
)

// semverToken matches version-like tokens in tool output, e.g. "2.8.1",
// "v0.30.0" or "2.8.0-rc.1".
var semverToken = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[0-9A-Za-z.]+)?`)

// Extract returns the first version-like token in a tool's --version output,
// without a leading "v". Returns "" when the output carries no version.
func Extract(output string) string {
	tok := semverToken.FindString(output)
	return strings.TrimPrefix(tok, "v")
}

// Matches reports whether any version token in output equals pinned.
// `scarb --version` prints several lines (scarb, cairo, sierra), so every
// token is considered rather than only the first.
func Matches(output, pinned string) bool {
	pinned = strings.TrimPrefix(strings.TrimSpace(pinned), "v")
	if pinned == "" {
		return false
	}
	for _, tok := range semverToken.FindAllString(output, -1) {
		tok = strings.TrimPrefix(tok, "v")
		if tok == pinned {
			return true
		}
		if !IsPrerelease(tok) && !IsPrerelease(pinned) && compareVersionStrings(tok, pinned) == 0 {
			return true
		}
	}
	return false
}
