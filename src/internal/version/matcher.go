// Package version resolves partial toolchain pins against the versions an asdf
// plugin advertises, and checks a tool's reported version against its pin.
package version

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ResolvePartialVersion finds the latest version matching a partial pin.
// Examples:
//   - "2" matches "2.7.1", "2.8.1" → returns highest "2.x.x"
//   - "2.8" matches "2.8.0", "2.8.1" → returns highest "2.8.x"
//   - "2.8.1" with 3 components → returns "2.8.1" (exact match expected)
//
// Pre-releases ("2.8.0-rc.1") are only chosen when no stable version matches.
// Returns an error if no matching version is found.
func ResolvePartialVersion(input string, available []string) (string, error) {
	input = strings.TrimPrefix(input, "v")

	inputParts := strings.Split(input, ".")

	// A full pin is passed through; asdf reports unknown versions itself
	if len(inputParts) >= 3 {
		return input, nil
	}

	// Collect matches, keeping pre-releases apart
	var stable, pre []string
	for _, v := range available {
		if !matchesPartial(v, inputParts) {
			continue
		}
		if IsPrerelease(v) {
			pre = append(pre, v)
		} else {
			stable = append(stable, v)
		}
	}

	// Prefer stable releases; fall back to pre-releases only if none match
	matches := stable
	if len(matches) == 0 {
		matches = pre
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no version matching %q found", input)
	}

	// Sort descending and take the highest
	sortVersionsDesc(matches)
	return strings.TrimPrefix(matches[0], "v"), nil
}

// IsPartialVersion returns true if the input has fewer than 3 components.
// Examples:
//   - "2" → true
//   - "0.30" → true
//   - "0.30.0" → false
//   - "v2" → true (after stripping v prefix)
func IsPartialVersion(input string) bool {
	input = strings.TrimPrefix(input, "v")
	parts := strings.Split(input, ".")
	return len(parts) < 3
}

// IsPrerelease reports whether a version carries a pre-release suffix.
func IsPrerelease(v string) bool {
	return strings.Contains(v, "-")
}

// matchesPartial checks if a version matches the partial specification.
// The version must have the same numeric values in the positions specified.
func matchesPartial(version string, partialParts []string) bool {
	version = strings.TrimPrefix(version, "v")
	versionParts := strings.Split(version, ".")

	// A candidate shorter than the pin cannot match it
	if len(versionParts) < len(partialParts) {
		return false
	}

	// Compare position by position, up to the pin's length
	for i, partial := range partialParts {
		// Numeric comparison, so "08" and "8" agree
		partialNum, partialErr := strconv.Atoi(partial)
		versionNum, versionErr := strconv.Atoi(versionParts[i])

		if partialErr != nil || versionErr != nil {
			// Non-numeric components must match as text
			if partial != versionParts[i] {
				return false
			}
		} else if partialNum != versionNum {
			return false
		}
	}

	return true
}

// sortVersionsDesc orders version strings newest first. The sort is stable
// so equal versions keep the order asdf listed them in.
func sortVersionsDesc(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return compareVersionStrings(versions[i], versions[j]) > 0
	})
}

// compareVersionStrings compares two version strings semantically.
// Returns >0 if a > b, <0 if a < b, 0 if equal.
func compareVersionStrings(a, b string) int {
	aParts := parseVersionParts(a)
	bParts := parseVersionParts(b)

	// Missing trailing components count as zero, so "2.8" equals "2.8.0"
	maxLen := len(aParts)
	if len(bParts) > maxLen {
		maxLen = len(bParts)
	}

	for i := 0; i < maxLen; i++ {
		var aVal, bVal int
		if i < len(aParts) {
			aVal = aParts[i]
		}
		if i < len(bParts) {
			bVal = bParts[i]
		}

		// The first differing component decides
		if aVal != bVal {
			return aVal - bVal
		}
	}

	return 0
}

// parseVersionParts splits a version string into numeric parts.
func parseVersionParts(version string) []int {
	version = strings.TrimPrefix(version, "v")

	// Split on dots and the pre-release dash; "2.9.0-rc.1" gives 2, 9, 0, 1
	parts := strings.FieldsFunc(version, func(c rune) bool {
		return c == '.' || c == '-'
	})

	var result []int
	for _, part := range parts {
		// Labels such as "rc" carry no numeric weight
		if val, err := strconv.Atoi(part); err == nil {
			result = append(result, val)
		}
	}

	return result
}
