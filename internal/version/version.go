// Package version reports the module version recorded in build info.
package version

import (
	"runtime/debug"
	"strings"
)

// String returns the released module version, or "(devel)" for local and
// pseudo-version builds.
func String() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "(devel)"
	}
	return normalize(info.Main.Version)
}

func normalize(v string) string {
	if v == "" || v == "(devel)" || strings.Contains(v, "+dirty") {
		return "(devel)"
	}
	if isPseudoVersion(v) {
		return "(devel)"
	}
	return v
}

// isPseudoVersion detects vX.Y.Z-<yyyymmddhhmmss>-<12+ hex> forms, with or
// without build metadata.
func isPseudoVersion(v string) bool {
	v, _, _ = strings.Cut(v, "+")

	rest := v
	i := strings.LastIndexByte(rest, '-')
	if i < 0 {
		return false
	}
	hash := rest[i+1:]
	rest = rest[:i]

	i = strings.LastIndexByte(rest, '-')
	if i < 0 {
		return false
	}
	ts := rest[i+1:]

	if len(ts) != 14 || strings.IndexFunc(ts, notDigit) >= 0 {
		return false
	}
	if len(hash) < 12 || strings.IndexFunc(hash, notHex) >= 0 {
		return false
	}
	return true
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}

func notHex(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return false
	case r >= 'a' && r <= 'f':
		return false
	case r >= 'A' && r <= 'F':
		return false
	}
	return true
}
