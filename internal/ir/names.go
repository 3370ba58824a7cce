package ir

import "strings"

// UnderscoreDelimited flattens a fully-qualified proto name into a single
// identifier: "pkg.Outer.Inner" becomes "pkg_Outer_Inner".
func UnderscoreDelimited(fullName string) string {
	return strings.ReplaceAll(fullName, ".", "_")
}

// StripProto removes the .proto or .protodevel extension from a schema path.
func StripProto(path string) string {
	for _, ext := range []string{".protodevel", ".proto"} {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext)
		}
	}
	return path
}

func BaseName(path string) string {
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		return path[idx+1:]
	}
	return path
}

func joinName(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "_")
}

// NestedName returns the flattened type name of a message nested inside the
// given enclosing message names.
func NestedName(enclosing []string, name string) string {
	parts := make([]string, 0, len(enclosing)+1)
	parts = append(parts, enclosing...)
	parts = append(parts, name)
	return joinName(parts)
}
