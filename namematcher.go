package mfs32

import "strings"

// normalize83 expands a user-supplied token (bare name, dotted name, or the
// special "." / ".." tokens) into an 11-byte space-padded uppercase 8.3
// buffer, mirroring original_source/mfs.c:compare_filename's
// strtok/strncpy/toupper sequence.
func normalize83(input string) [11]byte {
	var out [11]byte
	for i := range out {
		out[i] = ' '
	}

	base, ext, hasExt := strings.Cut(input, ".")

	copy(out[0:8], base)
	if hasExt {
		copy(out[8:11], ext)
	}

	for i, b := range out {
		if b >= 'a' && b <= 'z' {
			out[i] = b - ('a' - 'A')
		}
	}
	return out
}

// matchesName reports whether input (a user-typed token) refers to the same
// entry as the raw 11-byte on-disk name field diskName (spec.md §4.5).
func matchesName(input string, diskName [11]byte) bool {
	if strings.HasPrefix(input, "..") {
		return diskName[0] == '.' && diskName[1] == '.'
	}
	return normalize83(input) == diskName
}
