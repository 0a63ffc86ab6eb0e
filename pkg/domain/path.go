package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// PathSeparator separates the segments of a textual accessible path.
const PathSeparator = "/"

// Path identifies a node of the accessible tree as a root-to-node sequence
// of segments. The zero value is the device root.
type Path struct {
	segments []string
}

// NewPath builds a Path from already split segments.
func NewPath(segments ...string) Path {
	return Path{segments: append([]string(nil), segments...)}
}

// ParsePath splits a '/'-delimited string such as "/0/1" into a Path.
// The leading empty segment is mandatory and discarded; trailing empty
// segments are dropped so that "/" names the root.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(s, PathSeparator)
	if parts[0] != "" {
		return Path{}, fmt.Errorf("%w: path %q must start with %q", ErrUsage, s, PathSeparator)
	}
	parts = parts[1:]
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return NewPath(parts...), nil
}

// Segments returns a copy of the path segments.
func (p Path) Segments() []string {
	return append([]string(nil), p.segments...)
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// IsRoot reports whether the path names the device root.
func (p Path) IsRoot() bool {
	return len(p.segments) == 0
}

// Child returns a new path extended by one segment.
func (p Path) Child(segment string) Path {
	return NewPath(append(p.Segments(), segment)...)
}

// ChildIndex returns the path of the i-th child.
func (p Path) ChildIndex(i int) Path {
	return p.Child(strconv.Itoa(i))
}

// Indices converts the segments to child indices.
func (p Path) Indices() ([]int, error) {
	out := make([]int, len(p.segments))
	for i, seg := range p.segments {
		n, err := strconv.Atoi(seg)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: segment %q of %s is not a child index", ErrNodeNotFound, seg, p)
		}
		out[i] = n
	}
	return out, nil
}

// Equal reports whether both paths have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	return PathSeparator + strings.Join(p.segments, PathSeparator)
}

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := ParsePath(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
