package yul

import (
	"fmt"
	"strconv"
	"strings"
)

// Location is a solc source range, "start:length:sourceIndex".
type Location struct {
	Start  int
	Length int
	Source int
	Valid  bool
}

// ParseLocation parses a solc "src" attribute. Malformed input yields an
// invalid zero Location.
func ParseLocation(src string) Location {
	parts := strings.Split(src, ":")
	if len(parts) != 3 {
		return Location{}
	}
	var vals [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Location{}
		}
		vals[i] = n
	}
	return Location{Start: vals[0], Length: vals[1], Source: vals[2], Valid: true}
}

func (l Location) String() string {
	if !l.Valid {
		return "-"
	}
	return fmt.Sprintf("%d:%d:%d", l.Start, l.Length, l.Source)
}
