package relocator

import (
	"strconv"
	"strings"
)

// namer hands out collision names for one run. The counter is kept per base
// name and only ever grows, so a second collision on "a" after "a_1.png" was
// handed out tries "a_2.png" first.
type namer struct {
	counts map[string]int
}

func newNamer() *namer {
	return &namer{counts: map[string]int{}}
}

func (n *namer) next(base, ext string) string {
	n.counts[base]++
	return base + "_" + strconv.Itoa(n.counts[base]) + ext
}

// splitName splits "photo.PNG" into ("photo", ".PNG"). A leading dot is
// part of the base, so ".png" has no extension.
func splitName(name, ext string) (string, string) {
	base := strings.TrimSuffix(name, ext)
	if base == "" || strings.TrimLeft(base, ".") == "" {
		return name, ""
	}
	return base, ext
}
