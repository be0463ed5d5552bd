package directus

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// SortServices orders services in place by name using the collation rules
// of tag. Names are NFC-normalised before comparison; ties keep their input order.
func SortServices(services []Service, tag language.Tag) {
	col := collate.New(tag)
	keys := make([]string, len(services))
	for i, s := range services {
		keys[i] = norm.NFC.String(s.Name)
	}
	idx := make([]int, len(services))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return col.CompareString(keys[idx[a]], keys[idx[b]]) < 0
	})
	sorted := make([]Service, len(services))
	for i, j := range idx {
		sorted[i] = services[j]
	}
	copy(services, sorted)
}
