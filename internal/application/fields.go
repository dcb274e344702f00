package application

import "strconv"

// ScanIndexed walks parallel pseudo-array fields ("NAME0", "NAME1", ...)
// and collects one value per index. At each index the first template in
// order that has a value wins; the scan stops at the first index where none
// of the templates is present. An empty value still counts as present.
func ScanIndexed(values map[string]string, templates ...string) []string {
	var out []string

	for n := 0; ; n++ {
		value, ok := indexedValue(values, n, templates)
		if !ok {
			break
		}
		out = append(out, value)
	}

	return out
}

func indexedValue(values map[string]string, n int, templates []string) (string, bool) {
	for _, template := range templates {
		if value, ok := values[template+strconv.Itoa(n)]; ok {
			return value, true
		}
	}
	return "", false
}
