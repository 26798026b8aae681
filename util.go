package store

import "strings"

func sliceMap[In any, Out any](list []In, mapFn func(val In) Out) []Out {
	var newSlice = make([]Out, len(list))
	for i, val := range list {
		newSlice[i] = mapFn(val)
	}

	return newSlice
}

func sliceFilter[T any](slice []T, filterFunc func(val T) bool) []T {
	var newSlice []T
	for i, val := range slice {
		if filterFunc(val) {
			newSlice = append(newSlice, slice[i])
		}
	}

	return newSlice
}

// parseSorter turns "-name" / "+name" / "name" entries into field and
// direction pairs, descending for "-".
func parseSorter(sorter []string) []sortField {
	var fields []sortField
	for _, s := range sorter {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		dir := 1
		switch s[:1] {
		case "-":
			dir = -1
			s = s[1:]
		case "+":
			s = s[1:]
		}

		if s == "" {
			continue
		}

		fields = append(fields, sortField{Name: s, Dir: dir})
	}

	return fields
}

type sortField struct {
	Name string
	Dir  int
}
