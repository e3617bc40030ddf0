package naming

import (
	"strconv"
	"strings"
)

// NameMustBeValid panics if the name does not follow the naming convention.
// A name is a series of dot-separated elements, such as "L1[0].Cache". Each
// element starts with a capital letter, contains no underscore, quote or
// dash, and may be followed by integer indices in square brackets.
func NameMustBeValid(name string) {
	for _, elem := range strings.Split(name, ".") {
		err := elementError(elem)
		if err != "" {
			panic("Name " + name + " is not valid: " + err)
		}
	}
}

func elementError(elem string) string {
	base, indices, found := strings.Cut(elem, "[")

	if base == "" {
		return "element must not be empty"
	}

	if strings.ContainsAny(base, "_\"'-]") {
		return "element must not contain _, \", ', - or ]"
	}

	if base[0] < 'A' || base[0] > 'Z' {
		return "element must start with a capital letter"
	}

	if !found {
		return ""
	}

	return indicesError("[" + indices)
}

func indicesError(s string) string {
	for s != "" {
		if s[0] != '[' {
			return "brackets must match"
		}

		end := strings.IndexByte(s, ']')
		if end < 0 {
			return "brackets must match"
		}

		_, err := strconv.Atoi(s[1:end])
		if err != nil {
			return "index must be an integer"
		}

		s = s[end+1:]
	}

	return ""
}
