package util

import "strings"

// CollapseSpaces trims s and folds every run of whitespace into one space.
func CollapseSpaces(s string) string {
    return strings.Join(strings.Fields(s), " ")
}
