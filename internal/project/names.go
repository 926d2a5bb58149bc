package project

import (
	"strings"
	"unicode"

	"fen/internal/names"
)

// IsValidPackageName: строчный идентификатор, как имя значения в языке.
func IsValidPackageName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 && !unicode.IsLower(r) {
			return false
		}
		if i > 0 && r != '_' && r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsValidModuleName: точечный путь из сегментов с заглавной буквы,
// например "Data.List".
func IsValidModuleName(name names.ModuleName) bool {
	if name == "" {
		return false
	}
	for _, seg := range strings.Split(string(name), ".") {
		if !validModuleSegment(seg) {
			return false
		}
	}
	return true
}

func validModuleSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for i, r := range seg {
		if i == 0 && !unicode.IsUpper(r) {
			return false
		}
		if i > 0 && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
