package diag

// Severity — уровень серьёзности диагностики. Значения упорядочены по
// возрастанию: Bag.Sort при равных спанах ставит более серьёзные раньше,
// а Bag.HasErrors сравнивает с SevError.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// String возвращает метку в верхнем регистре; её же печатают pretty- и
// json-рендеры.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
