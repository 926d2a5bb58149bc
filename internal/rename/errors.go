package rename

import (
	"fmt"

	"fen/internal/diag"
	"fen/internal/source"
)

// Error — первая ошибка переименования модуля. Несёт код и спан для
// подчёркивания; текстом занимается слой рендеринга.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Report отправляет ошибку в diag.Reporter.
func (e *Error) Report(r diag.Reporter) {
	diag.ReportError(r, e.Code, e.Span, e.Msg).Emit()
}

func errorf(code diag.Code, sp source.Span, format string, args ...any) *Error {
	return &Error{Code: code, Span: sp, Msg: fmt.Sprintf(format, args...)}
}
