package diag

func New(sev Severity, rule, code string, position int, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Rule:     rule,
		Code:     code,
		Position: position,
		Message:  msg,
	}
}

func NewError(rule, code string, position int, msg string) Diagnostic {
	return New(SevError, rule, code, position, msg)
}

func (d Diagnostic) WithNote(msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: d.Primary, Msg: msg})
	return d
}
