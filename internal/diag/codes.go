package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка — на первое время
	UnknownCode Code = 0

	// Синтаксис Cairo-файла
	SynUnterminatedBlock Code = 1001 // func/namespace/struct без закрывающего end
	SynUnexpectedEnd     Code = 1002 // end без открытого блока
	SynMalformedHeader   Code = 1003 // заголовок объявления не разбирается
	SynUnbalancedParens  Code = 1004 // скобки заголовка не сошлись

	// Дублирующиеся имена в одной области видимости
	DocDuplicateName Code = 2001

	// Внутренние дефекты конвейера документации
	IntMissingDocEntry Code = 3001
)

func (c Code) String() string {
	switch c {
	case SynUnterminatedBlock:
		return "SYN-UNTERMINATED-BLOCK"
	case SynUnexpectedEnd:
		return "SYN-UNEXPECTED-END"
	case SynMalformedHeader:
		return "SYN-MALFORMED-HEADER"
	case SynUnbalancedParens:
		return "SYN-UNBALANCED-PARENS"
	case DocDuplicateName:
		return "DOC-DUPLICATE-NAME"
	case IntMissingDocEntry:
		return "INT-MISSING-DOC-ENTRY"
	}
	return fmt.Sprintf("CODE-%04d", uint16(c))
}
