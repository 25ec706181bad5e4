package diag

import (
	"fmt"
	"strconv"
	"strings"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Declarations of closed types
	DeclCaseOutsideDefinition Code = 1001
	DeclCaseTypeParameters    Code = 1007
	DeclCaseBaseSpecialized   Code = 1008
	DeclClosedInterface       Code = 1009
	DeclUnrelatedNestedType   Code = 1030
	DeclNoCases               Code = 1031

	// Coverage of match constructs
	CovSwitchExprNotExhaustive Code = 2001
	CovSwitchStmtNotExhaustive Code = 2002
	CovUnreachablePattern      Code = 2003
	CovNoCaseImplements        Code = 2004

	// Лексер
	LexUnknownChar              Code = 3001
	LexUnterminatedString       Code = 3002
	LexUnterminatedBlockComment Code = 3003
	LexBadNumber                Code = 3004

	// Парсер
	SynUnexpectedToken    Code = 4001
	SynUnexpectedTopLevel Code = 4002
	SynExpectIdentifier   Code = 4003
	SynExpectType         Code = 4004
	SynExpectPattern      Code = 4005
	SynExpectColon        Code = 4006
	SynExpectArrow        Code = 4007
	SynUnclosedDelimiter  Code = 4008
	SynAttributeUnknown   Code = 4009

	// Binder
	SemaUnresolvedType   Code = 5001
	SemaAmbiguousType    Code = 5002
	SemaDuplicateType    Code = 5003
	SemaTypeArity        Code = 5004
	SemaBaseNotClass     Code = 5005
	SemaInheritanceCycle Code = 5006
	SemaMultipleBases    Code = 5007
	SemaDuplicateParam   Code = 5008

	// IO
	IOLoadFileError Code = 6001
	IOReadDirError  Code = 6002

	// Project
	ProjManifestInvalid Code = 7001
	ProjUnknownCode     Code = 7002
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	DeclCaseOutsideDefinition: "Enum case declared outside its enum class",
	DeclCaseTypeParameters:    "Enum case declares type parameters",
	DeclCaseBaseSpecialized:   "Enum case specializes its base",
	DeclClosedInterface:       "Interface marked as closed",
	DeclUnrelatedNestedType:   "Nested type is not an enum case",
	DeclNoCases:               "Enum class has no cases",

	CovSwitchExprNotExhaustive: "Switch expression is not exhaustive",
	CovSwitchStmtNotExhaustive: "Switch statement is not exhaustive",
	CovUnreachablePattern:      "Unreachable pattern",
	CovNoCaseImplements:        "No enum case implements interface",

	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",

	SynUnexpectedToken:    "Unexpected token",
	SynUnexpectedTopLevel: "Unexpected top-level construct",
	SynExpectIdentifier:   "Expected identifier",
	SynExpectType:         "Expected type",
	SynExpectPattern:      "Expected pattern",
	SynExpectColon:        "Expected ':'",
	SynExpectArrow:        "Expected '=>'",
	SynUnclosedDelimiter:  "Unclosed delimiter",
	SynAttributeUnknown:   "Unknown attribute",

	SemaUnresolvedType:   "Unresolved type",
	SemaAmbiguousType:    "Ambiguous type name",
	SemaDuplicateType:    "Duplicate type declaration",
	SemaTypeArity:        "Wrong number of type arguments",
	SemaBaseNotClass:     "Base is not a class or interface",
	SemaInheritanceCycle: "Inheritance cycle",
	SemaMultipleBases:    "Multiple base classes",
	SemaDuplicateParam:   "Duplicate parameter",

	IOLoadFileError: "Failed to load file",
	IOReadDirError:  "Failed to read directory",

	ProjManifestInvalid: "Invalid enumclass.toml",
	ProjUnknownCode:     "Unknown diagnostic code in severity table",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 3000:
		return fmt.Sprintf("EC%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

var idPrefixes = []string{"EC", "LEX", "SYN", "SEM", "IO", "PRJ"}

// ParseCode maps a textual ID such as "EC2003" back to its Code.
func ParseCode(id string) (Code, bool) {
	id = strings.ToUpper(strings.TrimSpace(id))
	for _, prefix := range idPrefixes {
		rest, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		n, err := strconv.ParseUint(rest, 10, 16)
		if err != nil {
			return UnknownCode, false
		}
		c := Code(n)
		if _, known := codeDescription[c]; !known || c.ID() != id {
			return UnknownCode, false
		}
		return c, true
	}
	return UnknownCode, false
}
