package automaton

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoStartSymbol        = newSemanticError("a grammar needs a start symbol")
	semErrUndefinedStartSymbol = newSemanticError("undefined start symbol")
	semErrNoRule               = newSemanticError("a non-terminal needs at least one rule")
	semErrUndefinedSym         = newSemanticError("undefined symbol")
	semErrUndefinedPrec        = newSemanticError("undefined precedence")
	semErrInvalidName          = newSemanticError("invalid name")
	semErrReservedName         = newSemanticError("reserved name")
	semErrDuplicateTerminal    = newSemanticError("duplicate terminal")
	semErrDuplicateNonTerminal = newSemanticError("duplicate non-terminal")
	semErrDuplicatePrec        = newSemanticError("duplicate precedence")
	semErrDuplicateName        = newSemanticError("duplicate names are not allowed between terminals and non-terminals")
	semErrAdjacentErrorTokens  = newSemanticError("%error tokens cannot be adjacent")
	semErrPrecLevelMismatch    = newSemanticError("shifts competing with a reduction disagree on precedence")
	semErrAssocMismatch        = newSemanticError("shifts competing with a reduction disagree on associativity")
	semErrNestingOfNonAssoc    = newSemanticError("nesting of %nonassoc")
	semErrTooManySymbols       = newSemanticError("too many symbols")
)
