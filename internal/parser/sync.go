package parser

import "esfront/internal/token"

// syncSet is a set of token kinds at which recovery stops skipping.
type syncSet [4]uint64

func newSync(kinds ...token.Kind) syncSet {
	var s syncSet
	for _, k := range kinds {
		s[k/64] |= 1 << (k % 64)
	}
	return s
}

func (s syncSet) has(k token.Kind) bool { return s[k/64]&(1<<(k%64)) != 0 }

func (s syncSet) with(kinds ...token.Kind) syncSet {
	for _, k := range kinds {
		s[k/64] |= 1 << (k % 64)
	}
	return s
}

var (
	// syncStatement holds tokens that plausibly start or end a statement.
	syncStatement = newSync(
		token.Semicolon, token.RBrace, token.EOF,
		token.KwVar, token.KwLet, token.KwConst, token.KwIf, token.KwFor, token.KwWhile,
		token.KwDo, token.KwReturn, token.KwBreak, token.KwContinue, token.KwThrow,
		token.KwTry, token.KwSwitch, token.KwFunction, token.KwClass, token.KwImport,
		token.KwExport, token.KwDebugger, token.KwWith, token.KwInterface, token.KwEnum,
	)
	syncClassMember = newSync(token.Semicolon, token.RBrace, token.EOF, token.At,
		token.KwStatic, token.KwPublic, token.KwPrivate, token.KwProtected,
		token.KwReadonly, token.KwAbstract, token.KwOverride, token.KwDeclare, token.KwAsync)
	syncTypeMember = newSync(token.Semicolon, token.Comma, token.RBrace, token.EOF)
	syncSwitch     = newSync(token.KwCase, token.KwDefault, token.RBrace, token.EOF)
)
