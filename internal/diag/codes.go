package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedTemplate     Code = 1003
	LexUnterminatedRegex        Code = 1004
	LexUnterminatedBlockComment Code = 1005
	LexInvalidEscape            Code = 1006
	LexBadNumber                Code = 1007
	LexInvalidRegexFlag         Code = 1008
	LexInvalidIdentifier        Code = 1009
	LexUnterminatedJSXString    Code = 1010
	LexJSXTextChar              Code = 1011

	SynInfo                  Code = 2000
	SynUnexpectedToken       Code = 2001
	SynExpectToken           Code = 2002
	SynExpectExpression      Code = 2003
	SynExpectIdentifier      Code = 2004
	SynExpectStatement       Code = 2005
	SynExpectType            Code = 2006
	SynExpectBinding         Code = 2007
	SynUnclosedDelimiter     Code = 2008
	SynExpectSemicolon       Code = 2009
	SynMixedNullish          Code = 2010
	SynExponentUnary         Code = 2011
	SynInvalidAssignTarget   Code = 2012
	SynRestNotLast           Code = 2013
	SynForInitializer        Code = 2014
	SynReturnOutsideFunction Code = 2015
	SynIllegalBreak          Code = 2016
	SynUndefinedLabel        Code = 2017
	SynModifierNotAllowed    Code = 2018
	SynDecoratorPosition     Code = 2019
	SynOptionalChainTemplate Code = 2020
	SynNewOptionalChain      Code = 2021
	SynNestingTooDeep        Code = 2022
	SynDuplicateDefault      Code = 2023
	SynImportOutsideModule   Code = 2024
	SynMissingInitializer    Code = 2025
	SynLineBreakNotAllowed   Code = 2026
	SynInvalidCoverGrammar   Code = 2027
	SynMultipleRestOrDefault Code = 2028
	SynEmptyTemplateExpr     Code = 2029
	SynStrayCloser           Code = 2030

	SynJSXMismatchedClose Code = 2100
	SynJSXUnclosed        Code = 2101
	SynJSXEmptyExpression Code = 2102
	SynJSXAdjacent        Code = 2103

	SynTypeAnnotation     Code = 2200
	SynTypeArgsNotAllowed Code = 2201
	SynAbstractNotAllowed Code = 2202
	SynEnumMember         Code = 2203

	DialectTypeSyntax Code = 2300
	DialectJSX        Code = 2301
	DialectDecorators Code = 2302
	DialectStrictMode Code = 2303

	DirUnknownVerb     Code = 6000
	DirMissingCategory Code = 6001
	DirMisplaced       Code = 6002

	IOLoadFileError Code = 4000
	ObsTimings      Code = 7000
)

var codeInfo = map[Code]struct{ category, title string }{
	UnknownCode:                 {"unknown", "Unknown diagnostic"},
	LexInfo:                     {"lex/info", "Lexical information"},
	LexUnknownChar:              {"lex/unknown-character", "Unknown character"},
	LexUnterminatedString:       {"lex/unterminated-string", "Unterminated string literal"},
	LexUnterminatedTemplate:     {"lex/unterminated-template", "Unterminated template literal"},
	LexUnterminatedRegex:        {"lex/unterminated-regex", "Unterminated regular expression"},
	LexUnterminatedBlockComment: {"lex/unterminated-comment", "Unterminated block comment"},
	LexInvalidEscape:            {"lex/invalid-escape", "Invalid escape sequence"},
	LexBadNumber:                {"lex/invalid-number", "Invalid numeric literal"},
	LexInvalidRegexFlag:         {"lex/invalid-regex-flag", "Invalid regular expression flag"},
	LexInvalidIdentifier:        {"lex/invalid-identifier", "Invalid identifier escape"},
	LexUnterminatedJSXString:    {"lex/unterminated-jsx-string", "Unterminated JSX attribute string"},
	LexJSXTextChar:              {"lex/jsx-text-char", "Unexpected character in JSX text"},
	SynInfo:                     {"parse/info", "Syntax information"},
	SynUnexpectedToken:          {"parse/unexpected-token", "Unexpected token"},
	SynExpectToken:              {"parse/missing-token", "Missing required token"},
	SynExpectExpression:         {"parse/expected-expression", "Expected an expression"},
	SynExpectIdentifier:         {"parse/expected-identifier", "Expected an identifier"},
	SynExpectStatement:          {"parse/expected-statement", "Expected a statement"},
	SynExpectType:               {"parse/expected-type", "Expected a type"},
	SynExpectBinding:            {"parse/expected-binding", "Expected a binding pattern"},
	SynUnclosedDelimiter:        {"parse/unclosed-delimiter", "Unclosed delimiter"},
	SynExpectSemicolon:          {"parse/missing-semicolon", "Missing semicolon"},
	SynMixedNullish:             {"parse/nullish-mixing", "Mixed ?? with && or ||"},
	SynExponentUnary:            {"parse/exponent-unary", "Unary operand of **"},
	SynInvalidAssignTarget:      {"parse/invalid-assignment-target", "Invalid assignment target"},
	SynRestNotLast:              {"parse/rest-not-last", "Rest element must be last"},
	SynForInitializer:           {"parse/for-initializer", "Invalid for-in/of initializer"},
	SynReturnOutsideFunction:    {"parse/return-outside-function", "Return outside function"},
	SynIllegalBreak:             {"parse/illegal-break", "Break or continue outside loop"},
	SynUndefinedLabel:           {"parse/undefined-label", "Undefined label"},
	SynModifierNotAllowed:       {"parse/modifier-not-allowed", "Modifier not allowed here"},
	SynDecoratorPosition:        {"parse/decorator-position", "Decorator not allowed here"},
	SynOptionalChainTemplate:    {"parse/optional-chain-template", "Tagged template in optional chain"},
	SynNewOptionalChain:         {"parse/new-optional-chain", "Optional chain in new expression"},
	SynNestingTooDeep:           {"parse/nesting-too-deep", "Nesting too deep"},
	SynDuplicateDefault:         {"parse/duplicate-default", "Duplicate default clause"},
	SynImportOutsideModule:      {"parse/import-outside-module", "Import or export outside module"},
	SynMissingInitializer:       {"parse/missing-initializer", "Missing initializer"},
	SynLineBreakNotAllowed:      {"parse/line-break", "Line break not allowed here"},
	SynInvalidCoverGrammar:      {"parse/invalid-shorthand", "Invalid shorthand initializer"},
	SynMultipleRestOrDefault:    {"parse/invalid-parameter", "Invalid parameter list"},
	SynEmptyTemplateExpr:        {"parse/empty-template-expression", "Empty template interpolation"},
	SynStrayCloser:              {"parse/stray-closer", "Unmatched closing delimiter"},
	SynJSXMismatchedClose:       {"parse/jsx-mismatched-closing-tag", "Mismatched JSX closing tag"},
	SynJSXUnclosed:              {"parse/jsx-unclosed-element", "Unclosed JSX element"},
	SynJSXEmptyExpression:       {"parse/jsx-empty-expression", "Empty JSX expression"},
	SynJSXAdjacent:              {"parse/jsx-adjacent-elements", "Adjacent JSX elements"},
	SynTypeAnnotation:           {"parse/type-syntax", "Type syntax error"},
	SynTypeArgsNotAllowed:       {"parse/type-arguments", "Type arguments not allowed here"},
	SynAbstractNotAllowed:       {"parse/abstract-member", "Abstract member outside abstract class"},
	SynEnumMember:               {"parse/enum-member", "Invalid enum member"},
	DialectTypeSyntax:           {"dialect/type-syntax", "Type syntax in a JavaScript file"},
	DialectJSX:                  {"dialect/jsx", "JSX in a file without JSX"},
	DialectDecorators:           {"dialect/decorators", "Decorators are disabled"},
	DialectStrictMode:           {"dialect/strict-mode", "Syntax not allowed in strict mode"},
	DirUnknownVerb:              {"directive/unknown-verb", "Unknown directive"},
	DirMissingCategory:          {"directive/missing-category", "Directive without category"},
	DirMisplaced:                {"directive/misplaced", "Directive has no effect"},
	IOLoadFileError:             {"io/load-file", "Failed to load file"},
	ObsTimings:                  {"observ/timings", "Phase timings"},
}

// ID returns the stable short identifier, e.g. LEX1002.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 2300:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 2300 && ic < 3000:
		return fmt.Sprintf("DLT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("DIR%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

// Category returns the wire category string, e.g. lex/unterminated-string.
func (c Code) Category() string {
	if info, ok := codeInfo[c]; ok {
		return info.category
	}
	return codeInfo[UnknownCode].category
}

func (c Code) Title() string {
	if info, ok := codeInfo[c]; ok {
		return info.title
	}
	return codeInfo[UnknownCode].title
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// CodeForCategory maps a wire category back to its code.
func CodeForCategory(category string) (Code, bool) {
	for c, info := range codeInfo {
		if info.category == category {
			return c, true
		}
	}
	return UnknownCode, false
}
