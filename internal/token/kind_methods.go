package token

import "fmt"

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsPunct reports whether k is an operator or punctuator.
func (k Kind) IsPunct() bool { return k > punctBegin && k < punctEnd }

// IsReserved reports whether k is a reserved word that can never be a binding name.
func (k Kind) IsReserved() bool { return k > reservedBegin && k < reservedEnd }

// IsContextual reports whether k is a keyword only in some positions.
func (k Kind) IsContextual() bool { return k > contextualBegin && k < contextualEnd }

// IsKeyword reports whether k is any keyword.
func (k Kind) IsKeyword() bool { return k.IsReserved() || k.IsContextual() }

// IsIdentLike reports whether a token of kind k can be used as an identifier
// reference or binding name.
func (k Kind) IsIdentLike() bool { return k == Ident || k.IsContextual() }

// IsIdentifierName reports whether k may appear as a property name after '.'
// or as an object key: any identifier or keyword.
func (k Kind) IsIdentifierName() bool { return k == Ident || k.IsKeyword() }

// IsLiteral reports whether k is a numeric, string, regex or template literal.
func (k Kind) IsLiteral() bool {
	switch k {
	case NumericLit, StringLit, RegexLit, NoSubstTemplate, TemplateHead:
		return true
	default:
		return false
	}
}

// IsAssign reports whether k is '=' or a compound assignment operator.
func (k Kind) IsAssign() bool {
	switch k {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign,
		StarStarAssign, ShlAssign, ShrAssign, UShrAssign, AmpAssign, PipeAssign,
		CaretAssign, AndAndAssign, OrOrAssign, QuestionQuestionAssign:
		return true
	default:
		return false
	}
}

// EndsExpression reports whether a token of kind k can be the last token of
// an expression. The scanner uses it to pick divide over regex at '/'.
func (k Kind) EndsExpression() bool {
	switch k {
	case Ident, PrivateName, NumericLit, StringLit, RegexLit, NoSubstTemplate, TemplateTail,
		RParen, RBracket, RBrace, PlusPlus, MinusMinus,
		KwThis, KwSuper, KwNull, KwTrue, KwFalse:
		return true
	}
	return k.IsContextual() && k != KwYield && k != KwAwait
}
