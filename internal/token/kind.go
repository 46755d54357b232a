package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks a character sequence the scanner could not classify.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident is a plain identifier.
	Ident
	// PrivateName is a class private name such as #count.
	PrivateName

	// Literals.
	NumericLit
	StringLit
	RegexLit
	NoSubstTemplate // `text`
	TemplateHead    // `text${
	TemplateMiddle  // }text${
	TemplateTail    // }text`

	// JSX tokens, produced only in the JSX scanning modes.
	JSXText
	JSXIdent
	JSXString

	punctBegin
	LBrace                 // {
	RBrace                 // }
	LParen                 // (
	RParen                 // )
	LBracket               // [
	RBracket               // ]
	Dot                    // .
	DotDotDot              // ...
	Semicolon              // ;
	Comma                  // ,
	Lt                     // <
	Gt                     // >
	LtEq                   // <=
	GtEq                   // >=
	EqEq                   // ==
	BangEq                 // !=
	EqEqEq                 // ===
	BangEqEq               // !==
	Plus                   // +
	Minus                  // -
	Star                   // *
	Slash                  // /
	Percent                // %
	StarStar               // **
	PlusPlus               // ++
	MinusMinus             // --
	Shl                    // <<
	Shr                    // >>
	UShr                   // >>>
	Amp                    // &
	Pipe                   // |
	Caret                  // ^
	Bang                   // !
	Tilde                  // ~
	AndAnd                 // &&
	OrOr                   // ||
	QuestionQuestion       // ??
	Question               // ?
	QuestionDot            // ?.
	Colon                  // :
	Assign                 // =
	PlusAssign             // +=
	MinusAssign            // -=
	StarAssign             // *=
	SlashAssign            // /=
	PercentAssign          // %=
	StarStarAssign         // **=
	ShlAssign              // <<=
	ShrAssign              // >>=
	UShrAssign             // >>>=
	AmpAssign              // &=
	PipeAssign             // |=
	CaretAssign            // ^=
	AndAndAssign           // &&=
	OrOrAssign             // ||=
	QuestionQuestionAssign // ??=
	FatArrow               // =>
	At                     // @
	punctEnd

	reservedBegin
	KwBreak      // break
	KwCase       // case
	KwCatch      // catch
	KwClass      // class
	KwConst      // const
	KwContinue   // continue
	KwDebugger   // debugger
	KwDefault    // default
	KwDelete     // delete
	KwDo         // do
	KwElse       // else
	KwEnum       // enum
	KwExport     // export
	KwExtends    // extends
	KwFalse      // false
	KwFinally    // finally
	KwFor        // for
	KwFunction   // function
	KwIf         // if
	KwImport     // import
	KwIn         // in
	KwInstanceof // instanceof
	KwNew        // new
	KwNull       // null
	KwReturn     // return
	KwSuper      // super
	KwSwitch     // switch
	KwThis       // this
	KwThrow      // throw
	KwTrue       // true
	KwTry        // try
	KwTypeof     // typeof
	KwVar        // var
	KwVoid       // void
	KwWhile      // while
	KwWith       // with
	reservedEnd

	contextualBegin
	KwAbstract   // abstract
	KwAccessor   // accessor
	KwAny        // any
	KwAs         // as
	KwAsserts    // asserts
	KwAsync      // async
	KwAwait      // await
	KwBigint     // bigint
	KwBoolean    // boolean
	KwDeclare    // declare
	KwFrom       // from
	KwGet        // get
	KwGlobal     // global
	KwImplements // implements
	KwInfer      // infer
	KwInterface  // interface
	KwIs         // is
	KwKeyof      // keyof
	KwLet        // let
	KwMeta       // meta
	KwModule     // module
	KwNamespace  // namespace
	KwNever      // never
	KwNumber     // number
	KwObject     // object
	KwOf         // of
	KwOut        // out
	KwOverride   // override
	KwPackage    // package
	KwPrivate    // private
	KwProtected  // protected
	KwPublic     // public
	KwReadonly   // readonly
	KwRequire    // require
	KwSatisfies  // satisfies
	KwSet        // set
	KwStatic     // static
	KwString     // string
	KwSymbol     // symbol
	KwTarget     // target
	KwType       // type
	KwUndefined  // undefined
	KwUnique     // unique
	KwUnknown    // unknown
	KwUsing      // using
	KwYield      // yield
	contextualEnd

	kindCount
)

var kindNames = [...]string{
	Invalid:                "Invalid",
	EOF:                    "EOF",
	Ident:                  "Ident",
	PrivateName:            "PrivateName",
	NumericLit:             "NumericLit",
	StringLit:              "StringLit",
	RegexLit:               "RegexLit",
	NoSubstTemplate:        "NoSubstTemplate",
	TemplateHead:           "TemplateHead",
	TemplateMiddle:         "TemplateMiddle",
	TemplateTail:           "TemplateTail",
	JSXText:                "JSXText",
	JSXIdent:               "JSXIdent",
	JSXString:              "JSXString",
	LBrace:                 "{",
	RBrace:                 "}",
	LParen:                 "(",
	RParen:                 ")",
	LBracket:               "[",
	RBracket:               "]",
	Dot:                    ".",
	DotDotDot:              "...",
	Semicolon:              ";",
	Comma:                  ",",
	Lt:                     "<",
	Gt:                     ">",
	LtEq:                   "<=",
	GtEq:                   ">=",
	EqEq:                   "==",
	BangEq:                 "!=",
	EqEqEq:                 "===",
	BangEqEq:               "!==",
	Plus:                   "+",
	Minus:                  "-",
	Star:                   "*",
	Slash:                  "/",
	Percent:                "%",
	StarStar:               "**",
	PlusPlus:               "++",
	MinusMinus:             "--",
	Shl:                    "<<",
	Shr:                    ">>",
	UShr:                   ">>>",
	Amp:                    "&",
	Pipe:                   "|",
	Caret:                  "^",
	Bang:                   "!",
	Tilde:                  "~",
	AndAnd:                 "&&",
	OrOr:                   "||",
	QuestionQuestion:       "??",
	Question:               "?",
	QuestionDot:            "?.",
	Colon:                  ":",
	Assign:                 "=",
	PlusAssign:             "+=",
	MinusAssign:            "-=",
	StarAssign:             "*=",
	SlashAssign:            "/=",
	PercentAssign:          "%=",
	StarStarAssign:         "**=",
	ShlAssign:              "<<=",
	ShrAssign:              ">>=",
	UShrAssign:             ">>>=",
	AmpAssign:              "&=",
	PipeAssign:             "|=",
	CaretAssign:            "^=",
	AndAndAssign:           "&&=",
	OrOrAssign:             "||=",
	QuestionQuestionAssign: "??=",
	FatArrow:               "=>",
	At:                     "@",
	KwBreak:                "break",
	KwCase:                 "case",
	KwCatch:                "catch",
	KwClass:                "class",
	KwConst:                "const",
	KwContinue:             "continue",
	KwDebugger:             "debugger",
	KwDefault:              "default",
	KwDelete:               "delete",
	KwDo:                   "do",
	KwElse:                 "else",
	KwEnum:                 "enum",
	KwExport:               "export",
	KwExtends:              "extends",
	KwFalse:                "false",
	KwFinally:              "finally",
	KwFor:                  "for",
	KwFunction:             "function",
	KwIf:                   "if",
	KwImport:               "import",
	KwIn:                   "in",
	KwInstanceof:           "instanceof",
	KwNew:                  "new",
	KwNull:                 "null",
	KwReturn:               "return",
	KwSuper:                "super",
	KwSwitch:               "switch",
	KwThis:                 "this",
	KwThrow:                "throw",
	KwTrue:                 "true",
	KwTry:                  "try",
	KwTypeof:               "typeof",
	KwVar:                  "var",
	KwVoid:                 "void",
	KwWhile:                "while",
	KwWith:                 "with",
	KwAbstract:             "abstract",
	KwAccessor:             "accessor",
	KwAny:                  "any",
	KwAs:                   "as",
	KwAsserts:              "asserts",
	KwAsync:                "async",
	KwAwait:                "await",
	KwBigint:               "bigint",
	KwBoolean:              "boolean",
	KwDeclare:              "declare",
	KwFrom:                 "from",
	KwGet:                  "get",
	KwGlobal:               "global",
	KwImplements:           "implements",
	KwInfer:                "infer",
	KwInterface:            "interface",
	KwIs:                   "is",
	KwKeyof:                "keyof",
	KwLet:                  "let",
	KwMeta:                 "meta",
	KwModule:               "module",
	KwNamespace:            "namespace",
	KwNever:                "never",
	KwNumber:               "number",
	KwObject:               "object",
	KwOf:                   "of",
	KwOut:                  "out",
	KwOverride:             "override",
	KwPackage:              "package",
	KwPrivate:              "private",
	KwProtected:            "protected",
	KwPublic:               "public",
	KwReadonly:             "readonly",
	KwRequire:              "require",
	KwSatisfies:            "satisfies",
	KwSet:                  "set",
	KwStatic:               "static",
	KwString:               "string",
	KwSymbol:               "symbol",
	KwTarget:               "target",
	KwType:                 "type",
	KwUndefined:            "undefined",
	KwUnique:               "unique",
	KwUnknown:              "unknown",
	KwUsing:                "using",
	KwYield:                "yield",
}
