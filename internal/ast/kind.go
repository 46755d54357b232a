package ast

const (
	// Invalid is the zero Kind; no node carries it.
	Invalid Kind = iota

	// Structural kinds.
	// Program is the root of every tree.
	Program

	// Statement kinds.
	// EmptyStmt is a lone ';'.
	EmptyStmt
	BlockStmt
	ExprStmt
	// Directive is a prologue string such as "use strict".
	Directive
	IfStmt
	ForStmt
	ForInStmt
	// ForOfStmt carries FlagAwait for 'for await'.
	ForOfStmt
	WhileStmt
	DoWhileStmt
	ReturnStmt
	BreakStmt
	ContinueStmt
	ThrowStmt
	TryStmt
	CatchClause
	SwitchStmt
	// SwitchCase has no test for 'default'.
	SwitchCase
	LabeledStmt
	DebuggerStmt
	WithStmt
	// Skipped covers tokens discarded during recovery.
	Skipped
	// MissingStmt fills a statement slot the input left empty.
	MissingStmt

	// Declaration kinds.
	// VarDecl stores the keyword (var, let, const, using) in Op.
	VarDecl
	VarDeclarator
	FunctionDecl
	ClassDecl
	ClassBody
	// MethodDef stores its MethodKind in Aux.
	MethodDef
	PropertyDef
	StaticBlock
	IndexSignature
	ImportDecl
	ImportDefaultSpecifier
	ImportNamespaceSpecifier
	// ImportSpecifier leaves imported empty when no 'as' clause is present.
	ImportSpecifier
	ImportAttribute
	ExportNamedDecl
	ExportSpecifier
	ExportDefaultDecl
	ExportAllDecl
	// ExportAssignment is 'export = expr'.
	ExportAssignment
	// NamespaceExportDecl is 'export as namespace id'.
	NamespaceExportDecl
	ImportEqualsDecl
	// ExternalModuleRef is 'require("mod")' on the right of import =.
	ExternalModuleRef
	TypeAliasDecl
	InterfaceDecl
	InterfaceBody
	EnumDecl
	EnumMember
	// ModuleDecl covers 'namespace', 'module' and 'declare global'.
	ModuleDecl
	ModuleBlock

	// Expression kinds.
	Identifier
	PrivateIdentifier
	ThisExpr
	SuperExpr
	NullLit
	BoolLit
	// NumericLit stores its token.NumFormat in Aux.
	NumericLit
	// StringLit keeps the raw source text including quotes.
	StringLit
	RegexLit
	// TemplateLit alternates TemplateElement and expression parts.
	TemplateLit
	TemplateElement
	TaggedTemplate
	ArrayLit
	ObjectLit
	// Property omits key for shorthand properties and omits value for plain shorthand.
	Property
	SpreadElement
	FunctionExpr
	ArrowFunc
	ClassExpr
	UnaryExpr
	UpdateExpr
	BinaryExpr
	LogicalExpr
	AssignExpr
	ConditionalExpr
	CallExpr
	NewExpr
	MemberExpr
	// OptionalChain groups a member/call chain that contains '?.'.
	OptionalChain
	SequenceExpr
	ParenExpr
	AwaitExpr
	YieldExpr
	MetaProperty
	ImportCall
	Decorator
	AsExpr
	SatisfiesExpr
	NonNullExpr
	// TypeAssertion is the angle-bracket cast <T>expr.
	TypeAssertion
	InstantiationExpr
	// MissingExpr fills an expression slot the input left empty.
	MissingExpr

	// JSX kinds.
	JSXElement
	JSXOpeningElement
	JSXClosingElement
	JSXFragment
	JSXOpeningFragment
	JSXClosingFragment
	JSXAttribute
	JSXSpreadAttribute
	JSXExpressionContainer
	JSXEmptyExpr
	JSXText
	JSXSpreadChild
	JSXIdentifier
	JSXNamespacedName
	JSXMemberExpr

	// Pattern kinds.
	ObjectPattern
	PatternProperty
	ArrayPattern
	AssignPattern
	RestElement
	Param
	// MissingBinding fills a binding slot the input left empty.
	MissingBinding

	// Type kinds.
	TypeRef
	QualifiedName
	// KeywordType stores the keyword in Op.
	KeywordType
	ThisType
	LiteralType
	ArrayType
	TupleType
	NamedTupleMember
	OptionalType
	RestType
	UnionType
	IntersectionType
	FunctionType
	ConstructorType
	TypeLiteral
	PropertySignature
	MethodSignature
	CallSignature
	ConstructSignature
	TypeQuery
	// TypeOperator stores keyof, unique or readonly in Op.
	TypeOperator
	IndexedAccessType
	ConditionalType
	InferType
	MappedType
	TemplateLiteralType
	TypePredicate
	ImportType
	ParenType
	TypeParam
	ExprWithTypeArgs
	// MissingType fills a type slot the input left empty.
	MissingType

	// Structural kinds.
	// List holds the elements of a list slot.
	List
	// Hole is an elided array element.
	Hole

	kindCount
)

var kindNames = [...]string{
	Invalid:                  "Invalid",
	Program:                  "Program",
	EmptyStmt:                "EmptyStmt",
	BlockStmt:                "BlockStmt",
	ExprStmt:                 "ExprStmt",
	Directive:                "Directive",
	IfStmt:                   "IfStmt",
	ForStmt:                  "ForStmt",
	ForInStmt:                "ForInStmt",
	ForOfStmt:                "ForOfStmt",
	WhileStmt:                "WhileStmt",
	DoWhileStmt:              "DoWhileStmt",
	ReturnStmt:               "ReturnStmt",
	BreakStmt:                "BreakStmt",
	ContinueStmt:             "ContinueStmt",
	ThrowStmt:                "ThrowStmt",
	TryStmt:                  "TryStmt",
	CatchClause:              "CatchClause",
	SwitchStmt:               "SwitchStmt",
	SwitchCase:               "SwitchCase",
	LabeledStmt:              "LabeledStmt",
	DebuggerStmt:             "DebuggerStmt",
	WithStmt:                 "WithStmt",
	Skipped:                  "Skipped",
	MissingStmt:              "MissingStmt",
	VarDecl:                  "VarDecl",
	VarDeclarator:            "VarDeclarator",
	FunctionDecl:             "FunctionDecl",
	ClassDecl:                "ClassDecl",
	ClassBody:                "ClassBody",
	MethodDef:                "MethodDef",
	PropertyDef:              "PropertyDef",
	StaticBlock:              "StaticBlock",
	IndexSignature:           "IndexSignature",
	ImportDecl:               "ImportDecl",
	ImportDefaultSpecifier:   "ImportDefaultSpecifier",
	ImportNamespaceSpecifier: "ImportNamespaceSpecifier",
	ImportSpecifier:          "ImportSpecifier",
	ImportAttribute:          "ImportAttribute",
	ExportNamedDecl:          "ExportNamedDecl",
	ExportSpecifier:          "ExportSpecifier",
	ExportDefaultDecl:        "ExportDefaultDecl",
	ExportAllDecl:            "ExportAllDecl",
	ExportAssignment:         "ExportAssignment",
	NamespaceExportDecl:      "NamespaceExportDecl",
	ImportEqualsDecl:         "ImportEqualsDecl",
	ExternalModuleRef:        "ExternalModuleRef",
	TypeAliasDecl:            "TypeAliasDecl",
	InterfaceDecl:            "InterfaceDecl",
	InterfaceBody:            "InterfaceBody",
	EnumDecl:                 "EnumDecl",
	EnumMember:               "EnumMember",
	ModuleDecl:               "ModuleDecl",
	ModuleBlock:              "ModuleBlock",
	Identifier:               "Identifier",
	PrivateIdentifier:        "PrivateIdentifier",
	ThisExpr:                 "ThisExpr",
	SuperExpr:                "SuperExpr",
	NullLit:                  "NullLit",
	BoolLit:                  "BoolLit",
	NumericLit:               "NumericLit",
	StringLit:                "StringLit",
	RegexLit:                 "RegexLit",
	TemplateLit:              "TemplateLit",
	TemplateElement:          "TemplateElement",
	TaggedTemplate:           "TaggedTemplate",
	ArrayLit:                 "ArrayLit",
	ObjectLit:                "ObjectLit",
	Property:                 "Property",
	SpreadElement:            "SpreadElement",
	FunctionExpr:             "FunctionExpr",
	ArrowFunc:                "ArrowFunc",
	ClassExpr:                "ClassExpr",
	UnaryExpr:                "UnaryExpr",
	UpdateExpr:               "UpdateExpr",
	BinaryExpr:               "BinaryExpr",
	LogicalExpr:              "LogicalExpr",
	AssignExpr:               "AssignExpr",
	ConditionalExpr:          "ConditionalExpr",
	CallExpr:                 "CallExpr",
	NewExpr:                  "NewExpr",
	MemberExpr:               "MemberExpr",
	OptionalChain:            "OptionalChain",
	SequenceExpr:             "SequenceExpr",
	ParenExpr:                "ParenExpr",
	AwaitExpr:                "AwaitExpr",
	YieldExpr:                "YieldExpr",
	MetaProperty:             "MetaProperty",
	ImportCall:               "ImportCall",
	Decorator:                "Decorator",
	AsExpr:                   "AsExpr",
	SatisfiesExpr:            "SatisfiesExpr",
	NonNullExpr:              "NonNullExpr",
	TypeAssertion:            "TypeAssertion",
	InstantiationExpr:        "InstantiationExpr",
	MissingExpr:              "MissingExpr",
	JSXElement:               "JSXElement",
	JSXOpeningElement:        "JSXOpeningElement",
	JSXClosingElement:        "JSXClosingElement",
	JSXFragment:              "JSXFragment",
	JSXOpeningFragment:       "JSXOpeningFragment",
	JSXClosingFragment:       "JSXClosingFragment",
	JSXAttribute:             "JSXAttribute",
	JSXSpreadAttribute:       "JSXSpreadAttribute",
	JSXExpressionContainer:   "JSXExpressionContainer",
	JSXEmptyExpr:             "JSXEmptyExpr",
	JSXText:                  "JSXText",
	JSXSpreadChild:           "JSXSpreadChild",
	JSXIdentifier:            "JSXIdentifier",
	JSXNamespacedName:        "JSXNamespacedName",
	JSXMemberExpr:            "JSXMemberExpr",
	ObjectPattern:            "ObjectPattern",
	PatternProperty:          "PatternProperty",
	ArrayPattern:             "ArrayPattern",
	AssignPattern:            "AssignPattern",
	RestElement:              "RestElement",
	Param:                    "Param",
	MissingBinding:           "MissingBinding",
	TypeRef:                  "TypeRef",
	QualifiedName:            "QualifiedName",
	KeywordType:              "KeywordType",
	ThisType:                 "ThisType",
	LiteralType:              "LiteralType",
	ArrayType:                "ArrayType",
	TupleType:                "TupleType",
	NamedTupleMember:         "NamedTupleMember",
	OptionalType:             "OptionalType",
	RestType:                 "RestType",
	UnionType:                "UnionType",
	IntersectionType:         "IntersectionType",
	FunctionType:             "FunctionType",
	ConstructorType:          "ConstructorType",
	TypeLiteral:              "TypeLiteral",
	PropertySignature:        "PropertySignature",
	MethodSignature:          "MethodSignature",
	CallSignature:            "CallSignature",
	ConstructSignature:       "ConstructSignature",
	TypeQuery:                "TypeQuery",
	TypeOperator:             "TypeOperator",
	IndexedAccessType:        "IndexedAccessType",
	ConditionalType:          "ConditionalType",
	InferType:                "InferType",
	MappedType:               "MappedType",
	TemplateLiteralType:      "TemplateLiteralType",
	TypePredicate:            "TypePredicate",
	ImportType:               "ImportType",
	ParenType:                "ParenType",
	TypeParam:                "TypeParam",
	ExprWithTypeArgs:         "ExprWithTypeArgs",
	MissingType:              "MissingType",
	List:                     "List",
	Hole:                     "Hole",
}
