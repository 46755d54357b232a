package ast

// schemas declares the slots of every kind once. Consumers never infer
// slot classes from node contents.
var schemas = [kindCount]Schema{
	Program:                  {Category: CatMisc, Slots: []Slot{{"body", Visitor, SlotList}}},
	EmptyStmt:                {Category: CatStmt},
	BlockStmt:                {Category: CatStmt, Slots: []Slot{{"body", Visitor, SlotList}}},
	ExprStmt:                 {Category: CatStmt, Slots: []Slot{{"expr", Visitor, 0}}},
	Directive:                {Category: CatStmt, Slots: []Slot{{"expr", Visitor, 0}}},
	IfStmt:                   {Category: CatStmt, Slots: []Slot{{"test", Visitor, 0}, {"cons", Visitor, 0}, {"alt", Visitor, SlotOptional}}},
	ForStmt:                  {Category: CatStmt, Slots: []Slot{{"init", Visitor, SlotOptional}, {"test", Visitor, SlotOptional}, {"update", Visitor, SlotOptional}, {"body", Visitor, 0}}},
	ForInStmt:                {Category: CatStmt, Slots: []Slot{{"left", Visitor, 0}, {"right", Visitor, 0}, {"body", Visitor, 0}}},
	ForOfStmt:                {Category: CatStmt, Slots: []Slot{{"left", Visitor, 0}, {"right", Visitor, 0}, {"body", Visitor, 0}}},
	WhileStmt:                {Category: CatStmt, Slots: []Slot{{"test", Visitor, 0}, {"body", Visitor, 0}}},
	DoWhileStmt:              {Category: CatStmt, Slots: []Slot{{"body", Visitor, 0}, {"test", Visitor, 0}}},
	ReturnStmt:               {Category: CatStmt, Slots: []Slot{{"arg", Visitor, SlotOptional}}},
	BreakStmt:                {Category: CatStmt, Slots: []Slot{{"label", Visitor, SlotOptional}}},
	ContinueStmt:             {Category: CatStmt, Slots: []Slot{{"label", Visitor, SlotOptional}}},
	ThrowStmt:                {Category: CatStmt, Slots: []Slot{{"arg", Visitor, 0}}},
	TryStmt:                  {Category: CatStmt, Slots: []Slot{{"block", Visitor, 0}, {"handler", Visitor, SlotOptional}, {"finalizer", Visitor, SlotOptional}}},
	CatchClause:              {Category: CatStmt, Slots: []Slot{{"param", Binding, SlotOptional}, {"type", Visitor, SlotOptional}, {"body", Visitor, 0}}},
	SwitchStmt:               {Category: CatStmt, Slots: []Slot{{"disc", Visitor, 0}, {"cases", Visitor, SlotList}}},
	SwitchCase:               {Category: CatStmt, Slots: []Slot{{"test", Visitor, SlotOptional}, {"body", Visitor, SlotList}}},
	LabeledStmt:              {Category: CatStmt, Slots: []Slot{{"label", Binding, 0}, {"body", Visitor, 0}}},
	DebuggerStmt:             {Category: CatStmt},
	WithStmt:                 {Category: CatStmt, Slots: []Slot{{"object", Visitor, 0}, {"body", Visitor, 0}}},
	Skipped:                  {Category: CatStmt},
	MissingStmt:              {Category: CatStmt},
	VarDecl:                  {Category: CatDecl, Slots: []Slot{{"decls", Visitor, SlotList}}},
	VarDeclarator:            {Category: CatDecl, Slots: []Slot{{"id", Binding, 0}, {"type", Visitor, SlotOptional}, {"init", Visitor, SlotOptional}}},
	FunctionDecl:             {Category: CatDecl, Slots: []Slot{{"id", Binding, SlotOptional}, {"typeParams", Visitor, SlotList|SlotOptional}, {"params", Binding, SlotList}, {"returnType", Visitor, SlotOptional}, {"body", Visitor, SlotOptional}}},
	ClassDecl:                {Category: CatDecl, Slots: []Slot{{"decorators", Visitor, SlotList|SlotOptional}, {"id", Binding, SlotOptional}, {"typeParams", Visitor, SlotList|SlotOptional}, {"superClass", Visitor, SlotOptional}, {"superTypeArgs", Visitor, SlotList|SlotOptional}, {"implements", Visitor, SlotList|SlotOptional}, {"body", Visitor, 0}}},
	ClassBody:                {Category: CatDecl, Slots: []Slot{{"members", Visitor, SlotList}}},
	MethodDef:                {Category: CatDecl, Slots: []Slot{{"decorators", Visitor, SlotList|SlotOptional}, {"key", Visitor, 0}, {"typeParams", Visitor, SlotList|SlotOptional}, {"params", Binding, SlotList}, {"returnType", Visitor, SlotOptional}, {"body", Visitor, SlotOptional}}},
	PropertyDef:              {Category: CatDecl, Slots: []Slot{{"decorators", Visitor, SlotList|SlotOptional}, {"key", Visitor, 0}, {"type", Visitor, SlotOptional}, {"value", Visitor, SlotOptional}}},
	StaticBlock:              {Category: CatDecl, Slots: []Slot{{"body", Visitor, SlotList}}},
	IndexSignature:           {Category: CatDecl, Slots: []Slot{{"params", Binding, SlotList}, {"type", Visitor, SlotOptional}}},
	ImportDecl:               {Category: CatDecl, Slots: []Slot{{"specifiers", Visitor, SlotList|SlotOptional}, {"source", Visitor, 0}, {"attributes", Visitor, SlotList|SlotOptional}}},
	ImportDefaultSpecifier:   {Category: CatDecl, Slots: []Slot{{"local", Binding, 0}}},
	ImportNamespaceSpecifier: {Category: CatDecl, Slots: []Slot{{"local", Binding, 0}}},
	ImportSpecifier:          {Category: CatDecl, Slots: []Slot{{"imported", Visitor, SlotOptional}, {"local", Binding, 0}}},
	ImportAttribute:          {Category: CatDecl, Slots: []Slot{{"key", Visitor, 0}, {"value", Visitor, 0}}},
	ExportNamedDecl:          {Category: CatDecl, Slots: []Slot{{"decl", Visitor, SlotOptional}, {"specifiers", Visitor, SlotList|SlotOptional}, {"source", Visitor, SlotOptional}, {"attributes", Visitor, SlotList|SlotOptional}}},
	ExportSpecifier:          {Category: CatDecl, Slots: []Slot{{"local", Visitor, 0}, {"exported", Visitor, SlotOptional}}},
	ExportDefaultDecl:        {Category: CatDecl, Slots: []Slot{{"decl", Visitor, 0}}},
	ExportAllDecl:            {Category: CatDecl, Slots: []Slot{{"exported", Visitor, SlotOptional}, {"source", Visitor, 0}, {"attributes", Visitor, SlotList|SlotOptional}}},
	ExportAssignment:         {Category: CatDecl, Slots: []Slot{{"expr", Visitor, 0}}},
	NamespaceExportDecl:      {Category: CatDecl, Slots: []Slot{{"id", Binding, 0}}},
	ImportEqualsDecl:         {Category: CatDecl, Slots: []Slot{{"id", Binding, 0}, {"ref", Visitor, 0}}},
	ExternalModuleRef:        {Category: CatDecl, Slots: []Slot{{"expr", Visitor, 0}}},
	TypeAliasDecl:            {Category: CatDecl, Slots: []Slot{{"id", Binding, 0}, {"typeParams", Visitor, SlotList|SlotOptional}, {"type", Visitor, 0}}},
	InterfaceDecl:            {Category: CatDecl, Slots: []Slot{{"id", Binding, 0}, {"typeParams", Visitor, SlotList|SlotOptional}, {"extends", Visitor, SlotList|SlotOptional}, {"body", Visitor, 0}}},
	InterfaceBody:            {Category: CatDecl, Slots: []Slot{{"members", Visitor, SlotList}}},
	EnumDecl:                 {Category: CatDecl, Slots: []Slot{{"id", Binding, 0}, {"members", Visitor, SlotList}}},
	EnumMember:               {Category: CatDecl, Slots: []Slot{{"key", Visitor, 0}, {"init", Visitor, SlotOptional}}},
	ModuleDecl:               {Category: CatDecl, Slots: []Slot{{"id", Binding, 0}, {"body", Visitor, SlotOptional}}},
	ModuleBlock:              {Category: CatDecl, Slots: []Slot{{"body", Visitor, SlotList}}},
	Identifier:               {Category: CatExpr},
	PrivateIdentifier:        {Category: CatExpr},
	ThisExpr:                 {Category: CatExpr},
	SuperExpr:                {Category: CatExpr},
	NullLit:                  {Category: CatExpr},
	BoolLit:                  {Category: CatExpr},
	NumericLit:               {Category: CatExpr},
	StringLit:                {Category: CatExpr},
	RegexLit:                 {Category: CatExpr},
	TemplateLit:              {Category: CatExpr, Slots: []Slot{{"parts", Visitor, SlotList}}},
	TemplateElement:          {Category: CatExpr},
	TaggedTemplate:           {Category: CatExpr, Slots: []Slot{{"tag", Visitor, 0}, {"typeArgs", Visitor, SlotList|SlotOptional}, {"quasi", Visitor, 0}}},
	ArrayLit:                 {Category: CatExpr, Slots: []Slot{{"elements", Visitor, SlotList}}},
	ObjectLit:                {Category: CatExpr, Slots: []Slot{{"props", Visitor, SlotList}}},
	Property:                 {Category: CatExpr, Slots: []Slot{{"key", Visitor, SlotOptional}, {"value", Visitor, SlotOptional}}},
	SpreadElement:            {Category: CatExpr, Slots: []Slot{{"arg", Visitor, 0}}},
	FunctionExpr:             {Category: CatExpr, Slots: []Slot{{"id", Binding, SlotOptional}, {"typeParams", Visitor, SlotList|SlotOptional}, {"params", Binding, SlotList}, {"returnType", Visitor, SlotOptional}, {"body", Visitor, 0}}},
	ArrowFunc:                {Category: CatExpr, Slots: []Slot{{"typeParams", Visitor, SlotList|SlotOptional}, {"params", Binding, SlotList}, {"returnType", Visitor, SlotOptional}, {"body", Visitor, 0}}},
	ClassExpr:                {Category: CatExpr, Slots: []Slot{{"decorators", Visitor, SlotList|SlotOptional}, {"id", Binding, SlotOptional}, {"typeParams", Visitor, SlotList|SlotOptional}, {"superClass", Visitor, SlotOptional}, {"superTypeArgs", Visitor, SlotList|SlotOptional}, {"implements", Visitor, SlotList|SlotOptional}, {"body", Visitor, 0}}},
	UnaryExpr:                {Category: CatExpr, Slots: []Slot{{"arg", Visitor, 0}}},
	UpdateExpr:               {Category: CatExpr, Slots: []Slot{{"arg", Visitor, 0}}},
	BinaryExpr:               {Category: CatExpr, Slots: []Slot{{"left", Visitor, 0}, {"right", Visitor, 0}}},
	LogicalExpr:              {Category: CatExpr, Slots: []Slot{{"left", Visitor, 0}, {"right", Visitor, 0}}},
	AssignExpr:               {Category: CatExpr, Slots: []Slot{{"left", Visitor, 0}, {"right", Visitor, 0}}},
	ConditionalExpr:          {Category: CatExpr, Slots: []Slot{{"test", Visitor, 0}, {"cons", Visitor, 0}, {"alt", Visitor, 0}}},
	CallExpr:                 {Category: CatExpr, Slots: []Slot{{"callee", Visitor, 0}, {"typeArgs", Visitor, SlotList|SlotOptional}, {"args", Visitor, SlotList}}},
	NewExpr:                  {Category: CatExpr, Slots: []Slot{{"callee", Visitor, 0}, {"typeArgs", Visitor, SlotList|SlotOptional}, {"args", Visitor, SlotList|SlotOptional}}},
	MemberExpr:               {Category: CatExpr, Slots: []Slot{{"object", Visitor, 0}, {"prop", Visitor, 0}}},
	OptionalChain:            {Category: CatExpr, Slots: []Slot{{"expr", Visitor, 0}}},
	SequenceExpr:             {Category: CatExpr, Slots: []Slot{{"exprs", Visitor, SlotList}}},
	ParenExpr:                {Category: CatExpr, Slots: []Slot{{"expr", Visitor, 0}}},
	AwaitExpr:                {Category: CatExpr, Slots: []Slot{{"arg", Visitor, 0}}},
	YieldExpr:                {Category: CatExpr, Slots: []Slot{{"arg", Visitor, SlotOptional}}},
	MetaProperty:             {Category: CatExpr, Slots: []Slot{{"meta", Visitor, 0}, {"prop", Visitor, 0}}},
	ImportCall:               {Category: CatExpr, Slots: []Slot{{"source", Visitor, 0}, {"options", Visitor, SlotOptional}}},
	Decorator:                {Category: CatExpr, Slots: []Slot{{"expr", Visitor, 0}}},
	AsExpr:                   {Category: CatExpr, Slots: []Slot{{"expr", Visitor, 0}, {"type", Visitor, 0}}},
	SatisfiesExpr:            {Category: CatExpr, Slots: []Slot{{"expr", Visitor, 0}, {"type", Visitor, 0}}},
	NonNullExpr:              {Category: CatExpr, Slots: []Slot{{"expr", Visitor, 0}}},
	TypeAssertion:            {Category: CatExpr, Slots: []Slot{{"type", Visitor, 0}, {"expr", Visitor, 0}}},
	InstantiationExpr:        {Category: CatExpr, Slots: []Slot{{"expr", Visitor, 0}, {"typeArgs", Visitor, SlotList}}},
	MissingExpr:              {Category: CatExpr},
	JSXElement:               {Category: CatJSX, Slots: []Slot{{"opening", Visitor, 0}, {"children", Visitor, SlotList}, {"closing", Visitor, SlotOptional}}},
	JSXOpeningElement:        {Category: CatJSX, Slots: []Slot{{"name", Visitor, 0}, {"typeArgs", Visitor, SlotList|SlotOptional}, {"attrs", Visitor, SlotList}}},
	JSXClosingElement:        {Category: CatJSX, Slots: []Slot{{"name", Visitor, 0}}},
	JSXFragment:              {Category: CatJSX, Slots: []Slot{{"opening", Visitor, 0}, {"children", Visitor, SlotList}, {"closing", Visitor, SlotOptional}}},
	JSXOpeningFragment:       {Category: CatJSX},
	JSXClosingFragment:       {Category: CatJSX},
	JSXAttribute:             {Category: CatJSX, Slots: []Slot{{"name", Visitor, 0}, {"value", Visitor, SlotOptional}}},
	JSXSpreadAttribute:       {Category: CatJSX, Slots: []Slot{{"arg", Visitor, 0}}},
	JSXExpressionContainer:   {Category: CatJSX, Slots: []Slot{{"expr", Visitor, 0}}},
	JSXEmptyExpr:             {Category: CatJSX},
	JSXText:                  {Category: CatJSX},
	JSXSpreadChild:           {Category: CatJSX, Slots: []Slot{{"expr", Visitor, 0}}},
	JSXIdentifier:            {Category: CatJSX},
	JSXNamespacedName:        {Category: CatJSX, Slots: []Slot{{"ns", Visitor, 0}, {"name", Visitor, 0}}},
	JSXMemberExpr:            {Category: CatJSX, Slots: []Slot{{"object", Visitor, 0}, {"prop", Visitor, 0}}},
	ObjectPattern:            {Category: CatPattern, Slots: []Slot{{"props", Binding, SlotList}}},
	PatternProperty:          {Category: CatPattern, Slots: []Slot{{"key", Visitor, SlotOptional}, {"value", Binding, 0}}},
	ArrayPattern:             {Category: CatPattern, Slots: []Slot{{"elements", Binding, SlotList}}},
	AssignPattern:            {Category: CatPattern, Slots: []Slot{{"left", Binding, 0}, {"right", Visitor, 0}}},
	RestElement:              {Category: CatPattern, Slots: []Slot{{"arg", Binding, 0}, {"type", Visitor, SlotOptional}}},
	Param:                    {Category: CatPattern, Slots: []Slot{{"decorators", Visitor, SlotList|SlotOptional}, {"binding", Binding, 0}, {"type", Visitor, SlotOptional}, {"init", Visitor, SlotOptional}}},
	MissingBinding:           {Category: CatPattern},
	TypeRef:                  {Category: CatType, Slots: []Slot{{"name", Visitor, 0}, {"typeArgs", Visitor, SlotList|SlotOptional}}},
	QualifiedName:            {Category: CatType, Slots: []Slot{{"left", Visitor, 0}, {"right", Visitor, 0}}},
	KeywordType:              {Category: CatType},
	ThisType:                 {Category: CatType},
	LiteralType:              {Category: CatType, Slots: []Slot{{"literal", Visitor, 0}}},
	ArrayType:                {Category: CatType, Slots: []Slot{{"elem", Visitor, 0}}},
	TupleType:                {Category: CatType, Slots: []Slot{{"elems", Visitor, SlotList}}},
	NamedTupleMember:         {Category: CatType, Slots: []Slot{{"label", Visitor, 0}, {"type", Visitor, 0}}},
	OptionalType:             {Category: CatType, Slots: []Slot{{"type", Visitor, 0}}},
	RestType:                 {Category: CatType, Slots: []Slot{{"type", Visitor, 0}}},
	UnionType:                {Category: CatType, Slots: []Slot{{"types", Visitor, SlotList}}},
	IntersectionType:         {Category: CatType, Slots: []Slot{{"types", Visitor, SlotList}}},
	FunctionType:             {Category: CatType, Slots: []Slot{{"typeParams", Visitor, SlotList|SlotOptional}, {"params", Binding, SlotList}, {"returnType", Visitor, 0}}},
	ConstructorType:          {Category: CatType, Slots: []Slot{{"typeParams", Visitor, SlotList|SlotOptional}, {"params", Binding, SlotList}, {"returnType", Visitor, 0}}},
	TypeLiteral:              {Category: CatType, Slots: []Slot{{"members", Visitor, SlotList}}},
	PropertySignature:        {Category: CatType, Slots: []Slot{{"key", Visitor, 0}, {"type", Visitor, SlotOptional}}},
	MethodSignature:          {Category: CatType, Slots: []Slot{{"key", Visitor, 0}, {"typeParams", Visitor, SlotList|SlotOptional}, {"params", Binding, SlotList}, {"returnType", Visitor, SlotOptional}}},
	CallSignature:            {Category: CatType, Slots: []Slot{{"typeParams", Visitor, SlotList|SlotOptional}, {"params", Binding, SlotList}, {"returnType", Visitor, SlotOptional}}},
	ConstructSignature:       {Category: CatType, Slots: []Slot{{"typeParams", Visitor, SlotList|SlotOptional}, {"params", Binding, SlotList}, {"returnType", Visitor, SlotOptional}}},
	TypeQuery:                {Category: CatType, Slots: []Slot{{"expr", Visitor, 0}, {"typeArgs", Visitor, SlotList|SlotOptional}}},
	TypeOperator:             {Category: CatType, Slots: []Slot{{"type", Visitor, 0}}},
	IndexedAccessType:        {Category: CatType, Slots: []Slot{{"object", Visitor, 0}, {"index", Visitor, 0}}},
	ConditionalType:          {Category: CatType, Slots: []Slot{{"check", Visitor, 0}, {"extends", Visitor, 0}, {"trueType", Visitor, 0}, {"falseType", Visitor, 0}}},
	InferType:                {Category: CatType, Slots: []Slot{{"param", Binding, 0}}},
	MappedType:               {Category: CatType, Slots: []Slot{{"param", Binding, 0}, {"nameType", Visitor, SlotOptional}, {"type", Visitor, SlotOptional}}},
	TemplateLiteralType:      {Category: CatType, Slots: []Slot{{"parts", Visitor, SlotList}}},
	TypePredicate:            {Category: CatType, Slots: []Slot{{"param", Visitor, 0}, {"type", Visitor, SlotOptional}}},
	ImportType:               {Category: CatType, Slots: []Slot{{"arg", Visitor, 0}, {"qualifier", Visitor, SlotOptional}, {"typeArgs", Visitor, SlotList|SlotOptional}}},
	ParenType:                {Category: CatType, Slots: []Slot{{"type", Visitor, 0}}},
	TypeParam:                {Category: CatType, Slots: []Slot{{"name", Binding, 0}, {"constraint", Visitor, SlotOptional}, {"default", Visitor, SlotOptional}}},
	ExprWithTypeArgs:         {Category: CatType, Slots: []Slot{{"expr", Visitor, 0}, {"typeArgs", Visitor, SlotList|SlotOptional}}},
	MissingType:              {Category: CatType},
	List:                     {Category: CatMisc},
	Hole:                     {Category: CatMisc},
}
