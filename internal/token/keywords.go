package token

var reserved = map[string]Kind{
	"break":      KwBreak,
	"case":       KwCase,
	"catch":      KwCatch,
	"class":      KwClass,
	"const":      KwConst,
	"continue":   KwContinue,
	"debugger":   KwDebugger,
	"default":    KwDefault,
	"delete":     KwDelete,
	"do":         KwDo,
	"else":       KwElse,
	"enum":       KwEnum,
	"export":     KwExport,
	"extends":    KwExtends,
	"false":      KwFalse,
	"finally":    KwFinally,
	"for":        KwFor,
	"function":   KwFunction,
	"if":         KwIf,
	"import":     KwImport,
	"in":         KwIn,
	"instanceof": KwInstanceof,
	"new":        KwNew,
	"null":       KwNull,
	"return":     KwReturn,
	"super":      KwSuper,
	"switch":     KwSwitch,
	"this":       KwThis,
	"throw":      KwThrow,
	"true":       KwTrue,
	"try":        KwTry,
	"typeof":     KwTypeof,
	"var":        KwVar,
	"void":       KwVoid,
	"while":      KwWhile,
	"with":       KwWith,
}

var contextual = map[string]Kind{
	"abstract":   KwAbstract,
	"accessor":   KwAccessor,
	"any":        KwAny,
	"as":         KwAs,
	"asserts":    KwAsserts,
	"async":      KwAsync,
	"await":      KwAwait,
	"bigint":     KwBigint,
	"boolean":    KwBoolean,
	"declare":    KwDeclare,
	"from":       KwFrom,
	"get":        KwGet,
	"global":     KwGlobal,
	"implements": KwImplements,
	"infer":      KwInfer,
	"interface":  KwInterface,
	"is":         KwIs,
	"keyof":      KwKeyof,
	"let":        KwLet,
	"meta":       KwMeta,
	"module":     KwModule,
	"namespace":  KwNamespace,
	"never":      KwNever,
	"number":     KwNumber,
	"object":     KwObject,
	"of":         KwOf,
	"out":        KwOut,
	"override":   KwOverride,
	"package":    KwPackage,
	"private":    KwPrivate,
	"protected":  KwProtected,
	"public":     KwPublic,
	"readonly":   KwReadonly,
	"require":    KwRequire,
	"satisfies":  KwSatisfies,
	"set":        KwSet,
	"static":     KwStatic,
	"string":     KwString,
	"symbol":     KwSymbol,
	"target":     KwTarget,
	"type":       KwType,
	"undefined":  KwUndefined,
	"unique":     KwUnique,
	"unknown":    KwUnknown,
	"using":      KwUsing,
	"yield":      KwYield,
}

// LookupKeyword reports the keyword kind for ident, if any. Keywords are
// case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	if k, ok := reserved[ident]; ok {
		return k, true
	}
	k, ok := contextual[ident]
	return k, ok
}
