package token

var keywords = map[string]Kind{
	"in":     KwIn,
	"struct": KwStruct,
	"enum":   KwEnum,
	"match":  KwMatch,
	"fn":     KwFn,
	"let":    KwLet,
	"pub":    KwPub,
}

// LookupKeyword returns the keyword kind for ident, if any. Keywords are
// case-sensitive; only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
