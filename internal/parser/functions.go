package parser

import "strings"

// builtinNames is the §4.G built-in function catalogue. Parsing uses it only
// to decide whether name(args) should be marked IsCall; the semantic
// analyzer and interpreter are the authorities on whether a call actually
// resolves (§4.E, §4.H).
var builtinNames = map[string]bool{
	"ABS": true, "ATN": true, "COS": true, "SIN": true, "TAN": true, "EXP": true,
	"FIX": true, "INT": true, "LOG": true, "RND": true, "SGN": true, "SQR": true,
	"ASC": true, "CHR$": true, "HEX$": true, "OCT$": true, "INSTR": true,
	"LEFT$": true, "LEN": true, "MID$": true, "RIGHT$": true, "SPACE$": true,
	"SPC": true, "STR$": true, "STRING$": true, "TAB": true, "VAL": true,
	"CDBL": true, "CINT": true, "CSNG": true, "CVD": true, "CVI": true, "CVS": true,
	"MKD$": true, "MKI$": true, "MKS$": true,
	"EOF": true, "LOC": true, "LOF": true, "LPOS": true, "POS": true,
	"INPUT$": true, "INKEY$": true,
	"FRE": true, "INP": true, "PEEK": true, "USR": true, "VARPTR": true,
}

// isKnownFunction reports whether name resolves to a built-in or a DEF FN
// name already seen by this Parser.
func (p *Parser) isKnownFunction(name string) bool {
	if builtinNames[name] {
		return true
	}
	if strings.HasPrefix(name, "FN") && len(name) > 2 {
		return true
	}
	return p.defFnNames[name]
}
