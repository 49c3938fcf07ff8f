package parser

import (
	"fmt"

	"github.com/cwbudde/go-mbasic/internal/ast"
	"github.com/cwbudde/go-mbasic/internal/lexer"
)

// parseStatement dispatches on the leading keyword of the current statement
// (§4.D: "statements are dispatched on leading keyword").
func (p *Parser) parseStatement() ast.Statement {
	tok := p.cur()
	switch tok.Type {
	case lexer.LET:
		return p.parseLetStatement(true)
	case lexer.IDENT:
		return p.parseLetStatement(false)
	case lexer.PRINT, lexer.LPRINT:
		return p.parsePrintStatement()
	case lexer.SEMICOLON:
		// '?' lexes as PRINT directly; a bare ';' here would be malformed,
		// but guard anyway rather than loop.
		p.advance()
		return nil
	case lexer.INPUT:
		return p.parseInputStatement(false)
	case lexer.LINE:
		return p.parseLineInputStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.NEXT:
		return p.parseNextStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.WEND:
		s := &ast.WendStatement{}
		s.Token = tok
		p.advance()
		return s
	case lexer.GOTO:
		return p.parseGotoStatement()
	case lexer.GOSUB:
		return p.parseGosubStatement()
	case lexer.RETURN:
		s := &ast.ReturnStatement{}
		s.Token = tok
		p.advance()
		return s
	case lexer.ON:
		return p.parseOnStatement()
	case lexer.DIM:
		return p.parseDimStatement()
	case lexer.ERASE:
		return p.parseEraseStatement()
	case lexer.DATA:
		return p.parseDataStatement()
	case lexer.READ:
		return p.parseReadStatement()
	case lexer.RESTORE:
		return p.parseRestoreStatement()
	case lexer.DEF:
		return p.parseDefFnStatement()
	case lexer.DEFINT:
		return p.parseDefTypeStatement(ast.TypeInteger)
	case lexer.DEFSNG:
		return p.parseDefTypeStatement(ast.TypeSingle)
	case lexer.DEFDBL:
		return p.parseDefTypeStatement(ast.TypeDouble)
	case lexer.DEFSTR:
		return p.parseDefTypeStatement(ast.TypeString)
	case lexer.OPEN:
		return p.parseOpenStatement()
	case lexer.CLOSE:
		return p.parseCloseStatement()
	case lexer.FIELD:
		return p.parseFieldStatement()
	case lexer.GET:
		return p.parseGetPutStatement(false)
	case lexer.PUT:
		return p.parseGetPutStatement(true)
	case lexer.LSET:
		return p.parseSetStatement(false)
	case lexer.RSET:
		return p.parseSetStatement(true)
	case lexer.WRITE:
		return p.parseWriteStatement()
	case lexer.COMMENT:
		s := &ast.RemStatement{Text: tok.Literal}
		s.Token = tok
		p.advance()
		return s
	case lexer.END:
		s := &ast.EndStatement{}
		s.Token = tok
		p.advance()
		return s
	case lexer.STOP:
		s := &ast.StopStatement{}
		s.Token = tok
		p.advance()
		return s
	case lexer.CONT:
		s := &ast.ContStatement{}
		s.Token = tok
		p.advance()
		return s
	case lexer.OPTION:
		return p.parseOptionBaseStatement()
	case lexer.RANDOMIZE:
		return p.parseRandomizeStatement()
	case lexer.SWAP:
		return p.parseSwapStatement()
	case lexer.POKE:
		return p.parsePokeStatement()
	case lexer.OUTK:
		return p.parseOutStatement()
	case lexer.WAIT:
		return p.parseWaitStatement()
	case lexer.CALL:
		return p.parseCallStatement()
	case lexer.TRON:
		s := &ast.TronStatement{}
		s.Token = tok
		p.advance()
		return s
	case lexer.TROFF:
		s := &ast.TroffStatement{}
		s.Token = tok
		p.advance()
		return s
	case lexer.WIDTH:
		return p.parseWidthStatement()
	case lexer.NULLSTMT:
		s := &ast.NullStatement{}
		s.Token = tok
		p.advance()
		s.Value = p.parseExpression(LOWEST)
		return s
	case lexer.COMMON:
		return p.parseCommonStatement()
	case lexer.ERRORK:
		return p.parseErrorStatement()
	case lexer.RESUME:
		return p.parseResumeStatement()
	case lexer.CHAIN:
		return p.parseChainStatement()
	case lexer.RUN:
		return p.parseRunStatement()
	case lexer.NEW:
		s := &ast.NewStatement{}
		s.Token = tok
		p.advance()
		return s
	case lexer.LIST:
		return p.parseListStatement(false)
	case lexer.LLIST:
		return p.parseListStatement(true)
	case lexer.LOAD:
		return p.parseFileNameStatement(tok)
	case lexer.SAVE:
		return p.parseFileNameStatement(tok)
	case lexer.MERGE:
		return p.parseFileNameStatement(tok)
	case lexer.KILL:
		return p.parseFileNameStatement(tok)
	case lexer.NAME:
		return p.parseNameStatement()
	case lexer.FILES:
		return p.parseFilesStatement()
	default:
		p.addError(tok.Pos, fmt.Sprintf("unexpected token %s at start of statement", tok.Type), ErrInvalidStatement)
		p.advance()
		return nil
	}
}

// parseLetStatement parses LET target = value, or the bare "target = value"
// form (explicit==false).
func (p *Parser) parseLetStatement(explicit bool) ast.Statement {
	tok := p.cur()
	if explicit {
		p.advance() // consume LET
	}
	target := p.parseAssignTarget()
	if !p.curIs(lexer.ASSIGN) {
		p.addError(p.cur().Pos, "expected '=' in assignment", ErrUnexpectedToken)
		return nil
	}
	p.advance()
	value := p.parseExpression(LOWEST)
	s := &ast.LetStatement{Explicit: explicit, Target: target, Value: value}
	s.Token = tok
	return s
}

// parseAssignTarget parses an identifier or array-element target without
// going through the function-call resolution path used for expressions.
func (p *Parser) parseAssignTarget() ast.Expression {
	tok := p.cur()
	name := tok.StringValue
	suffix := tok.Suffix
	p.advance()
	if p.curIs(lexer.LPAREN) {
		p.advance()
		var args []ast.Expression
		if !p.curIs(lexer.RPAREN) {
			args = append(args, p.parseExpression(LOWEST))
			for p.curIs(lexer.COMMA) {
				p.advance()
				args = append(args, p.parseExpression(LOWEST))
			}
		}
		if p.curIs(lexer.RPAREN) {
			p.advance()
		}
		return &ast.IndexExpression{Token: tok, Name: name, Suffix: suffix, Args: args}
	}
	return &ast.Identifier{Token: tok, Name: name, Suffix: suffix}
}

func (p *Parser) parsePrintStatement() ast.Statement {
	tok := p.cur()
	isLPrint := tok.Type == lexer.LPRINT
	p.advance()

	s := &ast.PrintStatement{IsLPrint: isLPrint}
	s.Token = tok

	if p.curIs(lexer.HASH) {
		p.advance()
		s.File = p.parseExpression(LOWEST)
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}

	for !p.curIs(lexer.COLON) && !p.curIs(lexer.LINENUM) && !p.curIs(lexer.EOF) {
		item := ast.PrintItem{Expr: p.parseExpression(LOWEST)}
		if p.curIs(lexer.COMMA) {
			item.Sep = ","
			p.advance()
		} else if p.curIs(lexer.SEMICOLON) {
			item.Sep = ";"
			p.advance()
		}
		s.Items = append(s.Items, item)
		if item.Sep == "" {
			break
		}
	}
	if n := len(s.Items); n > 0 && s.Items[n-1].Sep != "" {
		s.SuppressNewline = true
	}
	return s
}

func (p *Parser) parseInputStatement(isLineInput bool) ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.InputStatement{IsLineInput: isLineInput}
	s.Token = tok

	if p.curIs(lexer.HASH) {
		p.advance()
		s.File = p.parseExpression(LOWEST)
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	} else if p.curIs(lexer.STRING) {
		strTok := p.cur()
		s.Prompt = &ast.StringLiteral{Token: strTok, Value: strTok.StringValue}
		p.advance()
		if p.curIs(lexer.SEMICOLON) {
			s.PromptNoMark = true
			p.advance()
		} else if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}

	s.Targets = append(s.Targets, p.parseAssignTarget())
	for p.curIs(lexer.COMMA) {
		p.advance()
		s.Targets = append(s.Targets, p.parseAssignTarget())
	}
	return s
}

func (p *Parser) parseLineInputStatement() ast.Statement {
	p.advance() // consume LINE
	if !p.curIs(lexer.INPUT) {
		p.addError(p.cur().Pos, "expected INPUT after LINE", ErrUnexpectedToken)
		return nil
	}
	return p.parseInputStatement(true)
}

// parseIfStatement parses IF cond THEN (stmts|line) [ELSE (stmts|line)].
func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	cond := p.parseExpression(LOWEST)
	s := &ast.IfStatement{Cond: cond}
	s.Token = tok

	if !p.curIs(lexer.THEN) {
		p.addError(p.cur().Pos, "expected THEN", ErrUnexpectedToken)
		return s
	}
	p.advance()

	if p.curIs(lexer.INT) || p.curIs(lexer.LINENUM) {
		s.ThenLine = int(p.cur().IntValue)
		p.advance()
	} else {
		s.ThenStmts = p.parseInlineStatementList()
	}

	if p.curIs(lexer.ELSE) {
		p.advance()
		s.HasElse = true
		if p.curIs(lexer.INT) || p.curIs(lexer.LINENUM) {
			s.ElseLine = int(p.cur().IntValue)
			p.advance()
		} else {
			s.ElseStmts = p.parseInlineStatementList()
		}
	}
	return s
}

// parseInlineStatementList parses a colon-separated run of statements that
// stops before ELSE, the next line, or EOF (used by THEN/ELSE clauses).
func (p *Parser) parseInlineStatementList() []ast.Statement {
	var stmts []ast.Statement
	for {
		if p.curIs(lexer.ELSE) || p.curIs(lexer.LINENUM) || p.curIs(lexer.EOF) {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.curIs(lexer.COLON) {
			p.advance()
			continue
		}
		break
	}
	return stmts
}

func (p *Parser) parseForStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	if !p.curIs(lexer.IDENT) {
		p.addError(p.cur().Pos, "expected control variable after FOR", ErrUnexpectedToken)
		return nil
	}
	varTok := p.cur()
	control := &ast.Identifier{Token: varTok, Name: varTok.StringValue, Suffix: varTok.Suffix}
	p.advance()

	if !p.curIs(lexer.ASSIGN) {
		p.addError(p.cur().Pos, "expected '=' after FOR control variable", ErrUnexpectedToken)
		return nil
	}
	p.advance()
	start := p.parseExpression(LOWEST)

	if !p.curIs(lexer.TO) {
		p.addError(p.cur().Pos, "expected TO in FOR statement", ErrUnexpectedToken)
		return nil
	}
	p.advance()
	end := p.parseExpression(LOWEST)

	s := &ast.ForStatement{Var: control, Start: start, End: end}
	s.Token = tok

	if p.curIs(lexer.STEP) {
		p.advance()
		s.Step = p.parseExpression(LOWEST)
	}
	return s
}

func (p *Parser) parseNextStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.NextStatement{}
	s.Token = tok
	for p.curIs(lexer.IDENT) {
		idTok := p.cur()
		s.Vars = append(s.Vars, &ast.Identifier{Token: idTok, Name: idTok.StringValue, Suffix: idTok.Suffix})
		p.advance()
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return s
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	cond := p.parseExpression(LOWEST)
	s := &ast.WhileStatement{Cond: cond}
	s.Token = tok
	return s
}

func (p *Parser) parseLineTargetList() []int {
	var lines []int
	for {
		if !(p.curIs(lexer.INT) || p.curIs(lexer.LINENUM)) {
			p.addError(p.cur().Pos, "expected line number", ErrBadLineNumber)
			break
		}
		lines = append(lines, int(p.cur().IntValue))
		p.advance()
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return lines
}

func (p *Parser) parseGotoStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	lines := p.parseLineTargetList()
	line := 0
	if len(lines) > 0 {
		line = lines[0]
	}
	s := &ast.GotoStatement{Line: line}
	s.Token = tok
	return s
}

func (p *Parser) parseGosubStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	lines := p.parseLineTargetList()
	line := 0
	if len(lines) > 0 {
		line = lines[0]
	}
	s := &ast.GosubStatement{Line: line}
	s.Token = tok
	return s
}

// parseOnStatement parses ON <expr> GOTO/GOSUB l1,l2,... and ON ERROR GOTO n.
func (p *Parser) parseOnStatement() ast.Statement {
	tok := p.cur()
	p.advance()

	if p.curIs(lexer.ERRORK) {
		p.advance()
		if !p.curIs(lexer.GOTO) {
			p.addError(p.cur().Pos, "expected GOTO after ON ERROR", ErrUnexpectedToken)
			return nil
		}
		p.advance()
		lines := p.parseLineTargetList()
		line := 0
		if len(lines) > 0 {
			line = lines[0]
		}
		s := &ast.OnErrorGotoStatement{Line: line}
		s.Token = tok
		return s
	}

	selector := p.parseExpression(LOWEST)
	isGosub := false
	switch {
	case p.curIs(lexer.GOTO):
		p.advance()
	case p.curIs(lexer.GOSUB):
		isGosub = true
		p.advance()
	default:
		p.addError(p.cur().Pos, "expected GOTO or GOSUB after ON expression", ErrUnexpectedToken)
		return nil
	}
	lines := p.parseLineTargetList()
	s := &ast.OnGotoStatement{Selector: selector, Lines: lines, IsGosub: isGosub}
	s.Token = tok
	return s
}

// parseDimStatement parses DIM name(bounds), name2(bounds), ...
func (p *Parser) parseDimStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.DimStatement{}
	s.Token = tok
	for {
		decl, ok := p.parseArrayDecl()
		if !ok {
			break
		}
		s.Decls = append(s.Decls, decl)
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return s
}

func (p *Parser) parseArrayDecl() (ast.ArrayDecl, bool) {
	if !p.curIs(lexer.IDENT) {
		p.addError(p.cur().Pos, "expected array name", ErrUnexpectedToken)
		return ast.ArrayDecl{}, false
	}
	tok := p.cur()
	decl := ast.ArrayDecl{Name: tok.StringValue, Suffix: tok.Suffix}
	p.advance()
	if !p.curIs(lexer.LPAREN) {
		p.addError(p.cur().Pos, "expected '(' after array name in DIM", ErrUnexpectedToken)
		return decl, false
	}
	p.advance()
	decl.Bounds = append(decl.Bounds, p.parseExpression(LOWEST))
	for p.curIs(lexer.COMMA) {
		p.advance()
		decl.Bounds = append(decl.Bounds, p.parseExpression(LOWEST))
	}
	if p.curIs(lexer.RPAREN) {
		p.advance()
	}
	return decl, true
}

func (p *Parser) parseEraseStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.EraseStatement{}
	s.Token = tok
	for p.curIs(lexer.IDENT) {
		s.Names = append(s.Names, p.cur().StringValue+suffixString(p.cur().Suffix))
		p.advance()
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return s
}

// parseDataStatement consumes raw literal tokens until the next colon/line
// boundary; DATA items are not evaluated as expressions (a bare "-1" or an
// unquoted string like "HELLO WORLD" must survive untouched).
func (p *Parser) parseDataStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.DataStatement{}
	s.Token = tok
	for !p.curIs(lexer.COLON) && !p.curIs(lexer.LINENUM) && !p.curIs(lexer.EOF) {
		item := p.parseDataItem()
		s.Items = append(s.Items, item)
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return s
}

func (p *Parser) parseDataItem() ast.DataItem {
	tok := p.cur()
	switch tok.Type {
	case lexer.STRING:
		p.advance()
		return ast.DataItem{Text: tok.StringValue, IsQuoted: true}
	case lexer.MINUS:
		p.advance()
		next := p.cur()
		p.advance()
		return ast.DataItem{Text: "-" + next.Literal}
	default:
		p.advance()
		return ast.DataItem{Text: tok.Literal}
	}
}

func (p *Parser) parseReadStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.ReadStatement{}
	s.Token = tok
	s.Targets = append(s.Targets, p.parseAssignTarget())
	for p.curIs(lexer.COMMA) {
		p.advance()
		s.Targets = append(s.Targets, p.parseAssignTarget())
	}
	return s
}

func (p *Parser) parseRestoreStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.RestoreStatement{}
	s.Token = tok
	if p.curIs(lexer.INT) || p.curIs(lexer.LINENUM) {
		s.Line = int(p.cur().IntValue)
		s.HasLine = true
		p.advance()
	}
	return s
}

// parseDefFnStatement parses DEF FNname(params) = expr.
func (p *Parser) parseDefFnStatement() ast.Statement {
	tok := p.cur()
	p.advance() // consume DEF
	if !p.curIs(lexer.FN) {
		p.addError(p.cur().Pos, "expected FN after DEF", ErrUnexpectedToken)
		return nil
	}
	p.advance() // consume FN
	if !p.curIs(lexer.IDENT) {
		p.addError(p.cur().Pos, "expected function name after DEF FN", ErrUnexpectedToken)
		return nil
	}
	nameTok := p.cur()
	name := "FN" + nameTok.StringValue
	suffix := nameTok.Suffix
	p.advance()
	p.defFnNames[name] = true

	s := &ast.DefFnStatement{Name: name, Suffix: suffix}
	s.Token = tok

	if p.curIs(lexer.LPAREN) {
		p.advance()
		if !p.curIs(lexer.RPAREN) {
			pTok := p.cur()
			s.Params = append(s.Params, &ast.Identifier{Token: pTok, Name: pTok.StringValue, Suffix: pTok.Suffix})
			p.advance()
			for p.curIs(lexer.COMMA) {
				p.advance()
				pTok = p.cur()
				s.Params = append(s.Params, &ast.Identifier{Token: pTok, Name: pTok.StringValue, Suffix: pTok.Suffix})
				p.advance()
			}
		}
		if p.curIs(lexer.RPAREN) {
			p.advance()
		}
	}
	if !p.curIs(lexer.ASSIGN) {
		p.addError(p.cur().Pos, "expected '=' in DEF FN", ErrUnexpectedToken)
		return s
	}
	p.advance()
	s.Body = p.parseExpression(LOWEST)
	return s
}

// parseDefTypeStatement parses DEFINT/DEFSNG/DEFDBL/DEFSTR letter ranges and
// folds them into the program's DEF-type map immediately (§4.D).
func (p *Parser) parseDefTypeStatement(tag ast.TypeTag) ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.DefTypeStatement{Type: tag}
	s.Token = tok

	for p.curIs(lexer.IDENT) {
		from := p.cur().StringValue[0]
		p.advance()
		to := from
		if p.curIs(lexer.MINUS) {
			p.advance()
			if p.curIs(lexer.IDENT) {
				to = p.cur().StringValue[0]
				p.advance()
			}
		}
		s.Ranges = append(s.Ranges, ast.DefTypeRange{From: from, To: to})
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}

	for _, r := range s.Ranges {
		for c := r.From; c <= r.To; c++ {
			p.program.DefTypeMap[c] = tag
		}
	}
	return s
}

func (p *Parser) parseOpenStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.OpenStatement{}
	s.Token = tok
	s.FileName = p.parseExpression(LOWEST)

	if p.curIs(lexer.FOR) {
		p.advance()
		if p.curIs(lexer.IDENT) {
			s.Mode = p.cur().StringValue
			p.advance()
		} else {
			s.Mode = p.cur().Type.String()
			p.advance()
		}
	} else {
		s.Mode = "RANDOM"
	}

	if p.curIs(lexer.AS) {
		p.advance()
	}
	if p.curIs(lexer.HASH) {
		p.advance()
	}
	s.FileNumber = p.parseExpression(LOWEST)

	if p.curIs(lexer.COMMA) {
		p.advance()
		s.RecordLen = p.parseExpression(LOWEST)
	}
	return s
}

func (p *Parser) parseCloseStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.CloseStatement{}
	s.Token = tok
	if p.curIs(lexer.HASH) {
		p.advance()
	}
	if !p.curIs(lexer.COLON) && !p.curIs(lexer.LINENUM) && !p.curIs(lexer.EOF) {
		s.FileNumbers = append(s.FileNumbers, p.parseExpression(LOWEST))
		for p.curIs(lexer.COMMA) {
			p.advance()
			if p.curIs(lexer.HASH) {
				p.advance()
			}
			s.FileNumbers = append(s.FileNumbers, p.parseExpression(LOWEST))
		}
	}
	return s
}

func (p *Parser) parseFieldStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.FieldStatement{}
	s.Token = tok
	if p.curIs(lexer.HASH) {
		p.advance()
	}
	s.FileNumber = p.parseExpression(LOWEST)
	for p.curIs(lexer.COMMA) {
		p.advance()
		width := p.parseExpression(LOWEST)
		if p.curIs(lexer.AS) {
			p.advance()
		}
		varTok := p.cur()
		v := &ast.Identifier{Token: varTok, Name: varTok.StringValue, Suffix: varTok.Suffix}
		p.advance()
		s.Fields = append(s.Fields, ast.FieldItem{Width: width, Var: v})
	}
	return s
}

func (p *Parser) parseGetPutStatement(isPut bool) ast.Statement {
	tok := p.cur()
	p.advance()
	if p.curIs(lexer.HASH) {
		p.advance()
	}
	fileNum := p.parseExpression(LOWEST)
	var recNum ast.Expression
	if p.curIs(lexer.COMMA) {
		p.advance()
		recNum = p.parseExpression(LOWEST)
	}
	if isPut {
		s := &ast.PutStatement{FileNumber: fileNum, RecordNum: recNum}
		s.Token = tok
		return s
	}
	s := &ast.GetStatement{FileNumber: fileNum, RecordNum: recNum}
	s.Token = tok
	return s
}

func (p *Parser) parseSetStatement(isRSet bool) ast.Statement {
	tok := p.cur()
	p.advance()
	varTok := p.cur()
	target := &ast.Identifier{Token: varTok, Name: varTok.StringValue, Suffix: varTok.Suffix}
	p.advance()
	if !p.curIs(lexer.ASSIGN) {
		p.addError(p.cur().Pos, "expected '=' in LSET/RSET", ErrUnexpectedToken)
	} else {
		p.advance()
	}
	value := p.parseExpression(LOWEST)
	if isRSet {
		s := &ast.RSetStatement{Target: target, Value: value}
		s.Token = tok
		return s
	}
	s := &ast.LSetStatement{Target: target, Value: value}
	s.Token = tok
	return s
}

func (p *Parser) parseWriteStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.WriteStatement{}
	s.Token = tok
	if p.curIs(lexer.HASH) {
		p.advance()
		s.File = p.parseExpression(LOWEST)
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	s.Items = append(s.Items, p.parseExpression(LOWEST))
	for p.curIs(lexer.COMMA) {
		p.advance()
		s.Items = append(s.Items, p.parseExpression(LOWEST))
	}
	return s
}

func (p *Parser) parseOptionBaseStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	if !p.curIs(lexer.BASE) {
		p.addError(p.cur().Pos, "expected BASE after OPTION", ErrUnexpectedToken)
		return nil
	}
	p.advance()
	base := 0
	if p.curIs(lexer.INT) {
		base = int(p.cur().IntValue)
		p.advance()
	}
	s := &ast.OptionBaseStatement{Base: base}
	s.Token = tok
	return s
}

func (p *Parser) parseRandomizeStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.RandomizeStatement{}
	s.Token = tok
	if !p.curIs(lexer.COLON) && !p.curIs(lexer.LINENUM) && !p.curIs(lexer.EOF) {
		s.Seed = p.parseExpression(LOWEST)
	}
	return s
}

func (p *Parser) parseSwapStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	a := p.parseAssignTarget()
	if p.curIs(lexer.COMMA) {
		p.advance()
	}
	b := p.parseAssignTarget()
	s := &ast.SwapStatement{A: a, B: b}
	s.Token = tok
	return s
}

func (p *Parser) parsePokeStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	addr := p.parseExpression(LOWEST)
	if p.curIs(lexer.COMMA) {
		p.advance()
	}
	val := p.parseExpression(LOWEST)
	s := &ast.PokeStatement{Address: addr, Value: val}
	s.Token = tok
	return s
}

func (p *Parser) parseOutStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	port := p.parseExpression(LOWEST)
	if p.curIs(lexer.COMMA) {
		p.advance()
	}
	val := p.parseExpression(LOWEST)
	s := &ast.OutStatement{Port: port, Value: val}
	s.Token = tok
	return s
}

func (p *Parser) parseWaitStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	addr := p.parseExpression(LOWEST)
	if p.curIs(lexer.COMMA) {
		p.advance()
	}
	mask := p.parseExpression(LOWEST)
	s := &ast.WaitStatement{Address: addr, Mask: mask}
	s.Token = tok
	if p.curIs(lexer.COMMA) {
		p.advance()
		s.Invert = p.parseExpression(LOWEST)
	}
	return s
}

func (p *Parser) parseCallStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	addr := p.parseExpression(LOWEST)
	s := &ast.CallStatement{Address: addr}
	s.Token = tok
	if p.curIs(lexer.COMMA) {
		p.advance()
		s.Args = append(s.Args, p.parseExpression(LOWEST))
		for p.curIs(lexer.COMMA) {
			p.advance()
			s.Args = append(s.Args, p.parseExpression(LOWEST))
		}
	}
	return s
}

func (p *Parser) parseWidthStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.WidthStatement{}
	s.Token = tok
	if p.curIs(lexer.HASH) {
		p.advance()
		s.File = p.parseExpression(LOWEST)
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	s.Value = p.parseExpression(LOWEST)
	return s
}

func (p *Parser) parseCommonStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.CommonStatement{}
	s.Token = tok
	for p.curIs(lexer.IDENT) {
		vTok := p.cur()
		s.Vars = append(s.Vars, &ast.Identifier{Token: vTok, Name: vTok.StringValue, Suffix: vTok.Suffix})
		p.advance()
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return s
}

// parseErrorStatement parses the ERROR n simulate-error statement (the
// ERRORK token also introduces ON ERROR GOTO, handled in parseOnStatement).
func (p *Parser) parseErrorStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	code := p.parseExpression(LOWEST)
	s := &ast.ErrorStatement{Code: code}
	s.Token = tok
	return s
}

func (p *Parser) parseResumeStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.ResumeStatement{Mode: ast.ResumeSame}
	s.Token = tok
	switch {
	case p.curIs(lexer.NEXT):
		s.Mode = ast.ResumeNext
		p.advance()
	case p.curIs(lexer.INT) || p.curIs(lexer.LINENUM):
		s.Mode = ast.ResumeLine
		s.Line = int(p.cur().IntValue)
		p.advance()
	}
	return s
}

func (p *Parser) parseChainStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.ChainStatement{}
	s.Token = tok
	if p.curIs(lexer.MERGE) {
		s.Merge = true
		p.advance()
	}
	s.FileName = p.parseExpression(LOWEST)
	if p.curIs(lexer.COMMA) {
		p.advance()
		s.Line = p.parseExpression(LOWEST)
	}
	return s
}

func (p *Parser) parseRunStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.RunStatement{}
	s.Token = tok
	if p.curIs(lexer.STRING) {
		s.FileName = p.parseExpression(LOWEST)
	} else if p.curIs(lexer.INT) || p.curIs(lexer.LINENUM) {
		s.Line = p.parseExpression(LOWEST)
	}
	return s
}

func (p *Parser) parseListStatement(isLList bool) ast.Statement {
	tok := p.cur()
	p.advance()
	from, to, hasFrom, hasTo := 0, 0, false, false
	if p.curIs(lexer.INT) || p.curIs(lexer.LINENUM) {
		from = int(p.cur().IntValue)
		hasFrom = true
		p.advance()
	}
	if p.curIs(lexer.MINUS) {
		p.advance()
		if p.curIs(lexer.INT) || p.curIs(lexer.LINENUM) {
			to = int(p.cur().IntValue)
			hasTo = true
			p.advance()
		}
	}
	if isLList {
		s := &ast.LListStatement{From: from, To: to, HasFrom: hasFrom, HasTo: hasTo}
		s.Token = tok
		return s
	}
	s := &ast.ListStatement{From: from, To: to, HasFrom: hasFrom, HasTo: hasTo}
	s.Token = tok
	return s
}

func (p *Parser) parseFileNameStatement(tok lexer.Token) ast.Statement {
	p.advance()
	name := p.parseExpression(LOWEST)
	switch tok.Type {
	case lexer.LOAD:
		s := &ast.LoadStatement{FileName: name}
		s.Token = tok
		return s
	case lexer.SAVE:
		s := &ast.SaveStatement{FileName: name}
		s.Token = tok
		return s
	case lexer.MERGE:
		s := &ast.MergeStatement{FileName: name}
		s.Token = tok
		return s
	default: // KILL
		s := &ast.KillStatement{FileName: name}
		s.Token = tok
		return s
	}
}

func (p *Parser) parseNameStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	old := p.parseExpression(LOWEST)
	if p.curIs(lexer.AS) {
		p.advance()
	}
	newName := p.parseExpression(LOWEST)
	s := &ast.NameStatement{OldName: old, NewName: newName}
	s.Token = tok
	return s
}

func (p *Parser) parseFilesStatement() ast.Statement {
	tok := p.cur()
	p.advance()
	s := &ast.FilesStatement{}
	s.Token = tok
	if !p.curIs(lexer.COLON) && !p.curIs(lexer.LINENUM) && !p.curIs(lexer.EOF) {
		s.Pattern = p.parseExpression(LOWEST)
	}
	return s
}
