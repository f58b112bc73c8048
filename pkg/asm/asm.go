// Package asm is a two-pass assembler for the Intel 8080 instruction set,
// enough of it to write the short monitor and test programs deposited into
// the bus by device boot helpers.
package asm

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// form describes how an instruction's operands are encoded.
type form int

const (
	formNone      form = iota // opcode only
	formSrc                   // register in bits 0-2
	formDst                   // register in bits 3-5
	formMov                   // destination in bits 3-5, source in bits 0-2
	formDstImm8               // register in bits 3-5, then a byte
	formPair                  // B, D, H or SP in bits 4-5
	formPairPSW               // B, D, H or PSW in bits 4-5
	formPairBD                // B or D in bits 4-5
	formPairImm16             // register pair, then a word
	formImm8                  // a byte
	formImm16                 // a word
)

type opcode struct {
	code byte
	form form
}

var opcodes = map[string]opcode{
	"NOP":  {0x00, formNone},
	"HLT":  {0x76, formNone},
	"RET":  {0xC9, formNone},
	"RZ":   {0xC8, formNone},
	"RNZ":  {0xC0, formNone},
	"EI":   {0xFB, formNone},
	"DI":   {0xF3, formNone},
	"RLC":  {0x07, formNone},
	"RRC":  {0x0F, formNone},
	"RAL":  {0x17, formNone},
	"RAR":  {0x1F, formNone},
	"DAA":  {0x27, formNone},
	"CMA":  {0x2F, formNone},
	"STC":  {0x37, formNone},
	"CMC":  {0x3F, formNone},
	"XCHG": {0xEB, formNone},
	"XTHL": {0xE3, formNone},
	"PCHL": {0xE9, formNone},
	"SPHL": {0xF9, formNone},

	"ADD": {0x80, formSrc},
	"ADC": {0x88, formSrc},
	"SUB": {0x90, formSrc},
	"SBB": {0x98, formSrc},
	"ANA": {0xA0, formSrc},
	"XRA": {0xA8, formSrc},
	"ORA": {0xB0, formSrc},
	"CMP": {0xB8, formSrc},

	"INR": {0x04, formDst},
	"DCR": {0x05, formDst},

	"MOV": {0x40, formMov},
	"MVI": {0x06, formDstImm8},

	"INX": {0x03, formPair},
	"DCX": {0x0B, formPair},
	"DAD": {0x09, formPair},

	"PUSH": {0xC5, formPairPSW},
	"POP":  {0xC1, formPairPSW},

	"STAX": {0x02, formPairBD},
	"LDAX": {0x0A, formPairBD},

	"LXI": {0x01, formPairImm16},

	"ADI": {0xC6, formImm8},
	"ACI": {0xCE, formImm8},
	"SUI": {0xD6, formImm8},
	"SBI": {0xDE, formImm8},
	"ANI": {0xE6, formImm8},
	"XRI": {0xEE, formImm8},
	"ORI": {0xF6, formImm8},
	"CPI": {0xFE, formImm8},
	"OUT": {0xD3, formImm8},
	"IN":  {0xDB, formImm8},

	"JMP":  {0xC3, formImm16},
	"JNZ":  {0xC2, formImm16},
	"JZ":   {0xCA, formImm16},
	"JNC":  {0xD2, formImm16},
	"JC":   {0xDA, formImm16},
	"JPO":  {0xE2, formImm16},
	"JPE":  {0xEA, formImm16},
	"JP":   {0xF2, formImm16},
	"JM":   {0xFA, formImm16},
	"CALL": {0xCD, formImm16},
	"CNZ":  {0xC4, formImm16},
	"CZ":   {0xCC, formImm16},
	"LDA":  {0x3A, formImm16},
	"STA":  {0x32, formImm16},
	"LHLD": {0x2A, formImm16},
	"SHLD": {0x22, formImm16},
}

var registers = map[string]byte{
	"B": 0, "C": 1, "D": 2, "E": 3, "H": 4, "L": 5, "M": 6, "A": 7,
}

type Assembler struct {
	labels map[string]uint16
}

type parsedLine struct {
	lineNo   int
	labels   []string
	mnemonic string
	operands []string
}

func NewAssembler() *Assembler {
	return &Assembler{
		labels: make(map[string]uint16),
	}
}

// Assemble translates source into a memory image starting at address 0 and
// a map from the address of each emitted line to its line number.
func Assemble(code string) ([]byte, map[uint16]int, error) {
	return NewAssembler().Assemble(code)
}

func (a *Assembler) Assemble(code string) ([]byte, map[uint16]int, error) {
	lines := strings.Split(code, "\n")

	if err := a.pass1(lines); err != nil {
		return nil, nil, err
	}

	return a.pass2(lines)
}

func (a *Assembler) pass1(lines []string) error {
	var address uint32

	for i, raw := range lines {
		lineNo := i + 1
		p, err := parseLine(raw, lineNo)
		if err != nil {
			return err
		}

		for _, lbl := range p.labels {
			if address > 0xFFFF {
				return fmt.Errorf("label '%s' on line %d points past addressable memory", lbl, lineNo)
			}
			key := normalizeLabel(lbl)
			if _, exists := a.labels[key]; exists {
				return fmt.Errorf("duplicate label '%s' on line %d", lbl, lineNo)
			}
			a.labels[key] = uint16(address)
		}

		switch p.mnemonic {
		case "":
			continue
		case "ORG":
			target, err := parseOrigin(p, lineNo)
			if err != nil {
				return err
			}
			if uint32(target) < address {
				return fmt.Errorf("cannot move origin backward on line %d", lineNo)
			}
			address = uint32(target)
			continue
		case "DB":
			n, err := dataLength(p.operands, lineNo)
			if err != nil {
				return err
			}
			address += n
		case "DW":
			if len(p.operands) == 0 {
				return fmt.Errorf("DW expects at least one operand on line %d", lineNo)
			}
			address += uint32(2 * len(p.operands))
		default:
			length, ok := instructionLength(p.mnemonic)
			if !ok {
				return fmt.Errorf("unknown instruction on line %d: %s", lineNo, p.mnemonic)
			}
			address += uint32(length)
		}

		if address > 0x10000 {
			return fmt.Errorf("program too large near line %d", lineNo)
		}
	}

	return nil
}

func (a *Assembler) pass2(lines []string) ([]byte, map[uint16]int, error) {
	program := make([]byte, 0)
	sourceMap := make(map[uint16]int)

	for i, raw := range lines {
		lineNo := i + 1
		p, err := parseLine(raw, lineNo)
		if err != nil {
			return nil, nil, err
		}

		if p.mnemonic == "" {
			continue
		}

		if p.mnemonic == "ORG" {
			target, err := parseOrigin(p, lineNo)
			if err != nil {
				return nil, nil, err
			}
			padding := int(target) - len(program)
			if padding < 0 {
				return nil, nil, fmt.Errorf("cannot move origin backward on line %d", lineNo)
			}
			program = append(program, make([]byte, padding)...)
			continue
		}

		sourceMap[uint16(len(program))] = lineNo

		switch p.mnemonic {
		case "DB":
			for _, op := range p.operands {
				if s, ok := quoted(op); ok {
					program = append(program, s...)
					continue
				}
				v, err := a.parseImmediate(op, lineNo)
				if err != nil {
					return nil, nil, err
				}
				if v > 0xFF {
					return nil, nil, fmt.Errorf("byte out of range on line %d: %s", lineNo, op)
				}
				program = append(program, byte(v))
			}
			continue
		case "DW":
			for _, op := range p.operands {
				v, err := a.parseImmediate(op, lineNo)
				if err != nil {
					return nil, nil, err
				}
				program = append(program, byte(v), byte(v>>8))
			}
			continue
		}

		code, err := a.encode(p)
		if err != nil {
			return nil, nil, err
		}
		program = append(program, code...)
	}

	return program, sourceMap, nil
}

func (a *Assembler) encode(p parsedLine) ([]byte, error) {
	op, ok := opcodes[p.mnemonic]
	if !ok {
		return nil, fmt.Errorf("unknown instruction on line %d: %s", p.lineNo, p.mnemonic)
	}
	ops := p.operands
	if want := operandCount(op.form); len(ops) != want {
		return nil, fmt.Errorf("%s expects %d operands on line %d", p.mnemonic, want, p.lineNo)
	}

	switch op.form {
	case formNone:
		return []byte{op.code}, nil

	case formSrc, formDst:
		r, err := parseRegister(ops[0], p.lineNo)
		if err != nil {
			return nil, err
		}
		if op.form == formDst {
			r <<= 3
		}
		return []byte{op.code | r}, nil

	case formMov:
		dst, err := parseRegister(ops[0], p.lineNo)
		if err != nil {
			return nil, err
		}
		src, err := parseRegister(ops[1], p.lineNo)
		if err != nil {
			return nil, err
		}
		if dst == 6 && src == 6 {
			return nil, fmt.Errorf("MOV M,M is not an instruction on line %d", p.lineNo)
		}
		return []byte{op.code | dst<<3 | src}, nil

	case formDstImm8:
		r, err := parseRegister(ops[0], p.lineNo)
		if err != nil {
			return nil, err
		}
		v, err := a.parseByte(ops[1], p.lineNo)
		if err != nil {
			return nil, err
		}
		return []byte{op.code | r<<3, v}, nil

	case formPair, formPairPSW, formPairBD:
		rp, err := parsePair(ops[0], op.form, p.lineNo)
		if err != nil {
			return nil, err
		}
		return []byte{op.code | rp<<4}, nil

	case formPairImm16:
		rp, err := parsePair(ops[0], formPair, p.lineNo)
		if err != nil {
			return nil, err
		}
		v, err := a.parseImmediate(ops[1], p.lineNo)
		if err != nil {
			return nil, err
		}
		return []byte{op.code | rp<<4, byte(v), byte(v >> 8)}, nil

	case formImm8:
		v, err := a.parseByte(ops[0], p.lineNo)
		if err != nil {
			return nil, err
		}
		return []byte{op.code, v}, nil

	case formImm16:
		v, err := a.parseImmediate(ops[0], p.lineNo)
		if err != nil {
			return nil, err
		}
		return []byte{op.code, byte(v), byte(v >> 8)}, nil
	}

	return nil, fmt.Errorf("unknown instruction on line %d: %s", p.lineNo, p.mnemonic)
}

func operandCount(f form) int {
	switch f {
	case formNone:
		return 0
	case formMov, formDstImm8, formPairImm16:
		return 2
	default:
		return 1
	}
}

func parseOrigin(p parsedLine, lineNo int) (uint16, error) {
	if len(p.operands) != 1 {
		return 0, fmt.Errorf("ORG expects exactly one operand on line %d", lineNo)
	}
	v, err := parseNumber(p.operands[0])
	if err != nil {
		return 0, fmt.Errorf("invalid ORG value on line %d: %s", lineNo, p.operands[0])
	}
	if v > 0xFFFF {
		return 0, fmt.Errorf("ORG out of range on line %d: %s", lineNo, p.operands[0])
	}
	return uint16(v), nil
}

func dataLength(operands []string, lineNo int) (uint32, error) {
	if len(operands) == 0 {
		return 0, fmt.Errorf("DB expects at least one operand on line %d", lineNo)
	}
	var n uint32
	for _, op := range operands {
		if s, ok := quoted(op); ok {
			n += uint32(len(s))
			continue
		}
		n++
	}
	return n, nil
}

// quoted returns the contents of a string operand written in double quotes,
// or of a single quoted operand longer than one character.
func quoted(op string) (string, bool) {
	if len(op) >= 2 && op[0] == '"' && op[len(op)-1] == '"' {
		return op[1 : len(op)-1], true
	}
	if len(op) > 3 && op[0] == '\'' && op[len(op)-1] == '\'' {
		return op[1 : len(op)-1], true
	}
	return "", false
}

func parseLine(raw string, lineNo int) (parsedLine, error) {
	p := parsedLine{lineNo: lineNo}

	line := strings.TrimSpace(stripComments(raw))
	if line == "" {
		return p, nil
	}

	for {
		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			break
		}

		beforeColon := strings.TrimSpace(line[:colon])
		if strings.ContainsAny(beforeColon, " \t'\"") {
			break
		}

		if !isIdentifier(beforeColon) {
			return p, fmt.Errorf("invalid label '%s' on line %d", beforeColon, lineNo)
		}

		p.labels = append(p.labels, beforeColon)
		line = strings.TrimSpace(line[colon+1:])
		if line == "" {
			return p, nil
		}
	}

	mnemonic, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		mnemonic, rest = line[:i], line[i+1:]
	}
	p.mnemonic = strings.TrimPrefix(strings.ToUpper(mnemonic), ".")

	operands, err := splitOperands(rest)
	if err != nil {
		return p, fmt.Errorf("%v on line %d", err, lineNo)
	}
	p.operands = operands

	return p, nil
}

// splitOperands splits on commas outside quotes and trims each operand.
func splitOperands(s string) ([]string, error) {
	var out []string
	var cur strings.Builder
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			cur.WriteByte(c)
		case c == ',':
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated string literal")
	}

	last := strings.TrimSpace(cur.String())
	if last == "" && len(out) == 0 {
		return nil, nil
	}
	out = append(out, last)
	for _, op := range out {
		if op == "" {
			return nil, fmt.Errorf("empty operand")
		}
	}
	return out, nil
}

// stripComments removes a ';' comment that is not inside a quoted operand.
func stripComments(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ';':
			return line[:i]
		}
	}
	return line
}

func parseRegister(token string, lineNo int) (byte, error) {
	if r, ok := registers[strings.ToUpper(token)]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("invalid register '%s' on line %d", token, lineNo)
}

func parsePair(token string, f form, lineNo int) (byte, error) {
	switch strings.ToUpper(token) {
	case "B":
		return 0, nil
	case "D":
		return 1, nil
	case "H":
		if f != formPairBD {
			return 2, nil
		}
	case "SP":
		if f == formPair {
			return 3, nil
		}
	case "PSW":
		if f == formPairPSW {
			return 3, nil
		}
	}
	return 0, fmt.Errorf("invalid register pair '%s' on line %d", token, lineNo)
}

// parseNumber accepts Intel style hex (0CC00H), binary (1010B), 0x/0b
// prefixed values, decimal and single character literals ('A').
func parseNumber(token string) (uint64, error) {
	if len(token) == 3 && token[0] == '\'' && token[2] == '\'' {
		return uint64(token[1]), nil
	}

	upper := strings.ToUpper(token)
	if len(upper) > 1 && unicode.IsDigit(rune(upper[0])) {
		switch upper[len(upper)-1] {
		case 'H':
			return strconv.ParseUint(upper[:len(upper)-1], 16, 32)
		case 'B':
			if !strings.HasPrefix(upper, "0X") {
				return strconv.ParseUint(upper[:len(upper)-1], 2, 32)
			}
		}
	}
	if strings.HasPrefix(upper, "0X") {
		return strconv.ParseUint(upper[2:], 16, 32)
	}
	return strconv.ParseUint(token, 10, 32)
}

func (a *Assembler) parseImmediate(token string, lineNo int) (uint16, error) {
	if value, err := parseNumber(token); err == nil {
		if value > 0xFFFF {
			return 0, fmt.Errorf("immediate out of range on line %d: %s", lineNo, token)
		}
		return uint16(value), nil
	}

	label := normalizeLabel(token)
	if addr, ok := a.labels[label]; ok {
		return addr, nil
	}

	if isIdentifier(token) {
		return 0, fmt.Errorf("undefined label '%s' on line %d", token, lineNo)
	}

	return 0, fmt.Errorf("invalid immediate '%s' on line %d", token, lineNo)
}

func (a *Assembler) parseByte(token string, lineNo int) (byte, error) {
	v, err := a.parseImmediate(token, lineNo)
	if err != nil {
		return 0, err
	}
	if v > 0xFF {
		return 0, fmt.Errorf("byte out of range on line %d: %s", lineNo, token)
	}
	return byte(v), nil
}

// instructionLength returns the byte length of an instruction: one opcode
// byte plus any immediate data.
func instructionLength(mnemonic string) (uint16, bool) {
	op, ok := opcodes[strings.ToUpper(mnemonic)]
	if !ok {
		return 0, false
	}
	switch op.form {
	case formDstImm8, formImm8:
		return 2, true
	case formPairImm16, formImm16:
		return 3, true
	default:
		return 1, true
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}

	return true
}

func normalizeLabel(label string) string {
	return strings.ToUpper(label)
}
