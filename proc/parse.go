package proc

import (
	"bytes"
	"fmt"
	"strconv"
)

// lineParser walks one mapping record left to right. The column grammar is
// fixed:
//
//	start-end perms offset major:minor inode [path]
//
// with start, end and offset in hex, device numbers and inode in decimal,
// and an optional path after one or more padding spaces.
type lineParser struct {
	buf []byte
	pos int
}

func (p *lineParser) eol() bool { return p.pos >= len(p.buf) }

// delim returns the bytes before the next delim and steps past it. Running
// out of line before the delimiter means a mandatory field is missing.
func (p *lineParser) delim(c byte) ([]byte, error) {
	i := bytes.IndexByte(p.buf[p.pos:], c)
	if i < 0 {
		return nil, ErrTruncatedRecord
	}
	tok := p.buf[p.pos : p.pos+i]
	p.pos += i + 1
	return tok, nil
}

// word returns the bytes before the next space or the end of line,
// consuming the space if present.
func (p *lineParser) word() []byte {
	i := bytes.IndexByte(p.buf[p.pos:], ' ')
	if i < 0 {
		tok := p.buf[p.pos:]
		p.pos = len(p.buf)
		return tok
	}
	tok := p.buf[p.pos : p.pos+i]
	p.pos += i + 1
	return tok
}

// take consumes exactly n bytes.
func (p *lineParser) take(n int) ([]byte, error) {
	if p.pos+n > len(p.buf) {
		return nil, ErrTruncatedRecord
	}
	tok := p.buf[p.pos : p.pos+n]
	p.pos += n
	return tok, nil
}

// space consumes the single separating space. A different byte is charged
// to the field that should follow it.
func (p *lineParser) space(kind error) error {
	if p.eol() {
		return ErrTruncatedRecord
	}
	if p.buf[p.pos] != ' ' {
		return fmt.Errorf("%w: %q where separator expected", kind, p.buf[p.pos:p.pos+1])
	}
	p.pos++
	return nil
}

func (p *lineParser) skipSpaces() {
	for !p.eol() && p.buf[p.pos] == ' ' {
		p.pos++
	}
}

func (p *lineParser) rest() []byte { return p.buf[p.pos:] }

func (p *lineParser) hexDelim(c byte, kind error) (uint64, error) {
	tok, err := p.delim(c)
	if err != nil {
		return 0, err
	}
	return parseUint(tok, 16, 64, kind)
}

func (p *lineParser) decDelim(c byte, bits int, kind error) (uint64, error) {
	tok, err := p.delim(c)
	if err != nil {
		return 0, err
	}
	return parseUint(tok, 10, bits, kind)
}

// parseUint rejects empty fields, stray characters and values wider than
// bits, reporting them all as kind.
func parseUint(tok []byte, base, bits int, kind error) (uint64, error) {
	v, err := strconv.ParseUint(string(tok), base, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", kind, tok)
	}
	return v, nil
}

// parsePerms reads the permission tetrad positionally. Unknown bytes in a
// position deliberately read as a cleared flag rather than an error.
func parsePerms(b []byte) Perms {
	return Perms{
		Read:    b[0] == 'r',
		Write:   b[1] == 'w',
		Exec:    b[2] == 'x',
		Private: b[3] == 'p',
	}
}

// parseLine converts one mapping table line into a Mapping.
func parseLine(line []byte) (*Mapping, error) {
	p := lineParser{buf: line}
	var m Mapping
	var err error

	if m.StartAddr, err = p.hexDelim('-', ErrMalformedAddress); err != nil {
		return nil, fmt.Errorf("start address: %w", err)
	}
	if m.EndAddr, err = p.hexDelim(' ', ErrMalformedAddress); err != nil {
		return nil, fmt.Errorf("end address: %w", err)
	}
	if m.EndAddr <= m.StartAddr {
		return nil, fmt.Errorf("%w: range %x-%x does not ascend", ErrMalformedAddress, m.StartAddr, m.EndAddr)
	}

	flags, err := p.take(4)
	if err != nil {
		return nil, fmt.Errorf("permission flags: %w", err)
	}
	m.Perms = parsePerms(flags)
	if err = p.space(ErrMalformedAddress); err != nil {
		return nil, fmt.Errorf("file offset: %w", err)
	}

	if m.FileOffset, err = p.hexDelim(' ', ErrMalformedAddress); err != nil {
		return nil, fmt.Errorf("file offset: %w", err)
	}

	var major, minor uint64
	if major, err = p.decDelim(':', 32, ErrMalformedDevice); err != nil {
		return nil, fmt.Errorf("device major: %w", err)
	}
	if minor, err = p.decDelim(' ', 32, ErrMalformedDevice); err != nil {
		return nil, fmt.Errorf("device minor: %w", err)
	}
	m.DevMajor, m.DevMinor = uint32(major), uint32(minor)

	if m.Inode, err = parseUint(p.word(), 10, 64, ErrMalformedInode); err != nil {
		return nil, fmt.Errorf("inode: %w", err)
	}

	// Anything after the padding is the path, verbatim. A line ending in
	// padding spaces has none.
	p.skipSpaces()
	if !p.eol() {
		m.Pathname = string(p.rest())
	}
	return &m, nil
}
