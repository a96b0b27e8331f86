package disasm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/arch/riscv64/riscv64asm"
)

// ErrNoEncoding is returned for lines without an encoding column.
var ErrNoEncoding = errors.New("line has no instruction encoding")

// Encoding returns the raw instruction bytes of an instruction line, in
// memory order. objdump prints the encoding as one hex word, 4 digits for
// compressed instructions and 8 for full width ones.
func (ln Line) Encoding() ([]byte, error) {
	if !ln.HasAddr {
		return nil, ErrNoEncoding
	}
	_, rest, ok := strings.Cut(ln.Raw, ":")
	if !ok {
		return nil, ErrNoEncoding
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, ErrNoEncoding
	}
	word := fields[0]
	switch len(word) {
	case 4:
		v, err := strconv.ParseUint(word, 16, 16)
		if err != nil {
			return nil, ErrNoEncoding
		}
		return binary.LittleEndian.AppendUint16(nil, uint16(v)), nil
	case 8:
		v, err := strconv.ParseUint(word, 16, 32)
		if err != nil {
			return nil, ErrNoEncoding
		}
		return binary.LittleEndian.AppendUint32(nil, uint32(v)), nil
	}
	return nil, ErrNoEncoding
}

// DecodeWord re-decodes the encoding column of ln as a RISC-V instruction
// and returns it in GNU syntax.
func DecodeWord(ln Line) (string, error) {
	src, err := ln.Encoding()
	if err != nil {
		return "", err
	}
	inst, err := riscv64asm.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode %x at %#x: %w", src, ln.Addr, err)
	}
	return riscv64asm.GNUSyntax(inst), nil
}
