// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

// Package descriptorchecksum implements the BIP380 output-descriptor
// checksum: the 8-character suffix appended after a '#' to descriptors
// like "rawtr(<wif>)#xxxxxxxx". It is unrelated to the BIP-173 bech32
// checksum used by addresses — both are Bitcoin-ecosystem conventions,
// but computed by different algorithms over different alphabets.
package descriptorchecksum

import (
	"errors"
	"strings"
)

const inputCharset = "0123456789()[],'/*abcdefgh@:$%{}" +
	"IJKLMNOPQRSTUVWXYZ&+-.;<=>?!^_|~" +
	"ijklmnopqrstuvwxyzABCDEFGH`#\"\\ "

const checksumCharset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// polyMod is the BIP380 checksum's generator polynomial step, shared by
// every BIP173-family checksum (bech32 addresses, descriptor checksums,
// ...) with a different constant generator per variant.
func polyMod(c uint64, val uint64) uint64 {
	c0 := c >> 35
	c = ((c & 0x7ffffffff) << 5) ^ val
	if c0&1 != 0 {
		c ^= 0xf5dee51989
	}
	if c0&2 != 0 {
		c ^= 0xa9fdca3312
	}
	if c0&4 != 0 {
		c ^= 0x1bab10e32d
	}
	if c0&8 != 0 {
		c ^= 0x3706b1677a
	}
	if c0&16 != 0 {
		c ^= 0x644d626ffd
	}

	return c
}

// Checksum computes the 8-character BIP380 checksum for a descriptor
// (without the trailing "#checksum" already present). desc must contain
// only characters from the descriptor charset: digits, ASCII letters of
// either case, the space, and the symbols used by descriptor syntax.
func Checksum(desc string) (string, error) {
	c := uint64(1)
	cls := 0
	clsCount := 0

	for _, ch := range desc {
		pos := strings.IndexRune(inputCharset, ch)
		if pos < 0 {
			return "", errors.New("descriptor contains a character outside the descriptor charset")
		}

		c = polyMod(c, uint64(pos&31))
		cls = cls*3 + (pos >> 5)
		clsCount++
		if clsCount == 3 {
			c = polyMod(c, uint64(cls))
			cls = 0
			clsCount = 0
		}
	}

	if clsCount > 0 {
		c = polyMod(c, uint64(cls))
	}

	for i := 0; i < 8; i++ {
		c = polyMod(c, 0)
	}
	c ^= 1

	symbols := make([]byte, 8)
	for i := 0; i < 8; i++ {
		symbols[i] = checksumCharset[(c>>(5*(7-uint(i))))&31]
	}

	return string(symbols), nil
}

// AddChecksum appends "#<checksum>" to desc.
func AddChecksum(desc string) (string, error) {
	sum, err := Checksum(desc)
	if err != nil {
		return "", err
	}

	return desc + "#" + sum, nil
}

// Verify reports whether descWithChecksum's trailing "#checksum" matches
// the checksum of the descriptor preceding it.
func Verify(descWithChecksum string) (bool, error) {
	idx := strings.LastIndex(descWithChecksum, "#")
	if idx < 0 {
		return false, errors.New("descriptor has no checksum")
	}

	want, err := Checksum(descWithChecksum[:idx])
	if err != nil {
		return false, err
	}

	return want == descWithChecksum[idx+1:], nil
}
