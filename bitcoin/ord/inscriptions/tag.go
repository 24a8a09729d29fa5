// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package inscriptions

import (
	"fmt"

	"github.com/btcsuite/btcd/txscript"
)

// Tag defines special tag for distinguishing inscription field type.
//
// Tag parity governs forward compatibility: a parser that does not
// recognize an odd tag must silently skip it; a parser that does not
// recognize an even tag must reject the whole envelope. TagUnbound is
// deliberately even so any unaware parser is forced to reject it.
type Tag byte

const (
	// TagContentType defines content-type tag in the inscription protocol.
	// Defines content-type of the inscription content. The value is the MIME type of the body.
	TagContentType Tag = 1
	// TagUnbound defines the cursed/unbound tag. Its value is never decoded;
	// its mere presence marks the inscription as cursed, and a parser that
	// does not specifically recognize it must reject the whole envelope.
	TagUnbound Tag = 66
)

// IntoDataPush returns Tag as bytes array with OP_PUSH command.
func (t Tag) IntoDataPush() []byte {
	return []byte{txscript.OP_DATA_1, byte(t)}
}

// HexString returns Tag as hexadecimal string with leading zero if needed.
func (t Tag) HexString() string {
	return fmt.Sprintf("%02x", byte(t))
}
