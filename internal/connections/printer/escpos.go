package printer

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ESC/POS control bytes.
const (
	esc byte = 0x1B
	gs  byte = 0x1D
	dle byte = 0x10
	eot byte = 0x04
)

// cp858 is the Epson code-page selector for PC858, which covers the Spanish
// characters on our receipts.
const cp858 byte = 19

var (
	// ErrMalformedStatus is returned when the DLE EOT reply does not carry the
	// fixed bit pattern every ESC/POS printer sets.
	ErrMalformedStatus = errors.New("malformed printer status response")
	// ErrOffline is returned when the status reply has the offline bit set.
	ErrOffline = errors.New("printer reports offline")
)

type Align byte

const (
	AlignLeft   Align = 0
	AlignCenter Align = 1
	AlignRight  Align = 2
)

type Font byte

const (
	FontA Font = 0
	FontB Font = 1
)

// Style mirrors the small capability set receipts need from the device.
type Style struct {
	Align        Align
	Bold         bool
	DoubleWidth  bool
	DoubleHeight bool
	Font         Font
}

// Sink is the surface the receipt renderers draw on. *Client implements it,
// and tests substitute an in-memory recorder.
type Sink interface {
	SetStyle(Style)
	Text(s string)
	Cut()
}

// Client is a buffered ESC/POS connection. Styling and text accumulate in
// memory; Flush pushes the whole document in one bounded write so a stalled
// device cannot hold the dispatcher mid-receipt.
type Client struct {
	conn net.Conn
	buf  bytes.Buffer
	enc  *encoding.Encoder
}

// Probe reports whether a printer accepts TCP connections at host:port within
// timeout. It is a reachability check only; nothing is transmitted.
func Probe(host string, port int, timeout time.Duration) bool {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// Dial connects to the printer and initializes it (reset + CP858 code page).
func Dial(host string, port int, timeout time.Duration) (*Client, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("connect printer %s: %w", addr, err)
	}
	c := &Client{conn: conn, enc: charmap.CodePage858.NewEncoder()}
	c.buf.Write([]byte{esc, '@'})        // initialize
	c.buf.Write([]byte{esc, 't', cp858}) // code page for accented characters
	return c, nil
}

func (c *Client) SetStyle(s Style) {
	c.buf.Write([]byte{esc, 'a', byte(s.Align)})
	var b byte
	if s.Bold {
		b = 1
	}
	c.buf.Write([]byte{esc, 'E', b})
	var size byte
	if s.DoubleWidth {
		size |= 0x10
	}
	if s.DoubleHeight {
		size |= 0x01
	}
	c.buf.Write([]byte{gs, '!', size})
	c.buf.Write([]byte{esc, 'M', byte(s.Font)})
}

// Text appends s to the document. Runes outside CP858 are transliterated to
// their closest ASCII form rather than dropped.
func (c *Client) Text(s string) {
	out, err := c.enc.String(s)
	if err != nil {
		enc := encoding.ReplaceUnsupported(charmap.CodePage858.NewEncoder())
		out, _ = enc.String(transliterate(s))
	}
	c.buf.WriteString(out)
}

// Cut feeds and performs a partial paper cut.
func (c *Client) Cut() {
	c.buf.Write([]byte{gs, 'V', 66, 0})
}

// Status issues a real-time DLE EOT 1 probe and validates the reply byte.
func (c *Client) Status(timeout time.Duration) error {
	if err := c.conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	if _, err := c.conn.Write([]byte{dle, eot, 1}); err != nil {
		return fmt.Errorf("status request: %w", err)
	}
	reply := make([]byte, 1)
	if _, err := c.conn.Read(reply); err != nil {
		return fmt.Errorf("status response: %w", err)
	}
	b := reply[0]
	// Fixed bits of the printer-status byte: bit0=0, bit1=1, bit4=1, bit7=0.
	if b&0x01 != 0 || b&0x02 == 0 || b&0x10 == 0 || b&0x80 != 0 {
		return ErrMalformedStatus
	}
	if b&0x08 != 0 {
		return ErrOffline
	}
	return nil
}

// Flush writes the buffered document to the device within timeout.
func (c *Client) Flush(timeout time.Duration) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	if _, err := c.conn.Write(c.buf.Bytes()); err != nil {
		return fmt.Errorf("transmit receipt: %w", err)
	}
	c.buf.Reset()
	return nil
}

func (c *Client) Close() error { return c.conn.Close() }

// transliterate strips diacritics the hard way for printers whose firmware
// rejects extended pages. Unknown runes become spaces.
func transliterate(s string) string {
	replacements := map[rune]rune{
		'á': 'a', 'Á': 'A',
		'é': 'e', 'É': 'E',
		'í': 'i', 'Í': 'I',
		'ó': 'o', 'Ó': 'O',
		'ú': 'u', 'Ú': 'U',
		'ü': 'u', 'Ü': 'U',
		'ñ': 'n', 'Ñ': 'N',
		'¿': '?', '¡': '!',
		'º': 'o', 'ª': 'a',
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r < 128:
			out = append(out, r)
		default:
			if rep, ok := replacements[r]; ok {
				out = append(out, rep)
			} else {
				out = append(out, ' ')
			}
		}
	}
	return string(out)
}
