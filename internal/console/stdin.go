package console

import "bufio"

// keys after which the terminal reader stops until the prompt asks again
const (
	keyInterrupt = 0x03
	keyEOF       = 0x04
)

// lineGate feeds a prompt from the shared input without reading ahead. A
// single Read never returns more than one line, and it blocks for the first
// byte only. promptui buffers whatever a Read returns, so anything past the
// line would be lost to the next reader.
type lineGate struct {
	in *bufio.Reader
}

func newLineGate(in *bufio.Reader) *lineGate {
	return &lineGate{in: in}
}

func (g *lineGate) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if n > 0 && g.in.Buffered() == 0 {
			break
		}

		b, err := g.in.ReadByte()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		p[n] = b
		n++

		switch b {
		case '\r':
			// a CRLF pair is one Enter
			if g.in.Buffered() > 0 {
				if next, err := g.in.Peek(1); err == nil && next[0] == '\n' {
					_, _ = g.in.ReadByte()
				}
			}
			return n, nil
		case '\n', keyInterrupt, keyEOF:
			return n, nil
		}
	}

	return n, nil
}

func (g *lineGate) Close() error {
	return nil
}
