package interchange

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// SyntaxError reports a malformed group code stream.
type SyntaxError struct {
	Line int // 1-based line of the offending text
	Msg  string
}

func (e *SyntaxError) Error() string {
	return "interchange: line " + strconv.Itoa(e.Line) + ": " + e.Msg
}

// Pair is one group code and its value. Line is the line the value was read from.
type Pair struct {
	Code  int
	Value string
	Line  int
}

func (p Pair) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.Line, Msg: fmt.Sprintf(format, args...)}
}

// Float parses the value as a floating point number.
func (p Pair) Float() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
	if err != nil {
		return 0, p.errorf("group %d: %q is not a number", p.Code, p.Value)
	}
	return v, nil
}

// Int parses the value as an integer.
func (p Pair) Int() (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(p.Value))
	if err != nil {
		return 0, p.errorf("group %d: %q is not an integer", p.Code, p.Value)
	}
	return v, nil
}

// Scanner reads group code pairs: a line holding the integer code followed
// by a line holding the value.
type Scanner struct {
	s    *bufio.Scanner
	line int
	pair Pair
	err  error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{s: bufio.NewScanner(r)}
}

// Scan advances to the next pair. It returns false at the end of the input
// or on error.
func (sc *Scanner) Scan() bool {
	if sc.err != nil {
		return false
	}
	if !sc.s.Scan() {
		sc.err = sc.s.Err()
		return false
	}
	sc.line++
	text := strings.TrimSpace(sc.s.Text())
	code, err := strconv.Atoi(text)
	if err != nil {
		sc.err = &SyntaxError{Line: sc.line, Msg: fmt.Sprintf("group code %q is not an integer", text)}
		return false
	}
	if !sc.s.Scan() {
		sc.err = sc.s.Err()
		if sc.err == nil {
			sc.err = &SyntaxError{Line: sc.line, Msg: fmt.Sprintf("missing value for group code %d", code)}
		}
		return false
	}
	sc.line++
	sc.pair = Pair{Code: code, Value: strings.TrimSuffix(sc.s.Text(), "\r"), Line: sc.line}
	return true
}

// Pair returns the pair read by the last call to Scan.
func (sc *Scanner) Pair() Pair { return sc.pair }

// Err returns the first error met by the Scanner.
func (sc *Scanner) Err() error { return sc.err }

// Writer writes group code pairs. Errors are sticky: after the first failure
// every call is a no-op and Flush returns the error.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WritePair writes code and a single line value.
func (w *Writer) WritePair(code int, value string) {
	if w.err != nil {
		return
	}
	if strings.ContainsAny(value, "\r\n") {
		w.err = fmt.Errorf("interchange: group %d value %q spans lines", code, value)
		return
	}
	_, w.err = fmt.Fprintf(w.w, "%3d\n%s\n", code, value)
}

// WriteFloat writes v with the fewest digits that read back exactly.
func (w *Writer) WriteFloat(code int, v float64) {
	w.WritePair(code, strconv.FormatFloat(v, 'f', -1, 64))
}

// WriteInt writes an integer value.
func (w *Writer) WriteInt(code int, v int) {
	w.WritePair(code, strconv.Itoa(v))
}

// WritePoint writes v as its X coordinate under code and Y under code+10.
func (w *Writer) WritePoint(code int, v r2.Vec) {
	w.WriteFloat(code, v.X)
	w.WriteFloat(code+10, v.Y)
}

// Flush writes buffered data and returns the first error met.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}
