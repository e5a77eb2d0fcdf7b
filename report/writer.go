package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

var (
	// ErrNilOutput is returned by NewWriter without an io.Writer.
	ErrNilOutput = errors.New("report: output must not be nil")

	// ErrUnknownFormat is returned for formats other than FormatText and FormatJSON.
	ErrUnknownFormat = errors.New("report: unknown format")
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" and "json", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Writer renders to an io.Writer using the policy's labels.
type Writer struct {
	out    io.Writer
	policy circulation.Policy
	format Format
}

type Option func(*Writer) error

func WithFormat(format Format) Option {
	return func(w *Writer) error {
		if format != FormatText && format != FormatJSON {
			return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
		}

		w.format = format

		return nil
	}
}

func NewWriter(out io.Writer, policy circulation.Policy, opts ...Option) (*Writer, error) {
	if out == nil {
		return nil, ErrNilOutput
	}

	w := &Writer{
		out:    out,
		policy: policy,
		format: FormatText,
	}

	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}

	return w, nil
}

func (w *Writer) WriteState(state circulation.LibraryState) error {
	if w.format == FormatJSON {
		return w.writeJSON(w.stateRecord(state))
	}

	buf := bufio.NewWriter(w.out)
	writePair(buf, "day", strconv.Itoa(state.Day()))

	for _, title := range state.Titles() {
		writePair(buf, "available_"+w.titleLabel(title), strconv.Itoa(state.AvailableCopies(title)))
	}

	memberClasses := state.MemberClasses()
	for _, memberClass := range memberClasses {
		writePair(buf, "loans_"+w.memberClassLabel(memberClass), strconv.Itoa(state.ActiveLoans(memberClass)))
	}

	for _, memberClass := range memberClasses {
		writePair(buf, "fines_"+w.memberClassLabel(memberClass), strconv.Itoa(state.OutstandingFines(memberClass)))
	}

	return flush(buf)
}

func (w *Writer) WriteAction(result circulation.ActionResult) error {
	if w.format == FormatJSON {
		return w.writeJSON(actionRecord{
			Kind:    "action",
			OK:      result.Success,
			Code:    result.Code,
			Outcome: result.Outcome().String(),
		})
	}

	buf := bufio.NewWriter(w.out)
	writePair(buf, "action_ok", strconv.FormatBool(result.Success))
	writePair(buf, "action_code", strconv.Itoa(result.Code))

	return flush(buf)
}

func (w *Writer) titleLabel(title circulation.TitleID) string {
	return strings.ToLower(w.policy.TitleLabel(title))
}

func (w *Writer) memberClassLabel(memberClass circulation.MemberClassID) string {
	return strings.ToLower(w.policy.MemberClassLabel(memberClass))
}

func (w *Writer) writeJSON(record any) error {
	line, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(record)
	if err != nil {
		return fmt.Errorf("report: encode: %w", err)
	}

	if _, err = w.out.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("report: write: %w", err)
	}

	return nil
}

// bufio.Writer keeps the first error, so writePair can ignore it and flush reports it.
func writePair(buf *bufio.Writer, label, value string) {
	_, _ = buf.WriteString(label)
	_ = buf.WriteByte('\n')
	_, _ = buf.WriteString(value)
	_ = buf.WriteByte('\n')
}

func flush(buf *bufio.Writer) error {
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("report: write: %w", err)
	}

	return nil
}
