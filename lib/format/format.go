/*package format handles segy's miniature language for selecting traces, e.g.:

   Traces = 0..99
   Traces = 0..end - 50..59
   Traces = 0 + 10 + 20 + end

Sequence formats are a generic way to specify non-contiguous sequences of
natural numbers. They consist of a series of n tokens separated by "+" or "-".
Each token can be either a number or two numbers separted by "..". E.g.:

  100
  0..100
  0..10 + 100
  0..100 - 63 - 10..20

These strings build up sequences of numbers by adding/removing individual
numbers and contiguous sequences. For example, 0 through 10 would be 0..10,
1, 2, 3, 15, 16, 17 could be written as  1..17 - 4..13. This is useful for
skipping damaged traces or looking at a subset of a line.

Trace formats are sequence formats which may also use the word "end" in place
of a number. "end" is the index of the last trace in the file.

All spaces around "-", "+", and ".." symbols are ignored.
*/
package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	g_error "github.com/phil-mansfield/segy/lib/error"
)

const (
	// Any expanded formats which would have more than BigNumber elements are
	// assumed to be bugs.
	BigNumber = 1 << 24
	// End is the word that stands in for the last trace in trace formats.
	End = "end"
)

// ExpandSequenceFormat expands a sequence format string into a sorted sequence
// of integers.
func ExpandSequenceFormat(format string) ([]int, error) {
	// Parse and error-check the format string.
	tok, err := tokeniseSequenceFormat(format)
	if err != nil {
		return nil, err
	}
	adds, subs, err := addsSubsSequenceFormat(tok)
	if err != nil {
		return nil, err
	}

	// Check the size before anything is allocated.
	n := 0
	for i := range adds {
		n += sequenceFormatTokenLen(adds[i])
	}
	if n > BigNumber {
		return nil, fmt.Errorf("This sequence would have %d elements, which "+
			"is almost certainly a bug.", n)
	}

	// Add numbers to the sequence.
	m := map[int]bool{}
	for i := range adds {
		ns := parseSequenceFormatToken(adds[i])
		for _, n := range ns {
			if m[n] {
				return nil, fmt.Errorf("The number %d is added more than "+
					"once.", n)
			}
			m[n] = true
		}
	}

	// Remove numbers from the sequence.
	for i := range subs {
		ns := parseSequenceFormatToken(subs[i])
		for _, n := range ns {
			if !m[n] {
				return nil, fmt.Errorf("The number %d is removed more times "+
					"than it was inserted.", n)
			}
			delete(m, n)
		}
	}

	// Convert to a sorted array of integers.
	out := make([]int, 0, len(m))
	for n := range m {
		out = append(out, n)
	}
	sort.Ints(out)

	return out, nil
}

// ExpandTraceFormat expands a trace format for a file with traceCount
// traces. Every index in the result is a valid trace index.
func ExpandTraceFormat(format string, traceCount int) ([]int, error) {
	if traceCount < 1 {
		return nil, fmt.Errorf("The Traces format string '%s' can't select "+
			"anything because the file has no traces.", format)
	}

	seq, err := ExpandSequenceFormat(replaceEnd(format, traceCount-1))
	if err != nil {
		return nil, fmt.Errorf("The Traces format string '%s' is not valid. "+
			"%s", format, err.Error())
	}

	if len(seq) == 0 {
		return nil, fmt.Errorf("The Traces format string '%s' doesn't "+
			"select any traces.", format)
	} else if last := seq[len(seq)-1]; last >= traceCount {
		return nil, fmt.Errorf("The Traces format string '%s' selects trace "+
			"%d, but the file only has %d traces. Use '%s' to refer to the "+
			"last trace.", format, last, traceCount, End)
	}

	return seq, nil
}

// replaceEnd replaces every whole-word "end" in format with last.
func replaceEnd(format string, last int) string {
	s := strconv.Itoa(last)
	var sb strings.Builder
	for i := 0; i < len(format); {
		if strings.HasPrefix(format[i:], End) &&
			(i == 0 || !isWordByte(format[i-1])) &&
			(i+len(End) == len(format) || !isWordByte(format[i+len(End)])) {
			sb.WriteString(s)
			i += len(End)
			continue
		}
		sb.WriteByte(format[i])
		i++
	}
	return sb.String()
}

func isWordByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// tokeniseSequenceFormat tokenizes a SeqeunceFormat string. This means that
// is separates all the operators from the numbers and ranges.
func tokeniseSequenceFormat(format string) ([]string, error) {
	// Make sure all operators are separated by spaces.
	formatClean := strings.ReplaceAll(format, "+", " + ")
	formatClean = strings.ReplaceAll(formatClean, "-", " - ")
	formatClean = strings.ReplaceAll(formatClean, "..", " .. ")

	// Tokenize and remove empty tokens.
	tokRaw := strings.Fields(formatClean)
	tok := []string{}
	for i := 0; i < len(tokRaw); i++ {
		// Join ranges back together.
		if tokRaw[i] == ".." && len(tok) > 0 && i+1 < len(tokRaw) {
			tok[len(tok)-1] += ".." + tokRaw[i+1]
			i++
			continue
		}
		tok = append(tok, tokRaw[i])
	}

	if len(tok) == 0 {
		return nil, fmt.Errorf("The format string is empty.")
	}
	return tok, nil
}

func addsSubsSequenceFormat(tok []string) (adds, subs []string, err error) {
	if len(tok) == 0 {
		return nil, nil, fmt.Errorf("Format string is empty")
	}

	// Handle the case where the starting "+" is dropped.
	adds, subs = []string{}, []string{}
	var start int
	if tok[0] == "+" || tok[0] == "-" {
		start = 0
	} else {
		if err := isSequenceFormatToken(tok[0]); err != nil {
			return nil, nil, fmt.Errorf(
				"Element number %d, '%s', cannot be parsed because %s",
				1, tok[0], err.Error(),
			)
		}

		adds = append(adds, tok[0])
		start = 1
	}

	for i := start; i < len(tok); i += 2 {
		if tok[i] != "-" && tok[i] != "+" {
			return nil, nil, fmt.Errorf(
				"Element number %d, '%s', should be a '-' or '+', but isn't.",
				i+1, tok[i])
		}

		if i+1 >= len(tok) {
			return nil, nil, fmt.Errorf(
				"The format string ends in a trailing '%s'", tok[i],
			)
		}

		if err := isSequenceFormatToken(tok[i+1]); err != nil {
			return nil, nil, fmt.Errorf(
				"Element number %d, '%s', cannot be parsed because %s",
				i+2, tok[i+1], err.Error(),
			)
		}

		if tok[i] == "+" {
			adds = append(adds, tok[i+1])
		} else {
			subs = append(subs, tok[i+1])
		}
	}

	return adds, subs, nil
}

// isSequenceFormatToken returns a nil error is tok is a valid token for
// a sequence format and an error describing the problem otherwise. The error
// message assumes it is printed after a trailing "because"
func isSequenceFormatToken(tok string) error {
	if len(tok) == 0 {
		return fmt.Errorf("the format string is empty.")
	}

	bounds := strings.Split(tok, "..")

	switch len(bounds) {
	case 1:
		_, err := strconv.Atoi(bounds[0])
		if err != nil {
			return fmt.Errorf("'%s' is not an integer.", bounds[0])
		}
		return nil
	case 2:
		start, err1 := strconv.Atoi(bounds[0])
		if err1 != nil {
			return fmt.Errorf("'%s' is not an integer.", bounds[0])
		}
		end, err2 := strconv.Atoi(bounds[1])
		if err2 != nil {
			return fmt.Errorf("'%s' is not an integer.", bounds[1])
		}
		if end < start {
			return fmt.Errorf("lower bound %d is larger than upper bound %d.",
				start, end)
		}

		return nil
	}
	return fmt.Errorf("it has more than one '..'.")
}

// sequenceFormatTokenLen returns the number of elements in a valid token.
func sequenceFormatTokenLen(tok string) int {
	bounds := strings.Split(tok, "..")
	if len(bounds) != 2 {
		return 1
	}
	start, _ := strconv.Atoi(bounds[0])
	end, _ := strconv.Atoi(bounds[1])
	return end - start + 1
}

// parseSeqeunceFormatToken parses a single token in a seqeunce format stirng
// and returns the corresponding array of numbers. This function assumes that
// the tests in isSequenceFormatToken have already been run and thus does no
// error checking. This makes sense to do because the calling funciton has
// already removed location information from these tokens, so the error
// message would be less informative.
func parseSequenceFormatToken(tok string) []int {
	bounds := strings.Split(tok, "..")

	switch len(bounds) {
	case 1:
		n, _ := strconv.Atoi(tok)
		return []int{n}
	case 2:
		start, _ := strconv.Atoi(bounds[0])
		end, _ := strconv.Atoi(bounds[1])
		out := make([]int, 0, end-start+1)
		for n := start; n <= end; n++ {
			out = append(out, n)
		}

		return out
	}

	g_error.Internal(
		"Invalid sequence format token, '%s', passed isSeqeunceFormatToken()",
		tok,
	)
	return nil
}
