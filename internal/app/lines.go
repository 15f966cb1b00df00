package app

import (
	"bufio"
	"io"
)

// ConvertLines applies fn to every line of r and writes the results to w,
// one per line.
func ConvertLines(r io.Reader, w io.Writer, fn func(string) string) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	writer := bufio.NewWriter(w)
	for scanner.Scan() {
		if _, err := writer.WriteString(fn(scanner.Text())); err != nil {
			return err
		}
		if err := writer.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return writer.Flush()
}
