// Package currency converts between whole-unit currency amounts and their display text.
// Amounts carry no fractional part; the currency marker is left to the caller.
package currency

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Codec struct {
	printer *message.Printer
}

func NewCodec(tag language.Tag) *Codec {
	return &Codec{printer: message.NewPrinter(tag)}
}

var defaultCodec = NewCodec(language.Indonesian)

// Parse keeps only the ASCII digits of text and reads them as a base-10 amount.
// Empty input yields 0; digits that would overflow int64 are dropped.
func (c *Codec) Parse(text string) int64 {
	var n int64
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch < '0' || ch > '9' {
			continue
		}
		d := int64(ch - '0')
		if n > (math.MaxInt64-d)/10 {
			break
		}
		n = n*10 + d
	}
	return n
}

// Format renders n with the codec locale's thousands grouping and no fraction digits.
func (c *Codec) Format(n int64) string {
	return c.printer.Sprintf("%d", n)
}

func Parse(text string) int64 {
	return defaultCodec.Parse(text)
}

func Format(n int64) string {
	return defaultCodec.Format(n)
}
