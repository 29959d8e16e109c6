package tokens

import "strings"

// strftime directives supported in DATE/TIME/DATETIME arguments, mapped
// to Go reference-time layout fragments. Unknown directives pass through
// with the percent sign stripped.
var strftimeTable = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'a': "Mon",
	'A': "Monday",
	'b': "Jan",
	'B': "January",
	'j': "002",
	'%': "%",
}

// translateStrftime converts an strftime-style format string into a Go
// time layout. Literal text is preserved as-is.
func translateStrftime(format string) string {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 >= len(format) {
			b.WriteByte(format[i])
			continue
		}
		i++
		if repl, ok := strftimeTable[format[i]]; ok {
			b.WriteString(repl)
		} else {
			b.WriteByte(format[i])
		}
	}
	return b.String()
}
