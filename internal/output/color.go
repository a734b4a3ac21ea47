package output

import (
	"fmt"
	"io"
	"regexp"

	"github.com/fatih/color"
)

var colorRx = regexp.MustCompile(`\[(BOLD|RED|GREEN|YELLOW|BLUE|MAGENTA|CYAN|NOTICE|ERROR|/RESET)\]`)

var colorAttributes = map[string]color.Attribute{
	"BOLD":    color.Bold,
	"RED":     color.FgRed,
	"GREEN":   color.FgGreen,
	"YELLOW":  color.FgYellow,
	"BLUE":    color.FgBlue,
	"MAGENTA": color.FgMagenta,
	"CYAN":    color.FgCyan,
	"NOTICE":  color.FgBlue,
	"ERROR":   color.FgRed,
	"/RESET":  color.Reset,
}

// writeColorized will replace `[COLORNAME]foo[/RESET]` with shell colors, or strip the tags if stripColors=true
func writeColorized(value string, writer io.Writer, stripColors bool) (int, error) {
	pos := 0
	matches := colorRx.FindAllStringSubmatchIndex(value, -1)
	for _, match := range matches {
		start, end, groupStart, groupEnd := match[0], match[1], match[2], match[3]
		n, err := writer.Write([]byte(value[pos:start]))
		if err != nil {
			return n, err
		}

		if !stripColors {
			groupName := value[groupStart:groupEnd]
			if attr, ok := colorAttributes[groupName]; ok {
				fmt.Fprintf(writer, "\x1b[%dm", attr)
			}
		}

		pos = end
	}

	return writer.Write([]byte(value[pos:]))
}

// StripColorCodes strips color tags from a string
func StripColorCodes(value string) string {
	return colorRx.ReplaceAllString(value, "")
}
