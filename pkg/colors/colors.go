package colors

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	timestampColor = color.New(color.FgHiBlack)
	infoColor      = color.New(color.FgHiCyan)
	successColor   = color.New(color.FgHiGreen)
	warningColor   = color.New(color.FgHiYellow)
	errorColor     = color.New(color.FgHiRed)
	headerColor    = color.New(color.FgHiBlue, color.Bold)
	subHeaderColor = color.New(color.FgHiMagenta, color.Bold)
	serverColor    = color.New(color.FgHiBlue)
	pathColor      = color.New(color.FgCyan)
	plainColor     = color.New(color.FgWhite)
)

func stamp() string {
	return timestampColor.Sprintf("[%s]", time.Now().Format("15:04:05"))
}

// PrintInfo prints informational messages in cyan
func PrintInfo(format string, args ...interface{}) {
	fmt.Printf("%s %s  %s\n", stamp(), infoColor.Sprint("i"), infoColor.Sprintf(format, args...))
}

// PrintSuccess prints success messages in green
func PrintSuccess(format string, args ...interface{}) {
	fmt.Printf("%s %s  %s\n", stamp(), successColor.Sprint("✓"), successColor.Sprintf(format, args...))
}

// PrintWarning prints warning messages in yellow
func PrintWarning(format string, args ...interface{}) {
	fmt.Printf("%s %s  %s\n", stamp(), warningColor.Sprint("!"), warningColor.Sprintf(format, args...))
}

// PrintError prints error messages in red
func PrintError(format string, args ...interface{}) {
	fmt.Printf("%s %s  %s\n", stamp(), errorColor.Sprint("✗"), errorColor.Sprintf(format, args...))
}

// PrintDebug prints debug messages in gray
func PrintDebug(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", stamp(), timestampColor.Sprintf(format, args...))
}

// PrintHeader prints a boxed header
func PrintHeader(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	border := strings.Repeat("═", len([]rune(message))+2)
	headerColor.Printf("\n╔%s╗\n", border)
	headerColor.Printf("║ %s ║\n", message)
	headerColor.Printf("╚%s╝\n\n", border)
}

// PrintSubHeader prints sub-header messages
func PrintSubHeader(format string, args ...interface{}) {
	subHeaderColor.Printf("▶ %s\n", fmt.Sprintf(format, args...))
}

// PrintServer prints server-related messages
func PrintServer(icon, format string, args ...interface{}) {
	fmt.Printf("%s %s %s\n", stamp(), serverColor.Sprint(icon), plainColor.Sprintf(format, args...))
}

// PrintEndpoint prints API endpoint information
func PrintEndpoint(method, path, description string) {
	methodColor := plainColor
	switch method {
	case "GET":
		methodColor = successColor
	case "POST":
		methodColor = serverColor
	case "PUT":
		methodColor = warningColor
	case "DELETE":
		methodColor = errorColor
	}

	fmt.Printf("  %s %s %s\n",
		methodColor.Sprintf("%-6s", method),
		pathColor.Sprintf("%-32s", path),
		timestampColor.Sprint(description))
}

// PrintBanner prints the application banner
func PrintBanner() {
	banner := `
 ____        __     ___      _
/ ___| _   _ \ \   / (_) ___| |_
\___ \| | | | \ \ / /| |/ _ \ __|
 ___) | |_| |  \ V / | |  __/ |_
|____/ \__,_|   \_/  |_|\___|\__|
`
	headerColor.Print(banner)
	warningColor.Println("      Vietnamese History Portal Server")
	fmt.Println()
}

// PrintShutdown prints shutdown message
func PrintShutdown() {
	color.New(color.FgHiRed, color.Bold).Println("\nSu Viet server shutdown initiated...")
	warningColor.Println("Gracefully closing all connections...")
	fmt.Println()
}

// PrintStats prints a label/value pair
func PrintStats(label string, value interface{}) {
	fmt.Printf("%s %s\n", infoColor.Sprintf("%-20s:", label), plainColor.Sprint(value))
}
