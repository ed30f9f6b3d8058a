package commands

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/wonny/hot100/internal/chart"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// PrintHeader prints a formatted section header
func PrintHeader(title string, subtitle string) {
	fmt.Println()
	PrintDoubleSeparator()
	fmt.Printf("  %s\n", title)
	if subtitle != "" {
		PrintSeparator()
		fmt.Printf("  %s\n", subtitle)
	}
	PrintSeparator()
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Println()
	fmt.Printf("⚠️  %s\n", message)
	fmt.Println()
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("✅ %s\n", message)
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Printf("ℹ️  %s\n", message)
}

// PrintTableHeader prints a table header
func PrintTableHeader(columns []string, widths []int) {
	PrintTableRow(columns, widths)

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	for i := 0; i < totalWidth; i++ {
		fmt.Print("─")
	}
	fmt.Println()
}

// PrintTableRow prints a table row, clipping values to their column
func PrintTableRow(values []string, widths []int) {
	for i, val := range values {
		fmt.Printf("%-*s", widths[i], clip(val, widths[i]))
		if i < len(values)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(key string, value string, keyWidth int) {
	fmt.Printf("   %-*s : %s\n", keyWidth, key, value)
}

var songColumns = []string{"#", "Title", "Artist", "Last", "Peak", "Wks", "Move"}
var songWidths = []int{3, 34, 28, 4, 4, 3, 6}

// PrintSongs prints a chart listing
func PrintSongs(songs []chart.SongEntry) {
	PrintTableHeader(songColumns, songWidths)
	for _, s := range songs {
		PrintTableRow([]string{
			strconv.Itoa(s.Rank),
			s.Title,
			s.Artist,
			lastWeek(s.LastWeekRank),
			strconv.Itoa(s.PeakPosition),
			strconv.Itoa(s.WeeksOnChart),
			string(s.Movement()),
		}, songWidths)
	}
}

func lastWeek(rank int) string {
	if rank == chart.NotOnChart {
		return "-"
	}
	return strconv.Itoa(rank)
}

// clip shortens s to width runes, marking the cut with "…"
func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-1]) + "…"
}
