package storage

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const exportBanner = "===================================="

// ExportFileName returns the timestamped default export name, e.g.
// "bank-260827-143015.txt".
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("bank-%s.txt", t.Format(fileStamp))
}

// ExportTransactions appends one account's transaction lines to a text file,
// framed by a date stamp and banners. The caller supplies the ordered lines;
// this layer only owns the file format.
func ExportTransactions(path string, lines []string, now time.Time) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	var b strings.Builder
	fmt.Fprintf(&b, "Datum: %s\n", now.Format("060102"))
	b.WriteString(exportBanner + "\n")
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
	b.WriteString(exportBanner + "\n")

	_, err = f.WriteString(b.String())
	return err
}
