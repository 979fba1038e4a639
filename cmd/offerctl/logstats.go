package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
)

// LogStats is what logstats extracts from a production log
type LogStats struct {
	Lines           int
	Errors          int
	Warnings        int
	Sweeps          int
	SweepFailures   int
	SweptOffers     int
	EndedWhileOpen  int
	DeleteFailures  int
	OffersCreated   int
	AdminDeletes    int
	LoginSuccess    int
	LoginFailures   int
	AdminActivities map[string]int
	ErrorPatterns   map[string]int
}

type logLine struct {
	Level string `json:"level"`
	Msg   string `json:"msg"`
}

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	sweepRegex = regexp.MustCompile(`deleted=(\d+)`)
	idRegex    = regexp.MustCompile(`[0-9a-fA-F-]{8,}`)
)

func runLogStats(args []string) error {
	fs := flag.NewFlagSet("logstats", flag.ExitOnError)
	top := fs.Int("top", 5, "how many admins and error patterns to list")
	_ = fs.Parse(args)

	in := io.Reader(os.Stdin)
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	stats, err := AnalyzeLogs(in)
	if err != nil {
		return err
	}
	printReport(os.Stdout, stats, *top)
	return nil
}

// AnalyzeLogs reads JSON log lines as written by the server in production.
// Lines that are not JSON are skipped.
func AnalyzeLogs(r io.Reader) (*LogStats, error) {
	stats := &LogStats{
		AdminActivities: make(map[string]int),
		ErrorPatterns:   make(map[string]int),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		var line logLine
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil || line.Msg == "" {
			continue
		}
		stats.Lines++
		switch line.Level {
		case "error":
			stats.Errors++
			extractErrorPattern(line.Msg, stats)
		case "warn":
			stats.Warnings++
		}
		countEvent(line.Msg, stats)
	}
	return stats, scanner.Err()
}

func countEvent(msg string, stats *LogStats) {
	switch {
	case strings.HasPrefix(msg, "Expired offer sweep"):
		stats.Sweeps++
		if m := sweepRegex.FindStringSubmatch(msg); m != nil {
			var n int
			fmt.Sscanf(m[1], "%d", &n)
			stats.SweptOffers += n
		}
	case strings.HasPrefix(msg, "Offer cleanup cycle failed"):
		stats.SweepFailures++
	case strings.HasPrefix(msg, "Background delete of expired offer"):
		stats.DeleteFailures++
	case strings.HasSuffix(msg, "ended while being viewed"):
		stats.EndedWhileOpen++
	case strings.HasPrefix(msg, "Created offer"):
		stats.OffersCreated++
	case strings.HasSuffix(msg, "deleted by admin"):
		stats.AdminDeletes++
	case strings.HasPrefix(msg, "Admin login successful"):
		stats.LoginSuccess++
		extractAdminActivity(msg, stats)
	case strings.HasPrefix(msg, "Invalid password for admin"),
		strings.HasPrefix(msg, "Login attempt for unknown admin"):
		stats.LoginFailures++
		extractAdminActivity(msg, stats)
	}
}

func extractAdminActivity(msg string, stats *LogStats) {
	if email := emailRegex.FindString(msg); email != "" {
		stats.AdminActivities[email]++
	}
}

func extractErrorPattern(msg string, stats *LogStats) {
	// Group by the message head, with ids blanked
	head := msg
	if i := strings.Index(head, ":"); i > 0 {
		head = head[:i]
	}
	stats.ErrorPatterns[idRegex.ReplaceAllString(head, "<id>")]++
}

func printReport(w io.Writer, stats *LogStats, top int) {
	fmt.Fprintln(w, "=== Offer Log Report ===")
	fmt.Fprintln(w, "Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Lines: %d  Errors: %d  Warnings: %d\n", stats.Lines, stats.Errors, stats.Warnings)

	fmt.Fprintln(w, "\n1. Offer lifecycle:")
	fmt.Fprintf(w, "   Offers created: %d\n", stats.OffersCreated)
	fmt.Fprintf(w, "   Deleted by admins: %d\n", stats.AdminDeletes)
	fmt.Fprintf(w, "   Ended while viewed: %d\n", stats.EndedWhileOpen)
	fmt.Fprintf(w, "   Failed background deletes: %d\n", stats.DeleteFailures)

	fmt.Fprintln(w, "\n2. Cleanup:")
	fmt.Fprintf(w, "   Sweeps: %d (failed %d)\n", stats.Sweeps, stats.SweepFailures)
	fmt.Fprintf(w, "   Offers swept: %d\n", stats.SweptOffers)

	fmt.Fprintln(w, "\n3. Admin logins:")
	fmt.Fprintf(w, "   Successful: %d\n", stats.LoginSuccess)
	fmt.Fprintf(w, "   Failed: %d\n", stats.LoginFailures)
	printTop(w, stats.AdminActivities, top, "activities")

	fmt.Fprintln(w, "\n4. Most common errors:")
	printTop(w, stats.ErrorPatterns, top, "occurrences")
}

func printTop(w io.Writer, counts map[string]int, limit int, unit string) {
	type entry struct {
		key   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for k, n := range counts {
		entries = append(entries, entry{k, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	for i, e := range entries {
		if i >= limit {
			break
		}
		fmt.Fprintf(w, "   %s: %d %s\n", e.key, e.count, unit)
	}
}
