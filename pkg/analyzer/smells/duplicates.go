package smells

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/panbanda/augur/pkg/models"
)

type codeLine struct {
	text   string
	number uint32
}

// detectDuplicates finds repeated runs of normalized lines using a
// sliding window of hashed line sequences. Blank and comment-only lines
// do not participate, so formatting differences between copies are
// ignored. A window size of 0 disables the check.
func (a *Analyzer) detectDuplicates(source []byte) []models.Smell {
	window := a.thresholds.DuplicateWindow
	if window <= 0 {
		return nil
	}

	lines := normalizedLines(source)
	if len(lines) < window*2 {
		return nil
	}

	seen := make(map[uint64]int)
	var out []models.Smell

	for i := 0; i+window <= len(lines); i++ {
		h := hashWindow(lines[i : i+window])
		first, ok := seen[h]
		if !ok {
			seen[h] = i
			continue
		}
		if i < first+window {
			continue
		}

		// Extend the match to the maximal run.
		length := window
		for i+length < len(lines) &&
			first+length < i &&
			lines[first+length].text == lines[i+length].text {
			length++
		}

		dupLines := float64(length)
		out = append(out, models.Smell{
			Type:      models.SmellDuplicateCode,
			Severity:  models.SeverityMedium,
			LineStart: lines[i].number,
			LineEnd:   lines[i+length-1].number,
			Description: fmt.Sprintf("Duplicated block of %d lines, first seen at line %d",
				length, lines[first].number),
			Confidence: capped(0.5+dupLines/40, 0.90),
			Metrics:    map[string]float64{"duplicate_lines": dupLines},
		})

		// Skip past the run so overlapping windows of the same copy do
		// not report again.
		i += length - 1
	}

	return out
}

func normalizedLines(source []byte) []codeLine {
	var lines []codeLine
	for i, raw := range strings.Split(string(source), "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, codeLine{text: trimmed, number: uint32(i + 1)})
	}
	return lines
}

func hashWindow(lines []codeLine) uint64 {
	var d xxhash.Digest
	for _, line := range lines {
		_, _ = d.WriteString(line.text)
		_, _ = d.Write([]byte{'\n'})
	}
	return d.Sum64()
}
