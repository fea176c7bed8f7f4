package moderation

import (
	"strings"

	"github.com/mizusaki/kaiwa/backend/internal/model/analysis"
)

// blockList 包含日英双语的违规关键词。命中即打标。
var blockList = []string{
	"スパム", "spam",
	"詐欺", "scam",
	"暴力", "violence",
	"脅迫", "threat",
}

// Scan checks text against the configured block-list and returns the verdict.
// Matching is case-insensitive substring containment; flags preserve scan
// order. Pure and deterministic, no failure mode.
func Scan(text string) analysis.Moderation {
	return scanWith(blockList, text)
}

// ScanWith runs Scan against a caller-supplied block-list. Used when the
// deployment overrides the default terms.
func ScanWith(terms []string, text string) analysis.Moderation {
	if len(terms) == 0 {
		terms = blockList
	}
	return scanWith(terms, text)
}

func scanWith(terms []string, text string) analysis.Moderation {
	lower := strings.ToLower(text)

	flags := []string{}
	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(term)) {
			flags = append(flags, term)
		}
	}

	confidence := 1.0
	if len(flags) > 0 {
		confidence = 0.8
	}

	return analysis.Moderation{
		IsAppropriate: len(flags) == 0,
		Flags:         flags,
		Confidence:    confidence,
	}
}
