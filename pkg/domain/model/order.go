package model

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/hutarka-ai/hutarka/pkg/utils/logging"
)

// RequiredOrderFields are the fields an order block must carry. A block
// missing any of them is dropped as a whole, never forwarded partially.
var RequiredOrderFields = []string{"Имя", "Адрес", "Товар", "Количество"}

// Order is a fully populated order record extracted from model output.
// Only records with the complete required field set exist.
type Order map[string]string

// orderBlockRe matches the order block markers. The opening marker tolerates
// whitespace and &nbsp; leaking in from HTML-rendered replies.
var orderBlockRe = regexp.MustCompile(`(?is)\[ORDER_START\](?:\s|&nbsp;)*(.*?)\[ORDER_END\]`)

// ParseOrder extracts an order record from model output. Lines inside the
// block are parsed as "Key: Value" pairs, split at the first colon. Lines
// without a colon are logged and skipped. Returns nil unless every required
// field is present.
func ParseOrder(ctx context.Context, text string) Order {
	logger := logging.From(ctx)

	m := orderBlockRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	block := strings.TrimSpace(m[1])
	logger.Debug("found order block", "block", block)

	order := Order{}
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			logger.Warn("skipping order line without colon", "line", line)
			continue
		}
		order[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	var missing []string
	for _, field := range RequiredOrderFields {
		if _, ok := order[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		logger.Warn("dropping incomplete order", "missing", missing)
		return nil
	}

	return order
}

// Lines renders the order as "Key: Value" lines with required fields first
// in canonical order, then any extra fields sorted by key.
func (x Order) Lines() []string {
	lines := make([]string, 0, len(x))
	seen := make(map[string]bool, len(RequiredOrderFields))
	for _, field := range RequiredOrderFields {
		lines = append(lines, field+": "+x[field])
		seen[field] = true
	}

	extras := make([]string, 0, len(x))
	for key := range x {
		if !seen[key] {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		lines = append(lines, key+": "+x[key])
	}

	return lines
}
