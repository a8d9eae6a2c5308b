package paths

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/buemura/webscan/pkg/types"
)

// fetchRobotsCandidates retrieves /robots.txt and extracts Disallow/Allow
// paths as extra probe candidates. Best effort: every failure returns nil.
func fetchRobotsCandidates(ctx context.Context, client *http.Client, baseURL string) []CatalogEntry {
	robotsURL, err := guardJoin(baseURL, "/robots.txt")
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256<<10))
	if err != nil {
		return nil
	}

	return parseRobots(string(body))
}

// parseRobots extracts non-root paths from Disallow: and Allow: directives,
// capped at maxRobotsCandidates.
func parseRobots(body string) []CatalogEntry {
	var entries []CatalogEntry
	seen := make(map[string]bool)

	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		if len(entries) >= maxRobotsCandidates {
			break
		}

		line := strings.TrimSpace(sc.Text())
		lower := strings.ToLower(line)

		var value string
		switch {
		case strings.HasPrefix(lower, "disallow:"):
			value = strings.TrimSpace(line[len("disallow:"):])
		case strings.HasPrefix(lower, "allow:"):
			value = strings.TrimSpace(line[len("allow:"):])
		default:
			continue
		}

		if value == "" || value == "/" || seen[value] {
			continue
		}
		seen[value] = true

		entries = append(entries, CatalogEntry{
			Path:        value,
			Description: robotsDescription,
			Severity:    types.SeverityMedium,
		})
	}

	return entries
}

// robotsClient builds the best-effort client used for the robots.txt fetch.
func robotsClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
