// Package capability flags probable OS-level behavior in source text with
// a fixed set of independent pattern checks. No match means an empty
// result, never an error.
package capability

import (
	"regexp"

	"github.com/saeedalam/repoprobe/pkg/types"
)

type check struct {
	kind    string
	reason  string
	pattern *regexp.Regexp
}

// The four checks are independent: a blob may trip any subset.
var checks = []check{
	{
		kind:    "execve/system",
		reason:  "calls to subprocess or os.system",
		pattern: regexp.MustCompile(`\bos\.system\b|\bsubprocess\.run\b|\bsubprocess\.Popen\b`),
	},
	{
		kind:    "open/read/write",
		reason:  "file open calls found",
		pattern: regexp.MustCompile(`\bopen\(|\bfopen\(`),
	},
	{
		kind:    "socket",
		reason:  "socket operations found",
		pattern: regexp.MustCompile(`\bsocket\(|listen\(|accept\(`),
	},
	{
		kind:    "network",
		reason:  "HTTP requests to external services",
		pattern: regexp.MustCompile(`\brequests\.get\b|\brequests\.post\b|urllib`),
	},
}

// Detect returns one entry per matching check, in fixed check order.
func Detect(code string) []types.Capability {
	var caps []types.Capability
	for _, c := range checks {
		if c.pattern.MatchString(code) {
			caps = append(caps, types.Capability{Kind: c.kind, Reason: c.reason})
		}
	}
	return caps
}
