package scorecard

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	commitLinkRe  = regexp.MustCompile(`/commit/([0-9a-f]{7,40})`)
	zipBlobLinkRe = regexp.MustCompile(`/blob/([^/]+)/(.+\.zip)$`)
	treeLinkRe    = regexp.MustCompile(`/tree/([^/]+)(?:/(.+))?$`)
	blobLinkRe    = regexp.MustCompile(`/blob/([^/]+)/(.+)$`)
	commitHashRe  = regexp.MustCompile(`^[0-9a-f]{7,40}$`)
)

// ParseProjectLink extracts the ref, path, and submission kind from a
// GitHub project URL as found in the scorecard CSV.
//
// Recognized patterns:
//
//	/commit/<hash>              commit submission, no path
//	/blob/<branch>/<path>.zip   zip submission
//	/tree/<ref>[/<path>]        branch or commit submission
//	/blob/<branch>/<path>       treated as a branch submission
//
// Anything else, including an empty link, yields SubmissionNone.
func ParseProjectLink(link string) (ref, path string, kind SubmissionKind) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", "", SubmissionNone
	}

	if m := commitLinkRe.FindStringSubmatch(link); m != nil {
		return m[1], "", SubmissionCommit
	}

	if m := zipBlobLinkRe.FindStringSubmatch(link); m != nil {
		return unescape(m[1]), unescape(m[2]), SubmissionZip
	}

	if m := treeLinkRe.FindStringSubmatch(link); m != nil {
		ref = unescape(m[1])
		path = unescape(m[2])
		if commitHashRe.MatchString(ref) {
			return ref, path, SubmissionCommit
		}
		return ref, path, SubmissionBranch
	}

	if m := blobLinkRe.FindStringSubmatch(link); m != nil {
		return unescape(m[1]), unescape(m[2]), SubmissionBranch
	}

	return "", "", SubmissionNone
}

// unescape decodes percent-encoded URL segments, falling back to the raw
// value when the encoding is malformed.
func unescape(s string) string {
	if s == "" {
		return ""
	}
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
