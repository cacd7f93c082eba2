package parser

import "strings"

// ParseDraft splits a generated reply into subject and body.
//
// When raw contains both "Subject:" and "Body:", it is split on the first
// "Body:"; the part before it, with "Subject:" labels removed, is the subject
// and the rest is the body. Otherwise the subject is "Re: " + originalSubject
// and the body is raw unchanged. NUL bytes are dropped from both.
func ParseDraft(raw, originalSubject string) (subject, body string) {
	raw = storable(raw)
	subject = "Re: " + originalSubject
	body = raw

	if !strings.Contains(raw, "Subject:") {
		return subject, body
	}
	before, after, found := strings.Cut(raw, "Body:")
	if !found {
		return subject, body
	}
	return strings.TrimSpace(strings.ReplaceAll(before, "Subject:", "")), strings.TrimSpace(after)
}
