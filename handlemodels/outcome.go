/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package handlemodels

import (
	"sort"
	"strings"
)

// Severity selects the channel a Message is reported on.
type Severity int

const (
	// SeverityStatus messages are shown to the user.
	SeverityStatus Severity = iota
	// SeverityError messages are logged as errors.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityStatus:
		return "status"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Message is a templated message; placeholders in Text (e.g. "@pid") are
// replaced by their Substitutions entry when rendered.
type Message struct {
	Text          string
	Substitutions map[string]string
	Severity      Severity
}

// String renders the message with its substitutions applied.
func (m Message) String() string {
	if len(m.Substitutions) == 0 {
		return m.Text
	}
	// Longest placeholder first so "@dsid" is not eaten by "@ds".
	keys := make([]string, 0, len(m.Substitutions))
	for k := range m.Substitutions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, m.Substitutions[k])
	}
	return strings.NewReplacer(pairs...).Replace(m.Text)
}

// Outcome is the result of a metadata operation. Message is nil when there
// is nothing to report.
type Outcome struct {
	Success bool
	Message *Message
}
