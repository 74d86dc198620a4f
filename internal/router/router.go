// Package router classifies inbound chat identities against operator
// allow/deny token lists. The two-list, deny-wins design lets an
// operator watch "everything except X" or "only these, except also
// not Y" without boolean-expression configuration syntax.
package router

import (
	"regexp"
	"strings"
)

// Kind is the variant of a parsed list entry.
type Kind string

const (
	KindStar     Kind = "star"
	KindID       Kind = "id"
	KindUsername Kind = "username"
	KindTitle    Kind = "title"
)

// Token is one parsed unit of an allow or deny list. Parsed once from
// operator configuration, immutable thereafter.
type Token struct {
	Kind  Kind
	Value string
}

func (t Token) String() string {
	if t.Kind == KindStar {
		return "*"
	}
	return string(t.Kind) + ":" + t.Value
}

// Chat is the identity the transport layer exposes for an inbound
// chat: a canonical id, an optional username, and a display title.
type Chat struct {
	// ID is the bare numeric id as reported by the transport.
	ID string
	// Username includes the leading @ when present.
	Username string
	Title    string
	// Channel marks channels/supergroups, whose full bot-API id
	// carries the -100 prefix.
	Channel bool
}

// FullID returns the id in the bot-API convention: channels and
// supergroups are prefixed with -100.
func (c Chat) FullID() string {
	if c.Channel {
		return "-100" + c.ID
	}
	return c.ID
}

// Label returns the most human-friendly identifier for logging.
func (c Chat) Label() string {
	switch {
	case c.Username != "":
		return c.Username
	case c.Title != "":
		return c.Title
	default:
		return c.FullID()
	}
}

var (
	tmeRe = regexp.MustCompile(`(?i)^https?://t\.me/(@?[\w\d_+-]+)(?:/.*)?$`)
	idRe  = regexp.MustCompile(`^-?\d+$`)
)

// fromTMe folds a t.me link into @username form. Private invite links
// (t.me/+hash) have no username and yield nothing.
func fromTMe(s string) string {
	m := tmeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ""
	}
	handle := m[1]
	if strings.HasPrefix(handle, "@") {
		return handle
	}
	if strings.HasPrefix(handle, "+") {
		return ""
	}
	return "@" + handle
}

// ParseList parses a comma-separated operator configuration string
// into tokens. Entry classification: * or all is the wildcard, @name
// is a username, an optionally signed all-digit entry is an id, and
// anything else matches titles case-insensitively by equality or
// substring containment.
func ParseList(raw string) []Token {
	var tokens []Token
	for _, part := range strings.Split(raw, ",") {
		entry := strings.TrimSpace(part)
		if entry == "" {
			continue
		}
		if folded := fromTMe(entry); folded != "" {
			entry = folded
		}

		switch {
		case entry == "*" || strings.EqualFold(entry, "all"):
			tokens = append(tokens, Token{Kind: KindStar, Value: "*"})
		case strings.HasPrefix(entry, "@"):
			tokens = append(tokens, Token{Kind: KindUsername, Value: strings.ToLower(entry)})
		case idRe.MatchString(entry):
			tokens = append(tokens, Token{Kind: KindID, Value: entry})
		default:
			tokens = append(tokens, Token{Kind: KindTitle, Value: strings.ToLower(entry)})
		}
	}
	return tokens
}

// Matches reports whether the token matches the chat identity.
func (t Token) Matches(c Chat) bool {
	switch t.Kind {
	case KindStar:
		return true
	case KindID:
		full := c.FullID()
		return t.Value == full || t.Value == strings.TrimPrefix(full, "-100")
	case KindUsername:
		return c.Username != "" && t.Value == strings.ToLower(c.Username)
	case KindTitle:
		title := strings.ToLower(c.Title)
		return title != "" && (title == t.Value || strings.Contains(title, t.Value))
	default:
		return false
	}
}

func matchAny(tokens []Token, c Chat) bool {
	for _, t := range tokens {
		if t.Matches(c) {
			return true
		}
	}
	return false
}

// Allowed decides whether a chat is watched. The deny list is
// evaluated first and always wins. An empty allow list, or one
// containing the wildcard, admits every non-denied chat; otherwise at
// least one allow token must match.
func Allowed(c Chat, allow, deny []Token) bool {
	if matchAny(deny, c) {
		return false
	}

	if len(allow) == 0 {
		return true
	}
	for _, t := range allow {
		if t.Kind == KindStar {
			return true
		}
	}

	return matchAny(allow, c)
}
