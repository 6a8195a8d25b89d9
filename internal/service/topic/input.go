package topic

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/forum-backend/internal/domain"
)

// maxEmailLength is the longest address accepted in target_emails.
const maxEmailLength = 254

// CreateTopicInput holds the attributes of a topic or private message request.
type CreateTopicInput struct {
	Title           string
	Raw             string
	Archetype       domain.Archetype
	TargetUsernames string // comma separated
	TargetEmails    string // comma separated
	Category        string // id or name
	AutoCloseTime   string // hours
	ViaEmail        bool
}

func (i CreateTopicInput) archetype() domain.Archetype {
	return i.Archetype.OrDefault()
}

func (i CreateTopicInput) usernames() []string {
	return splitList(i.TargetUsernames)
}

func (i CreateTopicInput) emails() []string {
	return splitList(i.TargetEmails)
}

// splitList splits a comma separated list, dropping blanks and
// case-insensitive repeats while keeping the first spelling.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key := strings.ToLower(part)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, part)
	}
	return out
}

// validateEmails returns an abort for the first address that is too long or
// does not parse as a bare address.
func validateEmails(emails []string) error {
	for _, e := range emails {
		if len(e) > maxEmailLength {
			return domain.NewAbort(domain.AbortMalformedInput, "target_emails",
				"email address exceeds "+strconv.Itoa(maxEmailLength)+" characters")
		}
		addr, err := mail.ParseAddress(e)
		if err != nil || addr.Address != e {
			return domain.NewAbort(domain.AbortMalformedInput, "target_emails", "invalid email address: "+e)
		}
	}
	return nil
}

// validateContent checks title, body and recipient count against the settings.
func validateContent(i CreateTopicInput, s domain.SiteSettings, recipients int) error {
	a := i.archetype()

	title := domain.CleanTitle(i.Title)
	titleLen := utf8.RuneCountInString(title)
	if titleLen < s.MinTitleLength(a) {
		return domain.NewAbort(domain.AbortMalformedInput, "title",
			"must be at least "+strconv.Itoa(s.MinTitleLength(a))+" characters")
	}
	if titleLen > s.MaxTopicTitleLength {
		return domain.NewAbort(domain.AbortMalformedInput, "title",
			"must be at most "+strconv.Itoa(s.MaxTopicTitleLength)+" characters")
	}

	if utf8.RuneCountInString(strings.TrimSpace(i.Raw)) < s.MinRawLength(a) {
		return domain.NewAbort(domain.AbortMalformedInput, "raw",
			"must be at least "+strconv.Itoa(s.MinRawLength(a))+" characters")
	}

	if a.IsPrivateMessage() {
		if recipients == 0 {
			return domain.NewAbort(domain.AbortMalformedInput, "target_usernames", "at least one recipient is required")
		}
		if recipients > s.MaxTargetRecipients {
			return domain.NewAbort(domain.AbortMalformedInput, "target_usernames",
				"at most "+strconv.Itoa(s.MaxTargetRecipients)+" recipients are allowed")
		}
	}
	return nil
}

// parseCategoryRef interprets the category attribute as an id when it parses
// as one, otherwise as a name.
func parseCategoryRef(ref string) (id uuid.UUID, name string, ok bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return uuid.Nil, "", false
	}
	if parsed, err := uuid.Parse(ref); err == nil {
		return parsed, "", true
	}
	return uuid.Nil, ref, true
}

// decimalHours matches a plain unsigned decimal such as "24", "1.5" or ".5".
var decimalHours = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)

// parseAutoClose converts the auto-close attribute (hours) into a duration.
// Only plain decimals are accepted. Blank, malformed, zero and values too
// small to yield a positive duration give ok=false.
func parseAutoClose(raw string) (time.Duration, bool) {
	raw = strings.TrimSpace(raw)
	if !decimalHours.MatchString(raw) {
		return 0, false
	}
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil || hours > maxAutoCloseHours {
		return 0, false
	}
	d := time.Duration(hours * float64(time.Hour))
	if d <= 0 {
		return 0, false
	}
	return d, true
}

// maxAutoCloseHours caps timers at twenty years.
const maxAutoCloseHours = 20 * 365 * 24
