package logsafe

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaskType names a content-aware masking rule usable in `log.mask` tags.
type MaskType string

const (
	MaskEmail MaskType = "email" // alice@example.com -> a****@example.com
	MaskCard  MaskType = "card"  // 4111-1111-1111-1111 -> ****-****-****-1111
	MaskPhone MaskType = "phone" // (555) 123-4567 -> (***) ***-4567
	MaskIP    MaskType = "ip"    // 192.168.1.100 -> 192.168.xxx.xxx
	MaskUUID  MaskType = "uuid"  // 550e8400-e29b-... -> 550e8400-****-****-****-************
	MaskName  MaskType = "name"  // John Smith -> J*** S****
)

// validMaskTypes contains all valid mask types for tag validation.
var validMaskTypes = map[MaskType]bool{
	MaskEmail: true,
	MaskCard:  true,
	MaskPhone: true,
	MaskIP:    true,
	MaskUUID:  true,
	MaskName:  true,
}

// IsValidMaskType returns true if the type is a known mask type.
func IsValidMaskType(mt MaskType) bool {
	return validMaskTypes[mt]
}

// Masker applies masking to the textual form of a field value.
type Masker interface {
	Mask(value string) string
}

// MaskerFunc adapts a function to the Masker interface.
type MaskerFunc func(value string) string

// Mask calls f(value).
func (f MaskerFunc) Mask(value string) string {
	return f(value)
}

// suffixMasker reveals only the trailing visible runes: 123456 -> ****56
type suffixMasker struct {
	visible int
}

// SuffixMasker returns a masker that replaces every rune but the last visible ones with '*'.
// A value no longer than visible is masked entirely. Negative visible counts as zero.
func SuffixMasker(visible int) Masker {
	if visible < 0 {
		visible = 0
	}
	return &suffixMasker{visible: visible}
}

func (m *suffixMasker) Mask(value string) string {
	n := utf8.RuneCountInString(value)
	if n <= m.visible {
		return strings.Repeat("*", n)
	}
	runes := []rune(value)
	return strings.Repeat("*", n-m.visible) + string(runes[n-m.visible:])
}

// emailMasker keeps the first rune of the local part and the whole domain.
type emailMasker struct{}

// EmailMasker returns a masker for email addresses.
func EmailMasker() Masker {
	return &emailMasker{}
}

func (m *emailMasker) Mask(value string) string {
	at := strings.LastIndex(value, "@")
	if at < 1 {
		return strings.Repeat("*", utf8.RuneCountInString(value))
	}
	local := []rune(value[:at])
	return string(local[0]) + strings.Repeat("*", max(len(local)-1, 3)) + value[at:]
}

// cardMasker keeps the last four digits and the separator layout.
type cardMasker struct{}

// CardMasker returns a masker for payment card numbers.
func CardMasker() Masker {
	return &cardMasker{}
}

func (m *cardMasker) Mask(value string) string {
	return maskDigitsKeepLast(value, 4)
}

// phoneMasker keeps the last four digits and the punctuation layout.
type phoneMasker struct{}

// PhoneMasker returns a masker for phone numbers.
func PhoneMasker() Masker {
	return &phoneMasker{}
}

func (m *phoneMasker) Mask(value string) string {
	return maskDigitsKeepLast(value, 4)
}

// maskDigitsKeepLast stars every digit except the last keep digits, leaving
// separators where they were. Values with too few digits are masked entirely.
func maskDigitsKeepLast(value string, keep int) string {
	total := 0
	for _, r := range value {
		if unicode.IsDigit(r) {
			total++
		}
	}
	if total <= keep {
		return strings.Repeat("*", utf8.RuneCountInString(value))
	}

	var b strings.Builder
	seen := 0
	for _, r := range value {
		if !unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		seen++
		if seen > total-keep {
			b.WriteRune(r)
		} else {
			b.WriteByte('*')
		}
	}
	return b.String()
}

// ipMasker hides the host part of an address.
type ipMasker struct{}

// IPMasker returns a masker for IPv4 and IPv6 addresses.
// IPv4 keeps the first two octets; IPv6 keeps the first four groups.
func IPMasker() Masker {
	return &ipMasker{}
}

func (m *ipMasker) Mask(value string) string {
	if parts := strings.Split(value, "."); len(parts) == 4 {
		return parts[0] + "." + parts[1] + ".xxx.xxx"
	}
	if strings.Contains(value, ":") {
		parts := strings.Split(expandIPv6(value), ":")
		if len(parts) == 8 {
			return strings.Join(parts[:4], ":") + ":xxxx:xxxx:xxxx:xxxx"
		}
	}
	return strings.Repeat("*", utf8.RuneCountInString(value))
}

// expandIPv6 expands :: notation to full 8-group form.
func expandIPv6(value string) string {
	head, tail, found := strings.Cut(value, "::")
	if !found || strings.Contains(tail, "::") {
		return value
	}

	var left, right []string
	if head != "" {
		left = strings.Split(head, ":")
	}
	if tail != "" {
		right = strings.Split(tail, ":")
	}

	missing := 8 - len(left) - len(right)
	if missing < 0 {
		return value
	}

	groups := append([]string{}, left...)
	for range missing {
		groups = append(groups, "0000")
	}
	return strings.Join(append(groups, right...), ":")
}

// uuidMasker keeps the first segment of a UUID.
type uuidMasker struct{}

// UUIDMasker returns a masker for UUIDs.
func UUIDMasker() Masker {
	return &uuidMasker{}
}

func (m *uuidMasker) Mask(value string) string {
	first, _, _ := strings.Cut(value, "-")
	if strings.Count(value, "-") != 4 {
		return strings.Repeat("*", utf8.RuneCountInString(value))
	}
	return first + "-****-****-****-************"
}

// nameMasker keeps the first letter of every word.
type nameMasker struct{}

// NameMasker returns a masker for personal names.
func NameMasker() Masker {
	return &nameMasker{}
}

func (m *nameMasker) Mask(value string) string {
	words := strings.Fields(value)
	for i, word := range words {
		runes := []rune(word)
		words[i] = string(runes[0]) + strings.Repeat("*", len(runes)-1)
	}
	return strings.Join(words, " ")
}

// builtinMaskers returns the default masker registry.
func builtinMaskers() map[MaskType]Masker {
	return map[MaskType]Masker{
		MaskEmail: EmailMasker(),
		MaskCard:  CardMasker(),
		MaskPhone: PhoneMasker(),
		MaskIP:    IPMasker(),
		MaskUUID:  UUIDMasker(),
		MaskName:  NameMasker(),
	}
}
