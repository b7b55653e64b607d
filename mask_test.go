package logsafe

import (
	"testing"
)

func TestSuffixMasker(t *testing.T) {
	tests := []struct {
		visible  int
		input    string
		expected string
	}{
		{2, "123456", "****56"},
		{4, "4111111111111111", "************1111"},
		{0, "secret", "******"},
		{6, "123456", "******"}, // Not longer than visible
		{10, "abc", "***"},
		{-3, "abc", "***"}, // Negative is zero
		{1, "pässwörd", "*******d"},
		{3, "", ""},
	}

	for _, tt := range tests {
		result := SuffixMasker(tt.visible).Mask(tt.input)
		if result != tt.expected {
			t.Errorf("SuffixMasker(%d).Mask(%q) = %q, want %q", tt.visible, tt.input, result, tt.expected)
		}
	}
}

func TestEmailMasker(t *testing.T) {
	m := EmailMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"alice@example.com", "a****@example.com"},
		{"bob@test.org", "b***@test.org"},
		{"a@b.com", "a***@b.com"},
		{"noatsign", "********"}, // No @
		{"@example.com", "************"},
	}

	for _, tt := range tests {
		result := m.Mask(tt.input)
		if result != tt.expected {
			t.Errorf("EmailMasker(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestCardMasker(t *testing.T) {
	m := CardMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"4111111111111111", "************1111"},
		{"4111 1111 1111 1111", "**** **** **** 1111"},
		{"4111-1111-1111-1111", "****-****-****-1111"},
		{"123", "***"}, // Too short
	}

	for _, tt := range tests {
		result := m.Mask(tt.input)
		if result != tt.expected {
			t.Errorf("CardMasker(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestPhoneMasker(t *testing.T) {
	m := PhoneMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"(555) 123-4567", "(***) ***-4567"},
		{"555-123-4567", "***-***-4567"},
		{"5551234567", "******4567"},
		{"123", "***"}, // Too short
	}

	for _, tt := range tests {
		result := m.Mask(tt.input)
		if result != tt.expected {
			t.Errorf("PhoneMasker(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestIPMasker(t *testing.T) {
	m := IPMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"192.168.1.100", "192.168.xxx.xxx"},
		{"10.0.0.1", "10.0.xxx.xxx"},
		{"2001:0db8:85a3:0000:0000:8a2e:0370:7334", "2001:0db8:85a3:0000:xxxx:xxxx:xxxx:xxxx"},
		{"2001:db8:85a3::8a2e:370:7334", "2001:db8:85a3:0000:xxxx:xxxx:xxxx:xxxx"},
		{"::1", "0000:0000:0000:0000:xxxx:xxxx:xxxx:xxxx"},
		{"::", "0000:0000:0000:0000:xxxx:xxxx:xxxx:xxxx"},
		{"invalid", "*******"},
	}

	for _, tt := range tests {
		result := m.Mask(tt.input)
		if result != tt.expected {
			t.Errorf("IPMasker(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestUUIDMasker(t *testing.T) {
	m := UUIDMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"550e8400-e29b-41d4-a716-446655440000", "550e8400-****-****-****-************"},
		{"not-a-uuid", "**********"},
	}

	for _, tt := range tests {
		result := m.Mask(tt.input)
		if result != tt.expected {
			t.Errorf("UUIDMasker(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestNameMasker(t *testing.T) {
	m := NameMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"John Smith", "J*** S****"},
		{"Alice", "A****"},
		{"  Zoë  Ng ", "Z** N*"},
		{"", ""},
	}

	for _, tt := range tests {
		result := m.Mask(tt.input)
		if result != tt.expected {
			t.Errorf("NameMasker(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestMaskerFunc(t *testing.T) {
	m := MaskerFunc(func(string) string { return "[hidden]" })
	if got := m.Mask("anything"); got != "[hidden]" {
		t.Errorf("MaskerFunc.Mask() = %q, want %q", got, "[hidden]")
	}
}

func TestIsValidMaskType(t *testing.T) {
	for mt := range builtinMaskers() {
		if !IsValidMaskType(mt) {
			t.Errorf("IsValidMaskType(%q) = false, want true", mt)
		}
	}
	if IsValidMaskType("ssn") {
		t.Error("IsValidMaskType(\"ssn\") = true, want false")
	}
}
