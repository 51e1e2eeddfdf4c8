// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateTokenUniqueness(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		token, err := GenerateToken()
		if err != nil {
			t.Fatalf("GenerateToken failed: %v", err)
		}
		if token == "" {
			t.Fatal("Expected non-empty token")
		}
		if strings.Contains(token, "=") {
			t.Errorf("Token should not contain padding: %s", token)
		}
		if seen[token] {
			t.Fatalf("Duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}

func TestDeriveUsername(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		docID    string
		expected string
	}{
		{
			name:     "initial plus surname plus doc tail",
			fullName: "Ana María Rojas",
			docID:    "1002003",
			expected: "arojas003",
		},
		{
			name:     "accents folded to ascii",
			fullName: "José Muñoz",
			docID:    "456",
			expected: "jmunoz456",
		},
		{
			name:     "single name",
			fullName: "Shakira",
			docID:    "99",
			expected: "shakira99",
		},
		{
			name:     "empty name falls back",
			fullName: "",
			docID:    "123",
			expected: "estudiante123",
		},
		{
			name:     "long surname truncated",
			fullName: "Max Quinterosanchez",
			docID:    "987",
			expected: "mquinterosan987",
		},
		{
			name:     "short doc id kept whole",
			fullName: "Ana Cruz",
			docID:    "7",
			expected: "acruz7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveUsername(tt.fullName, tt.docID)
			if got != tt.expected {
				t.Errorf("DeriveUsername(%q, %q) = %q, want %q", tt.fullName, tt.docID, got, tt.expected)
			}
		})
	}
}

func TestWithSuffix(t *testing.T) {
	if got := WithSuffix("arojas003", 1); got != "arojas003" {
		t.Errorf("Attempt 1 should be the bare name, got %q", got)
	}
	if got := WithSuffix("arojas003", 2); got != "arojas0032" {
		t.Errorf("Attempt 2 should append the attempt number, got %q", got)
	}
	if got := WithSuffix("arojas003", 10); got != "arojas00310" {
		t.Errorf("Attempt 10 should append the attempt number, got %q", got)
	}
}

func TestValidateAdminKey(t *testing.T) {
	if err := ValidateAdminKey("secret", "secret"); err != nil {
		t.Errorf("Expected matching key to validate, got %v", err)
	}
	if err := ValidateAdminKey("wrong", "secret"); err == nil {
		t.Error("Expected mismatched key to fail")
	}
	if err := ValidateAdminKey("", "secret"); err == nil {
		t.Error("Expected empty key to fail")
	}
	// An unset configured key must never validate anything
	if err := ValidateAdminKey("", ""); err == nil {
		t.Error("Expected empty configured key to fail")
	}
}
