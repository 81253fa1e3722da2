package auth

import (
	"testing"
)

func TestHashPassword(t *testing.T) {
	plain := "testpassword123"

	hash, err := HashPassword(plain)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}

	if hash == "" {
		t.Error("Expected non-empty hash")
	}
	if hash == plain {
		t.Error("Hash should not equal plain text password")
	}
}

func TestComparePassword(t *testing.T) {
	plain := "testpassword123"

	hash, err := HashPassword(plain)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}

	if err := ComparePassword(hash, plain); err != nil {
		t.Errorf("ComparePassword() failed for correct password: %v", err)
	}
	if err := ComparePassword(hash, "wrongpassword"); err == nil {
		t.Error("ComparePassword() should fail for wrong password")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		plain   string
		wantErr bool
	}{
		{"long enough", "12345678", false},
		{"too short", "1234567", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.plain)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.plain, err, tt.wantErr)
			}
		})
	}
}
