package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid E.164 format",
			input: "+96891234567",
			want:  "+96891234567",
		},
		{
			name:  "oman local 8 digit mobile",
			input: "91234567",
			want:  "+96891234567",
		},
		{
			name:  "oman local starting 7",
			input: "71234567",
			want:  "+96871234567",
		},
		{
			name:  "with spaces and dashes",
			input: " +968 91-23-45-67 ",
			want:  "+96891234567",
		},
		{
			name:  "country code without plus",
			input: "96891234567",
			want:  "+96891234567",
		},
		{
			name:  "arabic digits",
			input: "٩١٢٣٤٥٦٧",
			want:  "+96891234567",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	once := NormalizePhone("91234567")
	twice := NormalizePhone(once)
	if once != twice {
		t.Errorf("normalization not idempotent: %q vs %q", once, twice)
	}
}
