package logging

import "testing"

func TestMaskUserName(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		enabled  bool
		want     string
	}{
		{"マスキング有効", "j.smith", true, "j*****h"},
		{"マスキング無効", "j.smith", false, "j.smith"},
		{"短い名前はそのまま", "bob", true, "bob"},
		{"空文字列", "", true, ""},
		{"4文字", "anna", true, "a**a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskUserName(tt.userName, tt.enabled)
			if got != tt.want {
				t.Errorf("MaskUserName(%q, %v) = %q, want %q", tt.userName, tt.enabled, got, tt.want)
			}
		})
	}
}
