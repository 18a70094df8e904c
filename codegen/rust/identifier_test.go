package rust

import "testing"

func TestEscapeIdent(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"type", "r#type"},
		{"match", "r#match"},
		{"async", "r#async"},
		{"self", "self_"},
		{"Self", "Self_"},
		{"super", "super_"},
		{"crate", "crate_"},
		{"balances", "balances"},
		{"AccountId32", "AccountId32"},
		{"_0", "_0"},
		{"", "_"},
		{"1st", "_1st"},
		{"set-code", "set_code"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := escapeIdent(tt.input)
			if got != tt.want {
				t.Errorf("escapeIdent(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
