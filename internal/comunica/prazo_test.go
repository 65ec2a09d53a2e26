package comunica

import "testing"

func TestFinalDeadline(t *testing.T) {
	eight := 8
	fifteen := 15
	one := 1

	tests := []struct {
		name string
		data string
		dias *int
		want string
	}{
		{"eight days", "2024-03-01", &eight, "2024-03-13"},
		{"fifteen days", "2024-01-10", &fifteen, "2024-02-01"},
		{"one day", "2024-03-01", &one, "2024-03-04"},
		{"timestamp input truncated", "2024-03-01T14:22:00.000Z", &eight, "2024-03-13"},
		{"no deadline", "2024-03-01", nil, ""},
		{"no date", "", &eight, ""},
		{"unparseable date", "01/03/2024", &eight, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FinalDeadline(tt.data, tt.dias); got != tt.want {
				t.Errorf("FinalDeadline(%q, %v) = %q, want %q", tt.data, tt.dias, got, tt.want)
			}
		})
	}
}
