package tools

import "testing"

func TestToAddressString(t *testing.T) {
	tests := []struct {
		name string
		host string
		port uint16
		want string
	}{
		{name: "loopback", host: "127.0.0.1", port: 8080, want: "127.0.0.1:8080"},
		{name: "hostname", host: "example.com", port: 443, want: "example.com:443"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToAddressString(tt.host, tt.port); got != tt.want {
				t.Errorf("ToAddressString() = %v, want %v", got, tt.want)
			}
		})
	}
}
