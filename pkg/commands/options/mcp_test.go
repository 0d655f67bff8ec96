package options

import "testing"

func TestMCPOptionsAddr(t *testing.T) {
	tests := map[string]struct {
		o       MCPOptions
		want    string
		wantErr bool
	}{
		"default host": {o: MCPOptions{Port: 8080}, want: "127.0.0.1:8080"},
		"explicit":     {o: MCPOptions{Host: "0.0.0.0", Port: 0}, want: "0.0.0.0:0"},
		"ipv6":         {o: MCPOptions{Host: "::1", Port: 9000}, want: "[::1]:9000"},
		"bad port":     {o: MCPOptions{Port: 70000}, wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := tc.o.Addr()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Addr() error = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("Addr() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMCPOptionsEndpoint(t *testing.T) {
	for in, want := range map[string]string{"": "/mcp", "rpc": "/rpc", " /x ": "/x"} {
		o := MCPOptions{Path: in}
		if got := o.Endpoint(); got != want {
			t.Fatalf("Endpoint(%q) = %q, want %q", in, got, want)
		}
	}
}
