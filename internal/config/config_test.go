package config

import "testing"

func TestServerAddr(t *testing.T) {
	cases := []struct {
		port    string
		want    string
		wantErr bool
	}{
		{port: "8080", want: ":8080"},
		{port: ":9090", want: ":9090"},
		{port: "127.0.0.1:8080", want: "127.0.0.1:8080"},
		{port: " 8080 ", want: ":8080"},
		{port: "", wantErr: true},
		{port: "80 80", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ServerConfig{Port: tc.port}.Addr()
		if tc.wantErr {
			if err == nil {
				t.Errorf("Addr(%q): expected error, got %q", tc.port, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Addr(%q): unexpected error: %v", tc.port, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Addr(%q) = %q, want %q", tc.port, got, tc.want)
		}
	}
}

func TestNLPEnabled(t *testing.T) {
	if (NLPConfig{}).Enabled() {
		t.Fatal("empty NLP config should be disabled")
	}
	if !(NLPConfig{BaseURL: "http://nlp.internal"}).Enabled() {
		t.Fatal("NLP config with base URL should be enabled")
	}
}

func TestArkEnabled(t *testing.T) {
	if (ArkConfig{Model: "m"}).Enabled() {
		t.Fatal("model without credentials should be disabled")
	}
	if !(ArkConfig{Model: "m", APIKey: "k"}).Enabled() {
		t.Fatal("model with API key should be enabled")
	}
	if !(ArkConfig{Model: "m", AccessKey: "a", SecretKey: "s"}).Enabled() {
		t.Fatal("model with AK/SK pair should be enabled")
	}
}
