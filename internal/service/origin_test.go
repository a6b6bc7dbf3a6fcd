package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginAllowed(t *testing.T) {
	tests := []struct {
		name     string
		hostname string
		allowed  []string
		want     bool
	}{
		{"empty list allows anything", "evil.com", nil, true},
		{"empty list allows absent hostname", "", nil, true},
		{"exact match", "example.com", []string{"example.com"}, true},
		{"subdomain match", "app.example.com", []string{"example.com"}, true},
		{"deep subdomain match", "a.b.example.com", []string{"example.com"}, true},
		{"prefix is not a subdomain", "notexample.com", []string{"example.com"}, false},
		{"suffix attack rejected", "example.com.evil.com", []string{"example.com"}, false},
		{"localhost entry admits localhost", "localhost", []string{"localhost"}, true},
		{"localhost entry admits loopback ip", "127.0.0.1", []string{"localhost"}, true},
		{"localhost entry rejects others", "example.com", []string{"localhost"}, false},
		{"absent hostname passes a non-empty list", "", []string{"example.com"}, true},
		{"case insensitive", "App.Example.COM", []string{"example.com"}, true},
		{"second entry matches", "b.com", []string{"a.com", "b.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OriginAllowed(tt.hostname, tt.allowed))
		})
	}
}

func TestOriginHostname(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		referer string
		want    string
	}{
		{"origin header", "https://app.example.com", "", "app.example.com"},
		{"origin with port", "http://localhost:3000", "", "localhost"},
		{"falls back to referer", "", "https://shop.example.com/products", "shop.example.com"},
		{"origin wins over referer", "https://a.com", "https://b.com", "a.com"},
		{"both missing", "", "", ""},
		{"unparsable origin", "not a url", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OriginHostname(tt.origin, tt.referer))
		})
	}
}
