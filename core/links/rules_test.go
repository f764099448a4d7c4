package links

import "testing"

func TestIsStaticAsset(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/logo.png", true},
		{"https://example.com/app.js", true},
		{"https://example.com/style.CSS", true},
		{"https://example.com/about", false},
		{"https://example.com/", false},
		{"https://example.com/careers.html", false},
	}
	for _, tc := range tests {
		if got := IsStaticAsset(tc.url); got != tc.want {
			t.Errorf("IsStaticAsset(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/about/", "https://example.com/about"},
		{"https://example.com/about#team", "https://example.com/about"},
		{"https://example.com/", "https://example.com/"},
		{"https://example.com/a/b", "https://example.com/a/b"},
	}
	for _, tc := range tests {
		if got := Normalize(tc.url); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		href string
		base string
		want string
	}{
		{"/about", "https://acme.com", "https://acme.com/about"},
		{"careers", "https://acme.com/jobs/", "https://acme.com/jobs/careers"},
		{"https://other.com/x#frag", "https://acme.com", "https://other.com/x"},
		{"/about", "://bad", ""},
	}
	for _, tc := range tests {
		if got := Resolve(tc.href, tc.base); got != tc.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tc.href, tc.base, got, tc.want)
		}
	}
}

func TestAddressable(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/about", true},
		{"http://example.com", true},
		{"/about", false},
		{"example.com/about", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := Addressable(tc.url); got != tc.want {
			t.Errorf("Addressable(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestSameHost(t *testing.T) {
	if !SameHost("https://acme.com/a", "https://acme.com/b") {
		t.Error("same host not detected")
	}
	if SameHost("https://acme.com", "https://other.com") {
		t.Error("different hosts reported equal")
	}
	if SameHost("/relative", "/also-relative") {
		t.Error("hostless URLs reported equal")
	}
}
