package domain

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr Kind
	}{
		{
			name: "already canonical",
			raw:  "https://example.com/article",
			want: "https://example.com/article",
		},
		{
			name: "scheme defaulted to https",
			raw:  "youtube.com/watch?v=abc123",
			want: "https://youtube.com/watch?v=abc123",
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  https://example.com  ",
			want: "https://example.com",
		},
		{
			name: "plain http kept",
			raw:  "http://example.com",
			want: "http://example.com",
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: KindEmptyInput,
		},
		{
			name:    "whitespace only",
			raw:     "   ",
			wantErr: KindEmptyInput,
		},
		{
			name:    "unsupported scheme",
			raw:     "ftp://example.com/file",
			wantErr: KindMalformedURL,
		},
		{
			name:    "no hostname",
			raw:     "https://",
			wantErr: KindMalformedURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Normalize(%q) = %q, want error %s", tt.raw, got, tt.wantErr)
				}
				if KindOf(err) != tt.wantErr {
					t.Errorf("Normalize(%q) error kind = %s, want %s", tt.raw, KindOf(err), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"youtube.com/watch?v=abc123",
		"  example.com/path?q=1  ",
		"https://vm.tiktok.com/ZMabcdef/",
	}
	for _, raw := range inputs {
		once, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize(%q) unexpected error: %v", raw, err)
		}
		twice, err := Normalize(once)
		if err != nil {
			t.Fatalf("Normalize(%q) unexpected error: %v", once, err)
		}
		if once != twice {
			t.Errorf("Normalize not idempotent: %q -> %q -> %q", raw, once, twice)
		}
	}
}

func TestExtractVideoRef(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantPlatform Platform
		wantID       string
	}{
		{
			name:         "youtube watch",
			url:          "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantPlatform: PlatformYouTube,
			wantID:       "dQw4w9WgXcQ",
		},
		{
			name:         "youtube watch with extra params",
			url:          "https://youtube.com/watch?t=42&v=abc123",
			wantPlatform: PlatformYouTube,
			wantID:       "abc123",
		},
		{
			name:         "youtube shorts",
			url:          "https://youtube.com/shorts/xyz_789",
			wantPlatform: PlatformYouTube,
			wantID:       "xyz_789",
		},
		{
			name:         "youtube embed",
			url:          "https://www.youtube.com/embed/abc123",
			wantPlatform: PlatformYouTube,
			wantID:       "abc123",
		},
		{
			name:         "youtu.be short link",
			url:          "https://youtu.be/dQw4w9WgXcQ?t=10",
			wantPlatform: PlatformYouTube,
			wantID:       "dQw4w9WgXcQ",
		},
		{
			name:         "tiktok canonical video",
			url:          "https://www.tiktok.com/@someone/video/7012345678901234567",
			wantPlatform: PlatformTikTok,
			wantID:       "7012345678901234567",
		},
		{
			name:         "tiktok vm short code",
			url:          "https://vm.tiktok.com/ZMabcdef/",
			wantPlatform: PlatformTikTok,
			wantID:       "ZMabcdef",
		},
		{
			name: "plain article",
			url:  "https://example.com/blog/post",
		},
		{
			name: "lookalike youtube registration",
			url:  "https://fakeyoutube.com/watch?v=abc123",
		},
		{
			name: "lookalike tiktok registration",
			url:  "https://nottiktok.com/@u/video/123",
		},
		{
			name: "youtube homepage without id",
			url:  "https://www.youtube.com/",
		},
		{
			name: "tiktok profile without video",
			url:  "https://www.tiktok.com/@someone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := ExtractVideoRef(tt.url)
			if tt.wantID == "" {
				if ref != nil {
					t.Fatalf("ExtractVideoRef(%q) = %+v, want nil", tt.url, ref)
				}
				return
			}
			if ref == nil {
				t.Fatalf("ExtractVideoRef(%q) = nil, want %s/%s", tt.url, tt.wantPlatform, tt.wantID)
			}
			if ref.Platform != tt.wantPlatform || ref.ID != tt.wantID {
				t.Errorf("ExtractVideoRef(%q) = %s/%s, want %s/%s",
					tt.url, ref.Platform, ref.ID, tt.wantPlatform, tt.wantID)
			}
		})
	}
}
