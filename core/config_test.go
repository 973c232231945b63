package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestReadConfigYaml(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected Config
		wantErr  bool
	}{
		{
			name: "valid complete config",
			yaml: `
server:
  port: 9090
  hostname: "careers.example.com"
  title: "Career Guide"
  description: "Guides for every career"
  base-url: "https://careers.example.com"
images:
  placeholder: "https://cdn.example.com/ph.jpg"
  default-hero: "/static/hero.jpg"
  favicon: "/static/logo.png"
`,
			expected: Config{
				Server: Server{
					Port:        9090,
					Hostname:    "careers.example.com",
					Title:       "Career Guide",
					Description: "Guides for every career",
					BaseURL:     "https://careers.example.com",
				},
				Images: Images{
					PlaceholderImage: "https://cdn.example.com/ph.jpg",
					DefaultHeroImage: "/static/hero.jpg",
					Favicon:          "/static/logo.png",
				},
			},
			wantErr: false,
		},
		{
			name: "minimal config gets image defaults",
			yaml: `
server:
  port: 8080
`,
			expected: Config{
				Server: Server{Port: 8080},
				Images: Images{
					PlaceholderImage: DefaultPlaceholder,
					DefaultHeroImage: DefaultHero,
				},
			},
			wantErr: false,
		},
		{
			name:    "invalid port",
			yaml:    "server:\n  port: 75000\n",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			yaml:    `invalid: yaml: content: [`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.yaml)

			var config Config
			err := ReadConfigYaml(&config, path)

			if (err != nil) != tt.wantErr {
				t.Errorf("ReadConfigYaml() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			if config.FilePath != path {
				t.Errorf("Expected FilePath %s, got %s", path, config.FilePath)
			}
			if config.Server.Port != tt.expected.Server.Port {
				t.Errorf("Port = %d, want %d", config.Server.Port, tt.expected.Server.Port)
			}
			if config.Server.Hostname != tt.expected.Server.Hostname {
				t.Errorf("Hostname = %q, want %q", config.Server.Hostname, tt.expected.Server.Hostname)
			}
			if config.Images.PlaceholderImage != tt.expected.Images.PlaceholderImage {
				t.Errorf("PlaceholderImage = %q, want %q",
					config.Images.PlaceholderImage, tt.expected.Images.PlaceholderImage)
			}
			if config.Images.DefaultHeroImage != tt.expected.Images.DefaultHeroImage {
				t.Errorf("DefaultHeroImage = %q, want %q",
					config.Images.DefaultHeroImage, tt.expected.Images.DefaultHeroImage)
			}
		})
	}
}

func TestReadConfigYamlMissingFile(t *testing.T) {
	var config Config
	err := ReadConfigYaml(&config, filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestServerValidate(t *testing.T) {
	tests := []struct {
		name    string
		server  Server
		wantErr error
	}{
		{"valid", Server{Port: 8080, Hostname: "localhost"}, nil},
		{"valid ip", Server{Port: 8080, Hostname: "127.0.0.1"}, nil},
		{"zero port", Server{Port: 0}, ErrInvalidPort},
		{"port too large", Server{Port: 70000}, ErrInvalidPort},
		{"hostname with space", Server{Port: 80, Hostname: "bad host"}, ErrInvalidHostname},
		{"hostname leading dot", Server{Port: 80, Hostname: ".example.com"}, ErrInvalidHostname},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.server.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigPaths(t *testing.T) {
	config := Config{SiteDirectory: "/srv/site"}

	if got := config.ContentDir(); got != "/srv/site/contents" {
		t.Errorf("ContentDir() = %q", got)
	}
	if got := config.StructureFile(); got != "/srv/site/config/structure.json" {
		t.Errorf("StructureFile() = %q", got)
	}
	if got := config.StaticDir(); got != "/srv/site/static" {
		t.Errorf("StaticDir() = %q", got)
	}
	if got := config.TemplateDir(); got != "/srv/site/templates" {
		t.Errorf("TemplateDir() = %q", got)
	}
}

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	if err := config.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
	if config.Server.Port != DefaultPort {
		t.Errorf("Port = %d", config.Server.Port)
	}
	if config.Images.PlaceholderImage == "" {
		t.Error("Expected a default placeholder image")
	}
}
