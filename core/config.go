package core

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v2"
)

// Configuration constants
const (
	DefaultPort        = 8080
	DefaultHostname    = "localhost"
	DefaultTitle       = "Career Guide"
	DefaultBaseURL     = "http://localhost:8080"
	DefaultPlaceholder = "https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d?q=80&w=800&auto=format&fit=crop"
	DefaultHero        = "/static/default-hero.jpg"
	MinPort            = 1
	MaxPort            = 65535
	MaxHostnameLength  = 253
	MaxTitleLength     = 200
	MaxDescLength      = 500
)

type Server struct {
	Port        int    `yaml:"port"`
	Hostname    string `yaml:"hostname"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	BaseURL     string `yaml:"base-url"`
}

func (s *Server) Validate() error {
	if s.Port < MinPort || s.Port > MaxPort {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, s.Port)
	}

	if s.Hostname != "" {
		if len(s.Hostname) > MaxHostnameLength {
			return fmt.Errorf("%w: hostname too long (%d > %d)",
				ErrInvalidHostname, len(s.Hostname), MaxHostnameLength)
		}

		if strings.Contains(s.Hostname, " ") || strings.Contains(s.Hostname, "\t") {
			return fmt.Errorf("%w: hostname contains whitespace", ErrInvalidHostname)
		}

		// Check if it's a valid IP or hostname
		if net.ParseIP(s.Hostname) == nil {
			if !isValidHostname(s.Hostname) {
				return fmt.Errorf("%w: invalid hostname format", ErrInvalidHostname)
			}
		}
	}

	if len(s.Title) > MaxTitleLength {
		return fmt.Errorf("title too long: %d > %d", len(s.Title), MaxTitleLength)
	}

	if len(s.Description) > MaxDescLength {
		return fmt.Errorf("description too long: %d > %d", len(s.Description), MaxDescLength)
	}

	return nil
}

// Performs basic hostname validation
func isValidHostname(hostname string) bool {
	if hostname == "" || len(hostname) > MaxHostnameLength {
		return false
	}

	// Hostname cannot start or end with a dot
	if strings.HasPrefix(hostname, ".") || strings.HasSuffix(hostname, ".") {
		return false
	}

	// Check each label
	labels := strings.Split(hostname, ".")
	for _, label := range labels {
		if len(label) == 0 || len(label) > 63 {
			return false
		}

		// Labels cannot start or end with hyphen
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}

		// Labels must contain only alphanumeric characters and hyphens
		for _, char := range label {
			if !((char >= 'a' && char <= 'z') ||
				(char >= 'A' && char <= 'Z') ||
				(char >= '0' && char <= '9') ||
				char == '-') {
				return false
			}
		}
	}

	return true
}

// Images holds the site-wide image fallback configuration. Thumbnails and
// category images without an explicit value resolve to PlaceholderImage;
// detail pages without any usable image resolve to DefaultHeroImage.
type Images struct {
	PlaceholderImage string `yaml:"placeholder"`
	DefaultHeroImage string `yaml:"default-hero"`
	Favicon          string `yaml:"favicon"`
}

func (i *Images) Validate() error {
	if i.Favicon != "" && !isValidPath(i.Favicon) {
		return fmt.Errorf("%w: invalid favicon path", ErrInvalidPath)
	}

	if i.DefaultHeroImage != "" && !isLocalOrRemotePath(i.DefaultHeroImage) {
		return fmt.Errorf("%w: invalid default hero path", ErrInvalidPath)
	}

	return nil
}

type Config struct {
	FilePath      string
	SiteDirectory string
	Mode          string
	OutDirectory  string
	Server        Server `yaml:"server"`
	Images        Images `yaml:"images"`
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server configuration error: %w", err)
	}

	if err := c.Images.Validate(); err != nil {
		return fmt.Errorf("images configuration error: %w", err)
	}

	return nil
}

// ContentDir returns the directory holding the markdown content files.
func (c *Config) ContentDir() string {
	return filepath.Join(c.SiteDirectory, "contents")
}

// StructureFile returns the path to the category catalog asset.
func (c *Config) StructureFile() string {
	return filepath.Join(c.SiteDirectory, "config", "structure.json")
}

// AuthorsFile returns the path to the site authors asset.
func (c *Config) AuthorsFile() string {
	return filepath.Join(c.SiteDirectory, "config", "authors.yaml")
}

// StaticDir returns the directory with static assets (robots.txt, images, css).
func (c *Config) StaticDir() string {
	return filepath.Join(c.SiteDirectory, "static")
}

// TemplateDir returns the directory with the HTML page templates.
func (c *Config) TemplateDir() string {
	return filepath.Join(c.SiteDirectory, "templates")
}

// Validates the site directory
func (c *Config) validateSiteDirectory() error {
	if c.SiteDirectory == "" {
		return fmt.Errorf("%w: site directory", ErrEmptyDirectory)
	}

	if !isValidPath(c.SiteDirectory) {
		return fmt.Errorf("%w: site directory", ErrInvalidPath)
	}

	// Check if directory exists
	if _, err := os.Stat(c.SiteDirectory); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrDirectoryNotExist, c.SiteDirectory)
	}

	return nil
}

// Validates the output directory
func (c *Config) validateOutDirectory() error {
	if c.OutDirectory == "" {
		return ErrMissingOutput
	}

	if !isValidPath(c.OutDirectory) {
		return fmt.Errorf("%w: output directory", ErrInvalidPath)
	}

	return nil
}

// Validates file system paths
func isValidPath(path string) bool {
	if path == "" {
		return false
	}

	// Check for path traversal attempts
	if strings.Contains(path, "../") || strings.Contains(path, "..\\") {
		return false
	}

	// Check for invalid characters (basic check)
	invalidChars := []string{"\x00", "<", ">", "|", "?", "*"}
	for _, char := range invalidChars {
		if strings.Contains(path, char) {
			return false
		}
	}

	return true
}

// Image values may be local paths or remote URLs
func isLocalOrRemotePath(path string) bool {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return true
	}
	return isValidPath(path)
}

// Options defines the command-line options structure
type Options struct {
	Port     int    `short:"p" long:"port" description:"Port to run the HTTP server on" default:"8080"`
	Hostname string `short:"h" long:"hostname" description:"Hostname of the HTTP server" default:"localhost"`
	Out      string `short:"o" long:"out" description:"Output directory"`
	Help     bool   `long:"help" description:"Display help information"`
}

func (o *Options) Validate() error {
	if o.Port < MinPort || o.Port > MaxPort {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, o.Port)
	}

	if o.Hostname != "" && !isValidHostname(o.Hostname) {
		return fmt.Errorf("%w: %s", ErrInvalidHostname, o.Hostname)
	}

	if o.Out != "" && !isValidPath(o.Out) {
		return fmt.Errorf("%w: output directory", ErrInvalidPath)
	}

	return nil
}

// Commands defines the available subcommands
type Commands struct {
	Run     RunCommand     `command:"run" description:"Run the server from a site directory"`
	Dump    DumpCommand    `command:"dump" description:"Dump all parsed content to disk"`
	Version VersionCommand `command:"version" description:"Print the build version"`
}

type RunCommand struct {
	Args struct {
		Directory string `positional-arg-name:"directory" description:"Site directory to serve"`
	} `positional-args:"yes" required:"yes"`
}

type DumpCommand struct {
	Args struct {
		Directory string `positional-arg-name:"directory" description:"Site directory with source files"`
	} `positional-args:"yes" required:"yes"`
}

type VersionCommand struct {
	Args struct {
	} `positional-args:"no" required:"no"`
}

// Reads and validates a YAML configuration file
func ReadConfigYaml(config *Config, filePath string) error {
	if filePath == "" {
		return fmt.Errorf("%w: empty file path", ErrInvalidPath)
	}

	// Validate file path
	if !isValidPath(filePath) {
		return fmt.Errorf("%w: %s", ErrInvalidPath, filePath)
	}

	// Set the file path
	config.FilePath = filePath

	// Read file
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, filePath)
		}
		return fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidYAML, err.Error())
	}

	// Fall back to defaults for the image chain if not configured
	if config.Images.PlaceholderImage == "" {
		config.Images.PlaceholderImage = DefaultPlaceholder
	}
	if config.Images.DefaultHeroImage == "" {
		config.Images.DefaultHeroImage = DefaultHero
	}
	if config.Server.BaseURL == "" {
		config.Server.BaseURL = DefaultBaseURL
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	return nil
}

// Creates a new configuration with default values
func NewDefaultConfig() Config {
	return Config{
		Server: Server{
			Port:        DefaultPort,
			Hostname:    DefaultHostname,
			Title:       DefaultTitle,
			Description: "",
			BaseURL:     DefaultBaseURL,
		},
		Images: Images{
			PlaceholderImage: DefaultPlaceholder,
			DefaultHeroImage: DefaultHero,
			Favicon:          "/static/logo.png",
		},
	}
}

// Parses command line arguments and returns a validated configuration
func ParseCommandLineArguments() (Config, error) {
	// Initialize config with defaults
	config := NewDefaultConfig()

	var opts Options
	var commands Commands

	parser := flags.NewParser(&opts, flags.Default)
	parser.AddCommand("run", "Run the server from a site directory",
		"Run the server from the specified site directory", &commands.Run)
	parser.AddCommand("dump", "Dump all parsed content (for testing)",
		"Parse the site directory, then dump all normalized content", &commands.Dump)
	parser.AddCommand("version", "Print the build version",
		"Print the build version", &commands.Version)

	_, err := parser.Parse()
	if err != nil {
		// Check if it's a help request
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		return config, fmt.Errorf("failed to parse command line arguments: %w", err)
	}

	// Validate options
	if err := opts.Validate(); err != nil {
		return config, fmt.Errorf("invalid command line options: %w", err)
	}

	// Apply global options to config
	config.Server.Port = opts.Port
	config.Server.Hostname = opts.Hostname
	if opts.Out != "" {
		config.OutDirectory = opts.Out
	}

	// Handle (and validate) commands
	if parser.Active != nil {
		switch parser.Active.Name {
		case "run":
			config.Mode = "run"
			config.SiteDirectory = commands.Run.Args.Directory
			if err := config.validateSiteDirectory(); err != nil {
				return config, err
			}
		case "dump":
			config.Mode = "dump"
			config.SiteDirectory = commands.Dump.Args.Directory
			if err := config.validateSiteDirectory(); err != nil {
				return config, err
			}
			if err := config.validateOutDirectory(); err != nil {
				return config, err
			}
		case "version":
			config.Mode = "version"
		default:
			return config, fmt.Errorf("unknown command: %s", parser.Active.Name)
		}
	} else {
		return config, errors.New("no command specified")
	}

	// Validate the final configuration
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
