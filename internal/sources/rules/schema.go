package rules

// Config is the top-level structure of platforms.yaml: extra hostname
// detection rules consulted before the built-in table.
//
// Example:
//
//	platforms:
//	  youtube:
//	    - youtube-nocookie.com
//	  twitter:
//	    - nitter.net
type Config struct {
	Platforms map[string][]string `yaml:"platforms"`
}
