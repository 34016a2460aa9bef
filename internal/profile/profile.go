// ABOUTME: Mixer profile persistence
// ABOUTME: Flat key=value files holding generator and master settings
package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/viper"
)

const (
	// Ext is the profile file extension
	Ext = ".ini"

	// LastSession is saved on exit and preferred at startup
	LastSession = "last_session"

	// DefaultName is the profile listed when the directory has none
	DefaultName = "profiles"

	KeyMasterVolume  = "master_vol"
	KeyMasterEnabled = "master_enabled"

	DefaultGenEnabled    = false
	DefaultGenVolume     = 0.5
	DefaultMasterVolume  = 1.0
	DefaultMasterEnabled = true
)

// ErrInvalidName is returned for names outside [A-Za-z0-9_-]
var ErrInvalidName = errors.New("invalid profile name")

// GenEnabledKey returns the key holding generator i's enabled flag
func GenEnabledKey(i int) string { return fmt.Sprintf("gen%d_enabled", i) }

// GenVolumeKey returns the key holding generator i's volume
func GenVolumeKey(i int) string { return fmt.Sprintf("gen%d_vol", i) }

// Profile is a named set of mixer settings
type Profile struct {
	name string
	v    *viper.Viper
}

// New returns an empty profile; every getter yields its default
func New(name string) *Profile {
	v := viper.New()
	v.SetConfigType("env")
	return &Profile{name: name, v: v}
}

// Name returns the file name without extension
func (p *Profile) Name() string {
	return p.name
}

// DisplayName returns the name shown in the mixer header
func (p *Profile) DisplayName() string {
	if p.name == LastSession {
		return "Last Session"
	}
	return p.name
}

// Path returns the file path of the named profile in dir
func Path(dir, name string) string {
	return filepath.Join(dir, name+Ext)
}

// Load reads the named profile from dir. A missing file returns an error
// wrapping fs.ErrNotExist.
func Load(dir, name string) (*Profile, error) {
	p := New(name)
	path := Path(dir, name)

	p.v.SetConfigFile(path)
	if err := p.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("load profile %s: %w", name, err)
	}
	return p, nil
}

// Save writes the profile to dir, creating dir if needed
func (p *Profile) Save(dir string) error {
	if !ValidName(p.name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, p.name)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}

	// viper picks the encoder from the file extension, so marshal under an
	// .env name and move it into place
	tmp, err := os.CreateTemp(dir, "."+p.name+"-*.env")
	if err != nil {
		return fmt.Errorf("save profile %s: %w", p.name, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := p.v.WriteConfigAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("save profile %s: %w", p.name, err)
	}
	if err := os.Rename(tmpPath, Path(dir, p.name)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("save profile %s: %w", p.name, err)
	}
	return nil
}

// Exists reports whether the named profile file is present in dir
func Exists(dir, name string) bool {
	_, err := os.Stat(Path(dir, name))
	return err == nil
}

// List returns the saved profile names in dir, sorted, excluding the last
// session. An empty or missing directory lists the default profile.
func List(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+Ext))
	if err != nil {
		return nil, err
	}

	var names []string
	for _, m := range matches {
		name := strings.TrimSuffix(filepath.Base(m), Ext)
		if name != LastSession {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		names = []string{DefaultName}
	}
	return names, nil
}

// ValidName reports whether name is non-empty and made of letters, digits,
// underscores and dashes
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !ValidNameRune(r) {
			return false
		}
	}
	return true
}

// ValidNameRune reports whether r may appear in a profile name
func ValidNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

// Get returns the raw value for key, or def if unset
func (p *Profile) Get(key, def string) string {
	if !p.v.IsSet(key) {
		return def
	}
	return p.v.GetString(key)
}

// Set stores a raw value
func (p *Profile) Set(key, value string) {
	p.v.Set(key, value)
}

// Float returns key parsed as a float, or def if unset or unparsable
func (p *Profile) Float(key string, def float32) float32 {
	s := strings.TrimSpace(p.Get(key, ""))
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return def
	}
	return float32(f)
}

// Bool returns key parsed as a bool, or def if unset or unparsable
func (p *Profile) Bool(key string, def bool) bool {
	s := strings.TrimSpace(p.Get(key, ""))
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func (p *Profile) SetFloat(key string, f float32) {
	p.Set(key, strconv.FormatFloat(float64(f), 'g', -1, 32))
}

func (p *Profile) SetBool(key string, b bool) {
	p.Set(key, strconv.FormatBool(b))
}

// GenEnabled returns generator i's enabled flag
func (p *Profile) GenEnabled(i int) bool {
	return p.Bool(GenEnabledKey(i), DefaultGenEnabled)
}

// GenVolume returns generator i's volume
func (p *Profile) GenVolume(i int) float32 {
	return p.Float(GenVolumeKey(i), DefaultGenVolume)
}

// SetGen stores generator i's settings
func (p *Profile) SetGen(i int, enabled bool, volume float32) {
	p.SetBool(GenEnabledKey(i), enabled)
	p.SetFloat(GenVolumeKey(i), volume)
}

func (p *Profile) MasterVolume() float32 {
	return p.Float(KeyMasterVolume, DefaultMasterVolume)
}

func (p *Profile) MasterEnabled() bool {
	return p.Bool(KeyMasterEnabled, DefaultMasterEnabled)
}

// SetMaster stores the master settings
func (p *Profile) SetMaster(volume float32, enabled bool) {
	p.SetFloat(KeyMasterVolume, volume)
	p.SetBool(KeyMasterEnabled, enabled)
}

// IsNotExist reports whether err came from loading a missing profile
func IsNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}
