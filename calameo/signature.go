package calameo

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Credentials holds the account's API key and shared secret.
type Credentials struct {
	APIKey string `mapstructure:"apikey" json:"apikey" yaml:"apikey"`
	Secret string `mapstructure:"secret" json:"secret" yaml:"secret"`
}

// Validate reports every missing member at once.
func (c Credentials) Validate() error {
	var result *multierror.Error
	if strings.TrimSpace(c.APIKey) == "" {
		result = multierror.Append(result, fmt.Errorf("%w: apikey is required", ErrInvalidCredentials))
	}
	if strings.TrimSpace(c.Secret) == "" {
		result = multierror.Append(result, fmt.Errorf("%w: secret is required", ErrInvalidCredentials))
	}
	return result.ErrorOrNil()
}

// File references a local document sent as a binary part. Files never take
// part in the signature.
type File struct {
	Path        string
	Name        string // defaults to the base name of Path
	ContentType string // defaults to a type guessed from the extension
}

// Fields maps request field names to values. Supported values are strings,
// integers, booleans, time.Time, fmt.Stringer, and File or *File.
type Fields map[string]any

// clone returns a shallow copy so per-call injection never reaches the
// caller's map.
func (f Fields) clone() Fields {
	out := make(Fields, len(f)+6)
	for k, v := range f {
		out[k] = v
	}
	return out
}

// asFile reports whether v is a binary file reference, given either as
// *File or File. The returned pointer is nil for a nil *File.
func asFile(v any) (*File, bool) {
	switch f := v.(type) {
	case *File:
		return f, true
	case File:
		return &f, true
	}
	return nil, false
}

// file returns the first binary file reference in the mapping.
func (f Fields) file() (string, *File) {
	for name, v := range f {
		if file, ok := asFile(v); ok && file != nil {
			return name, file
		}
	}
	return "", nil
}

// HasFile reports whether the mapping contains a binary file reference.
func (f Fields) HasFile() bool {
	_, file := f.file()
	return file != nil
}

// Sign computes the request signature: the hex MD5 of the secret followed
// by name+value for every non-file field in byte-sorted name order.
func Sign(fields Fields, secret string) string {
	names := make([]string, 0, len(fields))
	for name, v := range fields {
		if _, isFile := asFile(v); isFile {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(secret)
	for _, name := range names {
		sb.WriteString(name)
		sb.WriteString(formatValue(fields[name]))
	}

	sum := md5.Sum([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// formatValue renders a field value the way it is sent on the wire.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case bool:
		if val {
			return "1"
		}
		return ""
	case time.Time:
		return val.Format(dateLayout)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
