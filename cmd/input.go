package cmd

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pb33f/biscuit/codec"
	"github.com/pb33f/biscuit/cookie"
	"github.com/spf13/afero"
)

// harSource marks input read from a HAR capture rather than a cookie export.
const harSource = "har"

// source describes where a cookie set came from.
type source struct {
	path   string
	format codec.Format // format used for validation, json for HAR input
	har    bool
}

// resolveSource picks the input format from the --from value or the file extension.
func resolveSource(path, from string) (source, error) {
	src := source{path: path}

	tag := strings.ToLower(strings.TrimSpace(from))
	if tag == "" {
		tag = formatFromExtension(path)
	}

	if tag == harSource {
		src.har = true
		src.format = codec.JSON
		return src, nil
	}

	format, err := codec.LookupFormat(tag)
	if err != nil {
		return src, err
	}
	src.format = format
	return src, nil
}

func formatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".har":
		return harSource
	case ".csv":
		return codec.CSV.String()
	case ".txt", ".cookies":
		return codec.Netscape.String()
	case ".xml":
		return codec.XML.String()
	default:
		return codec.JSON.String()
	}
}

// readCookies loads and parses a cookie file.
func readCookies(src source) ([]cookie.Cookie, error) {
	if err := ValidateCookieFile(src.path); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(fs, src.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src.path, err)
	}

	if src.har {
		cookies, err := codec.ReadHAR(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to read HAR %s: %w", src.path, err)
		}
		return cookies, nil
	}

	cookies, err := codec.Parse(string(data), src.format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", src.path, err)
	}

	GetLogger().Debug("cookies parsed", "file", src.path, "format", src.format, "count", len(cookies))
	return cookies, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(out io.Writer, path string, data []byte) error {
	if path == "" {
		if _, err := out.Write(data); err != nil {
			return err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			_, err := out.Write([]byte("\n"))
			return err
		}
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
