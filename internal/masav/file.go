package masav

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
)

// FileName builds the submission file name the portal expects: the charge
// date plus the `.001` serial extension.
func FileName(chargeDate time.Time, serial int) string {
	return fmt.Sprintf("msv_%s.%03d", FormatDate(chargeDate), serial)
}

// Transcode converts an encoded file from UTF-8 to ISO-8859-8 for portals
// that reject multibyte Hebrew. A rune outside the charset fails the build.
func Transcode(content []byte) ([]byte, error) {
	out, err := charmap.ISO8859_8.NewEncoder().Bytes(content)
	if err != nil {
		return nil, fmt.Errorf("%w: content not representable in ISO-8859-8: %v", domain.ErrEncoding, err)
	}
	return out, nil
}

// WriteFile writes an encoded clearing file to dir, optionally transcoded
// to ISO-8859-8, and returns the path.
func WriteFile(dir string, chargeDate time.Time, serial int, content []byte, transcode bool) (string, error) {
	if transcode {
		var err error
		content, err = Transcode(content)
		if err != nil {
			return "", err
		}
	}
	path := filepath.Join(dir, FileName(chargeDate, serial))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write clearing file: %w", err)
	}
	return path, nil
}
