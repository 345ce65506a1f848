// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Verify recomputes the sha256 digest of the package at path and compares it
// with its sidecar. A missing sidecar fails verification.
func (p *Packager) Verify(path string) error {
	return VerifyPackage(path, p.logger)
}

// VerifyPackage is Verify without a Packager, so callers that only check
// integrity do not create the themes directory. A nil logger discards output.
func VerifyPackage(path string, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrPackageNotFound, path)
		}
		return fmt.Errorf("failed to stat package: %w", err)
	}

	sidecar := SidecarPath(path)
	stored, err := os.ReadFile(sidecar)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("no integrity hash file found", "package", path)
			return &IntegrityError{Package: path, Reason: "integrity hash file not found"}
		}
		return &IntegrityError{Package: path, Reason: fmt.Sprintf("cannot read %s: %v", sidecar, err)}
	}

	expected := strings.TrimSpace(string(stored))
	actual, err := hashFile(path)
	if err != nil {
		return err
	}
	if expected != actual {
		logger.Error("integrity verification failed", "package", path, "expected", expected, "actual", actual)
		return &IntegrityError{Package: path, Expected: expected, Actual: actual}
	}

	logger.Info("integrity verification passed", "package", path)
	return nil
}

// hashFile returns the lowercase hex sha256 digest of the file at path.
func hashFile(path string) (digest string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	h := sha256.New()
	if _, err = io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// writeSidecar stores the digest of the package at path next to it.
func writeSidecar(path string) (string, error) {
	digest, err := hashFile(path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(SidecarPath(path), []byte(digest), 0o644); err != nil {
		return "", fmt.Errorf("failed to write integrity hash: %w", err)
	}
	return digest, nil
}
