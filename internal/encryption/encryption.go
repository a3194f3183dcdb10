// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package encryption detects, removes and applies PDF password protection
// with pdfcpu. Only the password boundary lives here: callers receive plain
// PDF bytes that any content backend can read.
package encryption

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	// ErrInvalidDocument reports input that pdfcpu cannot read as a PDF.
	ErrInvalidDocument = errors.New("invalid PDF document")
	// ErrPasswordRequired reports an encrypted document opened without a password.
	ErrPasswordRequired = errors.New("PDF requires a password")
	// ErrIncorrectPassword reports a password that opens neither the user nor
	// the owner lock.
	ErrIncorrectPassword = errors.New("incorrect PDF password")
)

// aesKeyLength is the AES key size used for Encrypt.
const aesKeyLength = 256

func init() {
	// Keep pdfcpu from creating its configuration directory on first use.
	api.DisableConfigDir()
}

// Status describes a document before any password is applied.
type Status struct {
	Encrypted bool
	// PageCount is only known for unencrypted documents.
	PageCount int
}

// newConfig returns a pdfcpu configuration that writes classic
// cross-reference tables, which every reader backend understands.
func newConfig(password string) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false
	return conf
}

// isPasswordError reports whether a pdfcpu read failed on credentials.
func isPasswordError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "password")
}

// IsEncrypted inspects data without a password.
func IsEncrypted(data []byte) (Status, error) {
	ctx, err := api.ReadContext(bytes.NewReader(data), newConfig(""))
	if err != nil {
		if isPasswordError(err) {
			return Status{Encrypted: true}, nil
		}
		return Status{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if ctx.Encrypt != nil {
		return Status{Encrypted: true}, nil
	}
	// ReadContext only loads the xref table; the page tree is counted here.
	if err := ctx.EnsurePageCount(); err != nil {
		return Status{}, fmt.Errorf("%w: counting pages: %v", ErrInvalidDocument, err)
	}
	return Status{PageCount: ctx.PageCount}, nil
}

// Decrypt returns the unprotected form of data. Unencrypted input is returned
// unchanged.
func Decrypt(data []byte, password string) ([]byte, error) {
	status, err := IsEncrypted(data)
	if err != nil {
		return nil, err
	}
	if !status.Encrypted {
		return data, nil
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(data), &out, newConfig(password)); err != nil {
		if isPasswordError(err) {
			return nil, ErrIncorrectPassword
		}
		return nil, fmt.Errorf("%w: decrypting: %v", ErrInvalidDocument, err)
	}
	return out.Bytes(), nil
}

// Encrypt protects data with AES-256. An empty ownerPW reuses userPW.
func Encrypt(data []byte, userPW, ownerPW string) ([]byte, error) {
	if userPW == "" {
		return nil, ErrPasswordRequired
	}
	if ownerPW == "" {
		ownerPW = userPW
	}
	conf := model.NewAESConfiguration(userPW, ownerPW, aesKeyLength)
	conf.Permissions = model.PermissionsAll
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false

	var out bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(data), &out, conf); err != nil {
		return nil, fmt.Errorf("encrypting PDF: %w", err)
	}
	return out.Bytes(), nil
}
