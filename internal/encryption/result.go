// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package encryption

import (
	"encoding/base64"
	"errors"
)

// User-facing messages. Library error text never reaches the result.
const (
	msgIncorrectPassword = "Incorrect password. Please check and try again."
	msgPasswordRequired  = "This PDF requires a password. Please enter the correct password."
	msgInvalidDocument   = "Failed to process PDF: not a readable PDF document"
)

// Result is the JSON answer of the check and decrypt commands.
type Result struct {
	Success         bool   `json:"success"`
	Error           string `json:"error,omitempty"`
	IsEncrypted     bool   `json:"is_encrypted"`
	NumPages        *int   `json:"num_pages,omitempty"`
	DecryptedBase64 string `json:"decrypted_base64,omitempty"`
}

// Message maps a package error to its user-facing text.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrIncorrectPassword):
		return msgIncorrectPassword
	case errors.Is(err, ErrPasswordRequired):
		return msgPasswordRequired
	case errors.Is(err, ErrInvalidDocument):
		return msgInvalidDocument
	default:
		return "Failed to process PDF: " + err.Error()
	}
}

// CheckResult reports the encryption status of data.
func CheckResult(data []byte) Result {
	status, err := IsEncrypted(data)
	if err != nil {
		return Result{Error: Message(err)}
	}
	res := Result{Success: true, IsEncrypted: status.Encrypted}
	if !status.Encrypted {
		n := status.PageCount
		res.NumPages = &n
	}
	return res
}

// DecryptResult decrypts data and packages the outcome. A successful result
// carries the plain PDF as base64 and its page count.
func DecryptResult(data []byte, password string) Result {
	status, err := IsEncrypted(data)
	if err != nil {
		return Result{Error: Message(err)}
	}
	plain, err := Decrypt(data, password)
	if err != nil {
		return Result{Error: Message(err), IsEncrypted: status.Encrypted}
	}

	res := Result{
		Success:         true,
		IsEncrypted:     status.Encrypted,
		DecryptedBase64: base64.StdEncoding.EncodeToString(plain),
	}
	if after, err := IsEncrypted(plain); err == nil {
		n := after.PageCount
		res.NumPages = &n
	}
	return res
}
