// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package encryption

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainPDF(t *testing.T, pages int) []byte {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.CellFormat(0, 10, "Test Bank", "", 1, "L", false, 0, "")
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func encryptedPDF(t *testing.T, password string) []byte {
	t.Helper()
	data, err := Encrypt(plainPDF(t, 2), password, "")
	require.NoError(t, err)
	return data
}

func TestIsEncrypted(t *testing.T) {
	status, err := IsEncrypted(plainPDF(t, 2))
	require.NoError(t, err)
	assert.False(t, status.Encrypted)
	assert.Equal(t, 2, status.PageCount)

	status, err = IsEncrypted(encryptedPDF(t, "test123"))
	require.NoError(t, err)
	assert.True(t, status.Encrypted)
	assert.Zero(t, status.PageCount)

	_, err = IsEncrypted([]byte("not a pdf at all"))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestDecrypt(t *testing.T) {
	locked := encryptedPDF(t, "test123")

	tests := []struct {
		name     string
		data     []byte
		password string
		wantErr  error
	}{
		{name: "correct password", data: locked, password: "test123"},
		{name: "wrong password", data: locked, password: "nope", wantErr: ErrIncorrectPassword},
		{name: "missing password", data: locked, wantErr: ErrPasswordRequired},
		{name: "garbage input", data: []byte("%PDF-garbage"), password: "x", wantErr: ErrInvalidDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain, err := Decrypt(tt.data, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			status, err := IsEncrypted(plain)
			require.NoError(t, err)
			assert.False(t, status.Encrypted)
			assert.Equal(t, 2, status.PageCount)
		})
	}
}

func TestDecryptPassesThroughPlainInput(t *testing.T) {
	plain := plainPDF(t, 1)
	got, err := Decrypt(plain, "ignored")
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestEncryptRequiresPassword(t *testing.T) {
	_, err := Encrypt(plainPDF(t, 1), "", "owner")
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestCheckResultJSON(t *testing.T) {
	out, err := json.Marshal(CheckResult(plainPDF(t, 1)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"is_encrypted":false,"num_pages":1}`, string(out))

	out, err = json.Marshal(CheckResult(encryptedPDF(t, "pw")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"is_encrypted":true}`, string(out))
}

func TestDecryptResult(t *testing.T) {
	locked := encryptedPDF(t, "test123")

	res := DecryptResult(locked, "wrong")
	assert.False(t, res.Success)
	assert.True(t, res.IsEncrypted)
	assert.Equal(t, "Incorrect password. Please check and try again.", res.Error)
	assert.Empty(t, res.DecryptedBase64)

	res = DecryptResult(locked, "test123")
	require.True(t, res.Success, res.Error)
	assert.True(t, res.IsEncrypted)
	require.NotNil(t, res.NumPages)
	assert.Equal(t, 2, *res.NumPages)

	plain, err := base64.StdEncoding.DecodeString(res.DecryptedBase64)
	require.NoError(t, err)
	status, err := IsEncrypted(plain)
	require.NoError(t, err)
	assert.False(t, status.Encrypted)

	res = DecryptResult([]byte("junk"), "pw")
	assert.False(t, res.Success)
	assert.False(t, res.IsEncrypted)
	assert.Contains(t, res.Error, "Failed to process PDF")
}

func TestPageCount(t *testing.T) {
	for _, pages := range []int{1, 3, 5} {
		data := plainPDF(t, pages)

		status, err := IsEncrypted(data)
		require.NoError(t, err)
		assert.Equal(t, pages, status.PageCount)

		res := CheckResult(data)
		require.NotNil(t, res.NumPages)
		assert.Equal(t, pages, *res.NumPages)
	}
}
