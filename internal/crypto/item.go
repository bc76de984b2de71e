package crypto

import (
	"encoding/base64"
	"fmt"

	"github.com/MKhiriev/go-pass-sync/models"
)

// OpenItem decrypts the content of item with the share key of its rotation.
//
// Content and ItemKey are base64 blobs of nonce ‖ ciphertext. When the item
// carries its own key, that key is opened with the share key first and then
// opens the content; otherwise the share key opens the content directly.
func OpenItem(item models.Item, shareKey []byte) ([]byte, error) {
	contentKey := shareKey

	if item.ItemKey != nil && *item.ItemKey != "" {
		itemKey, err := openBase64(shareKey, *item.ItemKey)
		if err != nil {
			return nil, fmt.Errorf("open item key: %w", err)
		}
		contentKey = itemKey
	}

	plaintext, err := openBase64(contentKey, item.Content)
	if err != nil {
		return nil, fmt.Errorf("open item content: %w", err)
	}

	return plaintext, nil
}

// SealItemContent encrypts plaintext with key and returns the base64 blob in
// the layout [OpenItem] expects. The client only reads items; this is the
// counterpart used to produce fixtures and by tooling.
func SealItemContent(key, plaintext []byte) (string, error) {
	blob, err := sealGCM(key, plaintext)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

func openBase64(key []byte, b64 string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %w", ErrDecrypt, err)
	}
	return openGCM(key, blob)
}
