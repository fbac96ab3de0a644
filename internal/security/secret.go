package security

import (
	"encoding/hex"
	"errors"

	"github.com/gorilla/securecookie"
)

// csrfKeyLength is the key size gorilla/csrf expects.
const csrfKeyLength = 32

// CSRFSecret returns the key for CSRFMiddleware. A configured value is
// decoded as hex when possible and used as raw bytes otherwise; an empty
// value yields a random key, so tokens do not survive a restart.
func CSRFSecret(configured string) ([]byte, bool, error) {
	if configured != "" {
		if key, err := hex.DecodeString(configured); err == nil {
			return key, false, nil
		}
		return []byte(configured), false, nil
	}

	key := securecookie.GenerateRandomKey(csrfKeyLength)
	if key == nil {
		return nil, false, errors.New("failed to generate CSRF secret")
	}
	return key, true, nil
}
