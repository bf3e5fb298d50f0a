// Package hashemit implements the hash emitter (spec component G): it
// hashes a pre-hash string under a named algorithm and formats the
// result as an RFC 6920 named-information URI.
package hashemit

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/trackvision/epcis-hashgen/canonerr"
)

// Algorithm is one of the four hash functions CBV 2.0 recognizes.
type Algorithm string

const (
	SHA256  Algorithm = "sha-256"
	SHA3256 Algorithm = "sha3-256"
	SHA384  Algorithm = "sha-384"
	SHA512  Algorithm = "sha-512"
)

// cbvVersion is the fixed "ver" query parameter spec 4.G mandates.
const cbvVersion = "CBV2.0"

// Hash hashes preHash under alg and formats it as
// "ni:///{alg};{hex-lower}?ver=CBV2.0". Returns canonerr.ErrUnknownHashAlgorithm
// if alg is not one of the four recognized tags.
func Hash(preHash string, alg Algorithm) (string, error) {
	sum, err := digest(preHash, alg)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ni:///%s;%s?ver=%s", alg, hex.EncodeToString(sum), cbvVersion), nil
}

func digest(preHash string, alg Algorithm) ([]byte, error) {
	b := []byte(preHash)
	switch alg {
	case SHA256:
		sum := sha256.Sum256(b)
		return sum[:], nil
	case SHA3256:
		sum := sha3.Sum256(b)
		return sum[:], nil
	case SHA384:
		sum := sha512.Sum384(b)
		return sum[:], nil
	case SHA512:
		sum := sha512.Sum512(b)
		return sum[:], nil
	default:
		return nil, canonerr.New(canonerr.UnknownHashAlgorithm, fmt.Errorf("hashemit: unrecognized algorithm %q", alg))
	}
}
