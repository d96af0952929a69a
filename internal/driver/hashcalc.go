package driver

import (
	"crypto/sha256"
	"encoding/binary"

	"cairolint/internal/lint"
)

// Digest is a SHA-256 value used as a cache key.
type Digest [32]byte

// combineDigest: H(content || part1 || part2 ...). parts уже в детерминированном порядке.
func combineDigest(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(p))) // #nosec G115 -- части короткие
		_, _ = h.Write(n[:])
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// selectionFingerprint lists enabled codes in table order. Две выборки с
// одинаковым набором правил дают один отпечаток, как бы они ни были заданы.
func selectionFingerprint(sel lint.Selection) []byte {
	rules := lint.Rules()
	out := make([]byte, 0, len(rules)*2)
	for _, r := range rules {
		if sel.Enabled(r.Code) {
			out = binary.BigEndian.AppendUint16(out, uint16(r.Code))
		}
	}
	return out
}

// cacheKey identifies the diagnostics of one file content under one tool
// version and lint selection.
func cacheKey(content Digest, toolVersion string, sel lint.Selection, maxDiagnostics int) Digest {
	limit := binary.BigEndian.AppendUint32(nil, uint32(max(maxDiagnostics, 0))) // #nosec G115 -- лимит из конфига
	return combineDigest(content, []byte(toolVersion), selectionFingerprint(sel), limit)
}
