package analyzer

import (
	"github.com/minio/highwayhash"
	log "github.com/sirupsen/logrus"

	"github.com/gogpu/pngc/ast"
)

// shaderDedupKey is highwayhash's required 32-byte key. Dedup here is pure
// content-addressing, not a MAC, so a fixed all-zero key is deliberate: it
// makes the resulting data_ids reproducible across runs of the same input.
var shaderDedupKey = make([]byte, 32)

// passDeduplicateShaders is pass 6: every #wgsl declaration's "value" string
// is content-hashed, and declarations whose hashes collide share a single
// data_id — identical shader source is emitted exactly once regardless of
// how many declarations reference it.
func (a *Analyzer) passDeduplicateShaders() {
	wgslDecls := a.out.Symbols[NamespaceWgsl]
	hashToID := make(map[uint64]uint32)
	var nextID uint32

	for _, declNode := range orderedNodes(wgslDecls) {
		props := a.propertiesOf(declNode)
		codeNode, ok := props["value"]
		if !ok {
			continue // already reported by passRequiredProperties
		}
		if a.ast.Tags[codeNode] != ast.StringValue && a.ast.Tags[codeNode] != ast.RuntimeInterpolation {
			a.out.addError(codeNode, "wgsl value must be a string")
			continue
		}

		content := a.ast.TokenLexeme(codeNode)
		sum, err := highwayhash.Sum64(content, shaderDedupKey)
		if err != nil {
			a.out.addError(codeNode, "hashing shader content: %v", err)
			continue
		}

		id, ok := hashToID[sum]
		if !ok {
			id = nextID
			nextID++
			hashToID[sum] = id
		}
		a.out.ShaderFragments[declNode] = id
	}

	log.WithFields(log.Fields{
		"declarations": len(wgslDecls),
		"fragments":    nextID,
	}).Debug("analyzer: deduplicated shaders")
}
