package emitter

import "github.com/gogpu/pngc/analyzer"

// emitAnimations interns every #animation declaration's "keyframes" as a
// data blob and assigns it a resource id so other declarations can
// reference it (e.g. a vertex attribute driven by a keyframe track).
// There is no dedicated opcode for animation playback in this bytecode
// format — the data exists for a future interpreter/collaborator to pull
// out of the data blob table, not to drive an instruction here.
func (b *Builder) emitAnimations() {
	for _, declNode := range b.orderedDecls(analyzer.NamespaceAnimation) {
		props := b.propertiesOf(declNode)
		dataID, ok := b.dataIDFor(props, "keyframes")
		if !ok {
			dataID = b.internData(nil)
		}
		b.assignID(analyzer.NamespaceAnimation, declNode)
		b.animationData[declNode] = dataID
	}
}
