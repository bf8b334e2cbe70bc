package argselection

type Canvas struct {
	width, height int
	parent        *Canvas
}

func resize(width, height int) {}

func scale(width, height float64) {}

func join(sep, prefix string, parts ...string) string { return "" }

func pair(a, b int) {}

func area(width, height int) int { return width * height }

func layout(width, height int) {
	resize(height, width) // want `arguments to resize may be in the wrong order: width got .height., expected .width., height got .width., expected .height.`
}

func inOrder(width, height int) {
	resize(width, height)
}

func (c *Canvas) fit() {
	scale(float64(c.height), float64(c.width)) // want `arguments to scale may be in the wrong order: width got .float64\(c.height\)., expected .float64\(c.width\).`
}

func (c *Canvas) link(canvas, parent *Canvas) {}

func (c *Canvas) adopt(parent *Canvas) {
	c.link(parent, c) // want `arguments to c.link may be in the wrong order: canvas got .parent., expected .c.`
}

func withSeparator(sep, prefix string) string {
	return join(prefix, sep, "a", "b") // want `arguments to join may be in the wrong order`
}

func lowInformation(a, b int) {
	pair(b, a)
}

func reverseLayout(width, height int) {
	resize(height, width)
}

func tally(width, height int) int {
	turnCount := area(height, width) // want `arguments to area may be in the wrong order`
	return turnCount
}

func symmetric(width, height int) {
	resize(width, height)
	resize(height, width)
}

func labelled(width, height int) {
	resize(/* width= */ height, /* height= */ width)
}

func suppressed(width, height int) {
	//argsel:ignore argselection
	resize(height, width)
}

func otherCheckSuppressed(width, height int) {
	resize(height, width) //argsel:ignore structorder // want `arguments to resize may be in the wrong order`
}
