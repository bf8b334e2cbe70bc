package structorder

type Size struct {
	Width  int
	Height int
}

type Point struct{ X, Y int }

type Empty struct{}

func swappedFields(width, height int) Size {
	return Size{height, width} // want `arguments to Size may be in the wrong order: Width got .height., expected .width., Height got .width., expected .height.`
}

func inOrder(width, height int) Size {
	return Size{width, height}
}

func keyed(width, height int) Size {
	return Size{Height: width, Width: height}
}

func unrelated(w, h int) Size {
	return Size{h, w}
}

func points(x, y int) []Point {
	return []Point{
		{x, y},
		{y, x}, // want `arguments to Point may be in the wrong order`
	}
}

func pointer(x, y int) *Point {
	return &Point{y, x} // want `arguments to Point may be in the wrong order`
}

func nothing() Empty {
	return Empty{}
}
