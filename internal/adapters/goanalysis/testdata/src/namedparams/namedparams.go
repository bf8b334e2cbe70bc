package namedparams

func resize(width, height int) {}

func blank(_, height int) {}

func labelled(w, h int) {
	resize(/* width= */ w, /* height= */ h)
}

func unlabelled(w, h int) {
	resize(w, h)
}

func swapTarget(w, h int) {
	resize(/* height= */ w, h) // want `Parameters with incorrectly labelled arguments: ./\* height= \*/. does not match formal parameter name .width.`
}

func rewrite(w, h int) {
	resize(/* size= */ w, h) // want `./\* size= \*/. does not match formal parameter name .width.`
}

func bothSwapped(w, h int) {
	resize(/* height= */ h, /* width= */ w) // want `./\* height= \*/. does not match formal parameter name .width., ./\* width= \*/. does not match formal parameter name .height.`
}

func synthetic(w, h int) {
	blank(/* height= */ w, h)
}
